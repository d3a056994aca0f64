package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dcortes/volunteer-hub/internal/auth"
	"github.com/dcortes/volunteer-hub/internal/db"
	"github.com/dcortes/volunteer-hub/internal/models"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func (s *Server) handleLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return parseError(c)
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, "Email and password are required")
	}

	result, err := s.Auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCreds) {
			// Login failures are a 200 with success:false; the client
			// distinguishes them from transport errors by the envelope.
			return c.JSON(http.StatusOK, map[string]interface{}{
				"success": false,
				"error":   "Invalid email or password",
			})
		}
		return s.internalError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"token":   result.Token,
		"user":    result.User,
	})
}

func (s *Server) handleRegister(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return parseError(c)
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, "A valid email and a password of at least 6 characters are required")
	}

	result, err := s.Auth.Register(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrUserExists) {
			return badRequest(c, "Email is already registered")
		}
		return s.internalError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success": true,
		"token":   result.Token,
		"user":    result.User,
	})
}

func (s *Server) handleListUsers(c echo.Context) error {
	users, err := s.Store.ListUsers(c.Request().Context())
	if err != nil {
		return s.internalError(c, err)
	}
	if users == nil {
		users = []models.User{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"users":   users,
	})
}

type profileRequest struct {
	UserID       int64                       `json:"UserID"`
	FullName     string                      `json:"FullName" validate:"required"`
	Address      string                      `json:"Address"`
	City         string                      `json:"City"`
	State        string                      `json:"State"`
	Zip          string                      `json:"Zip"`
	Skills       []string                    `json:"Skills"`
	Preferences  string                      `json:"Preferences"`
	Availability []models.AvailabilityWindow `json:"Availability"`
}

func (s *Server) handleGetProfile(c echo.Context) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	profile, err := s.Store.GetProfile(c.Request().Context(), userID)
	if errors.Is(err, db.ErrNotFound) {
		return entityNotFound(c, "Profile not found")
	}
	if err != nil {
		return s.internalError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"profile": profile,
	})
}

func (s *Server) handleUpdateProfile(c echo.Context) error {
	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return parseError(c)
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, "FullName is required")
	}

	// A bearer token, when present, identifies the user; the body's UserID
	// is the fallback for clients that do not send one.
	userID := req.UserID
	if header := c.Request().Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		if id, err := s.Auth.VerifyToken(strings.TrimPrefix(header, "Bearer ")); err == nil {
			userID = id
		}
	}
	if userID <= 0 {
		return badRequest(c, "UserID is required")
	}

	profile := models.Profile{
		UserID:       userID,
		FullName:     req.FullName,
		Address:      req.Address,
		City:         req.City,
		State:        req.State,
		Zip:          req.Zip,
		Skills:       req.Skills,
		Preferences:  req.Preferences,
		Availability: req.Availability,
	}
	if err := s.Store.UpsertProfile(c.Request().Context(), profile); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return entityNotFound(c, "User not found")
		}
		return s.internalError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"profile": profile,
	})
}

// The states and skills lookups predate the success envelope and return bare
// arrays; the frontend binds them directly to form selects.

func (s *Server) handleListStates(c echo.Context) error {
	states, err := s.Store.ListStates(c.Request().Context())
	if err != nil {
		return s.internalError(c, err)
	}
	if states == nil {
		states = []db.State{}
	}
	return c.JSON(http.StatusOK, states)
}

func (s *Server) handleListSkills(c echo.Context) error {
	skills, err := s.Store.ListSkills(c.Request().Context())
	if err != nil {
		return s.internalError(c, err)
	}
	if skills == nil {
		skills = []string{}
	}
	return c.JSON(http.StatusOK, skills)
}
