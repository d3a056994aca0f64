package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/dcortes/volunteer-hub/internal/db"
	"github.com/dcortes/volunteer-hub/internal/models"
)

// handleListHistory serves one volunteer's history; the literal path segment
// "all" returns every record.
func (s *Server) handleListHistory(c echo.Context) error {
	var volunteerID int64
	if param := c.Param("userId"); param != "all" {
		id, err := strconv.ParseInt(param, 10, 64)
		if err != nil || id <= 0 {
			return badRequest(c, "Invalid user ID")
		}
		volunteerID = id
	}

	records, err := s.Store.ListHistory(c.Request().Context(), volunteerID)
	if err != nil {
		return s.internalError(c, err)
	}
	if records == nil {
		records = []models.HistoryRecord{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"history": records,
	})
}

type createHistoryRequest struct {
	VolunteerID   int64   `json:"VolunteerID" validate:"required,gt=0"`
	EventID       int64   `json:"EventID" validate:"required,gt=0"`
	Participation string  `json:"Participation"`
	HoursServed   float64 `json:"HoursServed" validate:"gte=0"`
	Feedback      string  `json:"Feedback"`
}

func (s *Server) handleCreateHistory(c echo.Context) error {
	var req createHistoryRequest
	if err := c.Bind(&req); err != nil {
		return parseError(c)
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, "VolunteerID and EventID are required")
	}

	if req.Participation == "" {
		req.Participation = "registered"
	}

	record, err := s.Store.CreateHistory(c.Request().Context(), models.HistoryRecord{
		VolunteerID:   req.VolunteerID,
		EventID:       req.EventID,
		Participation: req.Participation,
		HoursServed:   req.HoursServed,
		Feedback:      req.Feedback,
	})
	if err != nil {
		return s.internalError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success": true,
		"record":  record,
	})
}

type updateHistoryRequest struct {
	ID            int64   `json:"ID" validate:"required,gt=0"`
	Participation string  `json:"Participation" validate:"required"`
	HoursServed   float64 `json:"HoursServed" validate:"gte=0"`
	Feedback      string  `json:"Feedback"`
}

func (s *Server) handleUpdateHistory(c echo.Context) error {
	var req updateHistoryRequest
	if err := c.Bind(&req); err != nil {
		return parseError(c)
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, "ID and Participation are required")
	}

	record, err := s.Store.UpdateHistory(c.Request().Context(), models.HistoryRecord{
		ID:            req.ID,
		Participation: req.Participation,
		HoursServed:   req.HoursServed,
		Feedback:      req.Feedback,
	})
	if errors.Is(err, db.ErrNotFound) {
		return entityNotFound(c, "History record not found")
	}
	if err != nil {
		return s.internalError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"record":  record,
	})
}
