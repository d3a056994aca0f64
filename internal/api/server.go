package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/dcortes/volunteer-hub/internal/auth"
	"github.com/dcortes/volunteer-hub/internal/match"
	"github.com/dcortes/volunteer-hub/internal/metrics"
)

const serviceName = "volunteer-hub"

var validate = validator.New()

type Server struct {
	Store   Store
	Auth    *auth.Service
	Echo    *echo.Echo
	Logger  *zap.Logger
	Weights match.Weights
}

// route is one row of the dispatch table. The table is ordered: more
// specific paths (e.g. /api/events/:id/status) must come before the general
// parameterized routes that would otherwise shadow them.
type route struct {
	method  string
	path    string
	handler echo.HandlerFunc
}

func NewServer(store Store, authService *auth.Service, weights match.Weights, logger *zap.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Permissive CORS, matching the public surface the frontend expects.
	e.Use(middleware.CORS())

	s := &Server{
		Store:   store,
		Auth:    authService,
		Echo:    e,
		Logger:  logger,
		Weights: weights,
	}

	e.Use(s.countRequests)
	e.HTTPErrorHandler = s.errorHandler

	table := s.routeTable()
	for _, r := range table {
		e.Add(r.method, r.path, r.handler)
	}
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	e.RouteNotFound("/*", s.handleNotFound)

	return s
}

// routeTable returns the ordered (method, path, handler) dispatch table.
// It also feeds availableRoutes in the 404 payload, so the list callers see
// is exactly the list that dispatches.
func (s *Server) routeTable() []route {
	return []route{
		{http.MethodGet, "/api/health", s.handleHealth},

		{http.MethodPost, "/api/login", s.handleLogin},
		{http.MethodPost, "/api/register", s.handleRegister},
		{http.MethodGet, "/api/users", s.handleListUsers},

		{http.MethodGet, "/api/profile/:userId", s.handleGetProfile},
		{http.MethodPut, "/api/profile", s.handleUpdateProfile},

		{http.MethodGet, "/api/states", s.handleListStates},
		{http.MethodGet, "/api/skills", s.handleListSkills},

		{http.MethodGet, "/api/events", s.handleListEvents},
		{http.MethodPost, "/api/events", s.handleCreateEvent},
		{http.MethodPut, "/api/events/:id/status", s.handleUpdateEventStatus},
		{http.MethodPut, "/api/events/:id", s.handleUpdateEvent},
		{http.MethodDelete, "/api/events/:id", s.handleDeleteEvent},

		{http.MethodGet, "/api/volunteer-matches", s.handleListMatches},
		{http.MethodPost, "/api/volunteer-matches", s.handleCreateMatch},
		{http.MethodPut, "/api/volunteer-matches/status", s.handleUpdateMatchStatus},

		{http.MethodGet, "/api/smart-matches/:eventId", s.handleSmartMatches},
		{http.MethodPost, "/api/auto-match", s.handleAutoMatch},

		{http.MethodGet, "/api/notifications/unread/:userId", s.handleUnreadNotifications},
		{http.MethodGet, "/api/notifications/:userId", s.handleListNotifications},
		{http.MethodPost, "/api/notifications/read", s.handleMarkNotificationsRead},

		{http.MethodGet, "/api/volunteer-history/:userId", s.handleListHistory},
		{http.MethodPost, "/api/volunteer-history", s.handleCreateHistory},
		{http.MethodPut, "/api/volunteer-history", s.handleUpdateHistory},

		{http.MethodGet, "/api/reports/volunteer-participation", s.handleParticipationReport},
		{http.MethodGet, "/api/reports/event-summary", s.handleEventSummaryReport},
		{http.MethodGet, "/api/reports/volunteer-summary", s.handleVolunteerSummaryReport},
	}
}

func (s *Server) availableRoutes() []string {
	table := s.routeTable()
	routes := make([]string, 0, len(table))
	for _, r := range table {
		routes = append(routes, r.method+" "+r.path)
	}
	return routes
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   serviceName,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// handleNotFound is the discoverability contract: unmatched routes get the
// canonical route list, not a bare 404.
func (s *Server) handleNotFound(c echo.Context) error {
	return c.JSON(http.StatusNotFound, map[string]interface{}{
		"success":         false,
		"error":           "Route not found",
		"availableRoutes": s.availableRoutes(),
	})
}

// errorHandler converts echo's routing errors into the JSON envelope. A
// method mismatch on a known path is a 404 here, same as an unknown path.
func (s *Server) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	if he, ok := err.(*echo.HTTPError); ok {
		switch he.Code {
		case http.StatusNotFound, http.StatusMethodNotAllowed:
			_ = s.handleNotFound(c)
			return
		}
	}

	s.Logger.Error("unhandled request error",
		zap.String("method", c.Request().Method),
		zap.String("path", c.Request().URL.Path),
		zap.Error(err))
	_ = c.JSON(http.StatusInternalServerError, map[string]interface{}{
		"success": false,
		"error":   "Internal server error",
	})
}

func (s *Server) countRequests(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := next(c)
		metrics.HTTPRequests.WithLabelValues(
			c.Request().Method,
			c.Path(),
			strconv.Itoa(c.Response().Status),
		).Inc()
		return err
	}
}

func (s *Server) Start(port string) error {
	return s.Echo.Start(":" + port)
}

// Response helpers. Persistence errors are logged here, never leaked.

func parseError(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, map[string]interface{}{
		"success": false,
		"error":   "Server error",
	})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, map[string]interface{}{
		"success": false,
		"error":   msg,
	})
}

func entityNotFound(c echo.Context, msg string) error {
	return c.JSON(http.StatusNotFound, map[string]interface{}{
		"success": false,
		"error":   msg,
	})
}

func (s *Server) internalError(c echo.Context, err error) error {
	s.Logger.Error("persistence failure",
		zap.String("method", c.Request().Method),
		zap.String("path", c.Request().URL.Path),
		zap.Error(err))
	return c.JSON(http.StatusInternalServerError, map[string]interface{}{
		"success": false,
		"error":   "Internal server error",
	})
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}
