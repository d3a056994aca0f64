package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dcortes/volunteer-hub/internal/db"
	"github.com/dcortes/volunteer-hub/internal/models"
)

// reportParams parses the optional ?from=YYYY-MM-DD&to=YYYY-MM-DD&status=
// filters shared by the report endpoints. Bad dates are ignored rather than
// rejected; reports are read-only.
func reportParams(c echo.Context) db.ReportParams {
	var params db.ReportParams
	if v := c.QueryParam("from"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			params.From = &t
		}
	}
	if v := c.QueryParam("to"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			end := t.Add(24*time.Hour - time.Second)
			params.To = &end
		}
	}
	params.Status = c.QueryParam("status")
	return params
}

func (s *Server) handleParticipationReport(c echo.Context) error {
	report, err := s.Store.VolunteerParticipationReport(c.Request().Context(), reportParams(c))
	if err != nil {
		return s.internalError(c, err)
	}
	if report == nil {
		report = []models.ParticipationRow{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"report":  report,
	})
}

func (s *Server) handleEventSummaryReport(c echo.Context) error {
	report, err := s.Store.EventSummaryReport(c.Request().Context(), reportParams(c))
	if err != nil {
		return s.internalError(c, err)
	}
	if report == nil {
		report = []models.EventSummaryRow{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"report":  report,
	})
}

func (s *Server) handleVolunteerSummaryReport(c echo.Context) error {
	report, err := s.Store.VolunteerSummaryReport(c.Request().Context(), reportParams(c))
	if err != nil {
		return s.internalError(c, err)
	}
	if report == nil {
		report = []models.VolunteerSummaryRow{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"report":  report,
	})
}
