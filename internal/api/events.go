package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dcortes/volunteer-hub/internal/db"
	"github.com/dcortes/volunteer-hub/internal/models"
)

type eventRequest struct {
	Name           string   `json:"Name" validate:"required"`
	Description    string   `json:"Description"`
	Location       string   `json:"Location"`
	City           string   `json:"City"`
	State          string   `json:"State"`
	RequiredSkills []string `json:"RequiredSkills"`
	Urgency        string   `json:"Urgency"`
	EventDate      string   `json:"EventDate" validate:"required"`
	StartTime      string   `json:"StartTime"`
	EndTime        string   `json:"EndTime"`
	MaxVolunteers  int      `json:"MaxVolunteers" validate:"gte=0"`
}

func (r eventRequest) toModel() (models.Event, error) {
	date, err := time.Parse("2006-01-02", r.EventDate)
	if err != nil {
		return models.Event{}, errors.New("EventDate must be YYYY-MM-DD")
	}

	urgency := models.Urgency(r.Urgency)
	if r.Urgency == "" {
		urgency = models.UrgencyLow
	}
	if !urgency.IsValid() {
		return models.Event{}, errors.New("Urgency must be low, medium, high, or critical")
	}

	return models.Event{
		Name:           r.Name,
		Description:    r.Description,
		Location:       r.Location,
		City:           r.City,
		State:          r.State,
		RequiredSkills: r.RequiredSkills,
		Urgency:        urgency,
		EventDate:      date,
		StartTime:      r.StartTime,
		EndTime:        r.EndTime,
		MaxVolunteers:  r.MaxVolunteers,
	}, nil
}

func (s *Server) handleListEvents(c echo.Context) error {
	events, err := s.Store.ListEvents(c.Request().Context())
	if err != nil {
		return s.internalError(c, err)
	}
	if events == nil {
		events = []models.Event{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"events":  events,
	})
}

func (s *Server) handleCreateEvent(c echo.Context) error {
	var req eventRequest
	if err := c.Bind(&req); err != nil {
		return parseError(c)
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, "Name and EventDate are required")
	}

	event, err := req.toModel()
	if err != nil {
		return badRequest(c, err.Error())
	}

	created, err := s.Store.CreateEvent(c.Request().Context(), event)
	if err != nil {
		return s.internalError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success": true,
		"event":   created,
	})
}

func (s *Server) handleUpdateEvent(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid event ID")
	}

	var req eventRequest
	if err := c.Bind(&req); err != nil {
		return parseError(c)
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, "Name and EventDate are required")
	}

	event, err := req.toModel()
	if err != nil {
		return badRequest(c, err.Error())
	}
	event.ID = id

	updated, err := s.Store.UpdateEvent(c.Request().Context(), event)
	if errors.Is(err, db.ErrNotFound) {
		return entityNotFound(c, "Event not found")
	}
	if err != nil {
		return s.internalError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"event":   updated,
	})
}

func (s *Server) handleDeleteEvent(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid event ID")
	}

	if err := s.Store.DeleteEvent(c.Request().Context(), id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return entityNotFound(c, "Event not found")
		}
		return s.internalError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true})
}

type eventStatusRequest struct {
	Status string `json:"Status" validate:"required"`
}

func (s *Server) handleUpdateEventStatus(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid event ID")
	}

	var req eventStatusRequest
	if err := c.Bind(&req); err != nil {
		return parseError(c)
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, "Status is required")
	}

	event, err := s.Store.GetEvent(c.Request().Context(), id)
	if errors.Is(err, db.ErrNotFound) {
		return entityNotFound(c, "Event not found")
	}
	if err != nil {
		return s.internalError(c, err)
	}

	if !models.ValidEventTransition(event.Status, req.Status) {
		return badRequest(c, "Cannot transition event from "+event.Status+" to "+req.Status)
	}

	if err := s.Store.UpdateEventStatus(c.Request().Context(), id, req.Status); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return entityNotFound(c, "Event not found")
		}
		return s.internalError(c, err)
	}

	event.Status = req.Status
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"event":   event,
	})
}
