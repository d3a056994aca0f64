package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/dcortes/volunteer-hub/internal/db"
	"github.com/dcortes/volunteer-hub/internal/match"
	"github.com/dcortes/volunteer-hub/internal/metrics"
	"github.com/dcortes/volunteer-hub/internal/models"
)

func (s *Server) handleListMatches(c echo.Context) error {
	matches, err := s.Store.ListMatches(c.Request().Context())
	if err != nil {
		return s.internalError(c, err)
	}
	if matches == nil {
		matches = []models.Match{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"matches": matches,
	})
}

type createMatchRequest struct {
	VolunteerID int64 `json:"VolunteerID" validate:"required,gt=0"`
	EventID     int64 `json:"EventID" validate:"required,gt=0"`
}

func (s *Server) handleCreateMatch(c echo.Context) error {
	var req createMatchRequest
	if err := c.Bind(&req); err != nil {
		return parseError(c)
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, "VolunteerID and EventID are required")
	}

	ctx := c.Request().Context()
	event, err := s.Store.GetEvent(ctx, req.EventID)
	if errors.Is(err, db.ErrNotFound) {
		return entityNotFound(c, "Event not found")
	}
	if err != nil {
		return s.internalError(c, err)
	}

	// Score is informational for manual matches; volunteers without a
	// profile get zero.
	var score float64
	profile, err := s.Store.GetProfile(ctx, req.VolunteerID)
	switch {
	case err == nil:
		score = match.Score(*profile, *event, s.Weights).Score
	case !errors.Is(err, db.ErrNotFound):
		s.Logger.Error("failed to load volunteer profile for scoring",
			zap.Int64("volunteer_id", req.VolunteerID), zap.Error(err))
	}

	created, err := s.Store.CreateMatch(ctx, req.VolunteerID, req.EventID, score)
	if errors.Is(err, db.ErrDuplicateMatch) {
		return badRequest(c, "Volunteer is already matched to this event")
	}
	if err != nil {
		return s.internalError(c, err)
	}
	metrics.MatchesCreated.Inc()

	s.notifyMatch(ctx, req.VolunteerID, "match_created",
		"New volunteer match",
		fmt.Sprintf("You have been matched to %s.", event.Name))

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"match":   created,
	})
}

type matchStatusRequest struct {
	MatchID int64  `json:"MatchID" validate:"required,gt=0"`
	Status  string `json:"Status" validate:"required,oneof=pending confirmed declined"`
}

func (s *Server) handleUpdateMatchStatus(c echo.Context) error {
	var req matchStatusRequest
	if err := c.Bind(&req); err != nil {
		return parseError(c)
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, "MatchID and a status of pending, confirmed, or declined are required")
	}

	updated, err := s.Store.UpdateMatchStatus(c.Request().Context(), req.MatchID, req.Status)
	if errors.Is(err, db.ErrNotFound) {
		return entityNotFound(c, "Match not found")
	}
	if err != nil {
		return s.internalError(c, err)
	}

	s.notifyMatch(c.Request().Context(), updated.VolunteerID, "match_status",
		"Match status updated",
		fmt.Sprintf("Your match status is now %s.", updated.Status))

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"match":   updated,
	})
}

// notifyMatch inserts a notification for the volunteer. A failure here is
// logged and swallowed: the match operation already succeeded.
func (s *Server) notifyMatch(ctx context.Context, userID int64, kind, title, message string) {
	err := s.Store.CreateNotification(ctx, models.Notification{
		UserID:  userID,
		Type:    kind,
		Title:   title,
		Message: message,
	})
	if err != nil {
		s.Logger.Error("failed to insert match notification",
			zap.Int64("user_id", userID), zap.Error(err))
	}
}

type smartMatch struct {
	VolunteerID          int64    `json:"volunteer_id"`
	FullName             string   `json:"full_name"`
	Score                float64  `json:"score"`
	SkillMatchPercentage float64  `json:"skill_match_percentage"`
	MatchingSkills       []string `json:"matching_skills"`
	AvailabilityMatch    bool     `json:"availability_match"`
	LocationMatch        bool     `json:"location_match"`
}

func (s *Server) handleSmartMatches(c echo.Context) error {
	eventID, err := pathID(c, "eventId")
	if err != nil {
		return badRequest(c, "Invalid event ID")
	}

	ctx := c.Request().Context()
	event, err := s.Store.GetEvent(ctx, eventID)
	if errors.Is(err, db.ErrNotFound) {
		return entityNotFound(c, "Event not found")
	}
	if err != nil {
		return s.internalError(c, err)
	}

	profiles, err := s.Store.ListProfiles(ctx)
	if err != nil {
		return s.internalError(c, err)
	}

	ranked := match.RankForEvent(profiles, *event, s.Weights)
	results := make([]smartMatch, 0, len(ranked))
	for _, cand := range ranked {
		skills := cand.MatchingSkills
		if skills == nil {
			skills = []string{}
		}
		results = append(results, smartMatch{
			VolunteerID:          cand.Profile.UserID,
			FullName:             cand.Profile.FullName,
			Score:                cand.Score,
			SkillMatchPercentage: cand.SkillMatchPercentage,
			MatchingSkills:       skills,
			AvailabilityMatch:    cand.AvailabilityMatch,
			LocationMatch:        cand.LocationMatch,
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"eventId": eventID,
		"matches": results,
	})
}

type autoMatchRequest struct {
	EventID       int64   `json:"EventID" validate:"required,gt=0"`
	MinMatchScore float64 `json:"MinMatchScore" validate:"gte=0"`
}

// handleAutoMatch scores candidate volunteers against the event and creates
// pending matches for every candidate at or above MinMatchScore, within the
// event's remaining capacity. Zero qualifying candidates is a success.
func (s *Server) handleAutoMatch(c echo.Context) error {
	var req autoMatchRequest
	if err := c.Bind(&req); err != nil {
		return parseError(c)
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, "EventID is required and MinMatchScore must be non-negative")
	}

	ctx := c.Request().Context()
	event, err := s.Store.GetEvent(ctx, req.EventID)
	if errors.Is(err, db.ErrNotFound) {
		return entityNotFound(c, "Event not found")
	}
	if err != nil {
		return s.internalError(c, err)
	}

	candidates, err := s.Store.ListCandidateProfiles(ctx, event.ID, event.RequiredSkills)
	if err != nil {
		return s.internalError(c, err)
	}

	metrics.AutoMatchRuns.Inc()
	runID := uuid.New().String()[:8]

	remaining := -1
	if event.MaxVolunteers > 0 {
		remaining = event.MaxVolunteers - event.CurrentVolunteers
		if remaining < 0 {
			remaining = 0
		}
	}

	matched := 0
	for _, cand := range match.RankForEvent(candidates, *event, s.Weights) {
		if cand.Score < req.MinMatchScore {
			// Ranked descending, so nothing further qualifies either.
			break
		}
		if remaining == 0 {
			break
		}

		_, err := s.Store.CreateMatch(ctx, cand.Profile.UserID, event.ID, cand.Score)
		if errors.Is(err, db.ErrDuplicateMatch) {
			continue
		}
		if err != nil {
			return s.internalError(c, err)
		}
		metrics.MatchesCreated.Inc()
		matched++
		if remaining > 0 {
			remaining--
		}

		s.notifyMatch(ctx, cand.Profile.UserID, "match_created",
			"New volunteer match",
			fmt.Sprintf("You have been matched to %s.", event.Name))
	}

	s.Logger.Info("auto-match complete",
		zap.String("run", runID),
		zap.Int64("event_id", event.ID),
		zap.Int("candidates", len(candidates)),
		zap.Int("matched", matched))

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"matched": matched,
		"runId":   runID,
	})
}
