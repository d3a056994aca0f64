package api

import (
	"context"

	"github.com/dcortes/volunteer-hub/internal/db"
	"github.com/dcortes/volunteer-hub/internal/models"
)

// Store is everything the HTTP handlers need from persistence. internal/db
// provides the Postgres implementation; tests substitute an in-memory fake.
type Store interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	GetProfile(ctx context.Context, userID int64) (*models.Profile, error)
	UpsertProfile(ctx context.Context, p models.Profile) error

	ListStates(ctx context.Context) ([]db.State, error)
	ListSkills(ctx context.Context) ([]string, error)

	ListEvents(ctx context.Context) ([]models.Event, error)
	GetEvent(ctx context.Context, id int64) (*models.Event, error)
	CreateEvent(ctx context.Context, e models.Event) (*models.Event, error)
	UpdateEvent(ctx context.Context, e models.Event) (*models.Event, error)
	DeleteEvent(ctx context.Context, id int64) error
	UpdateEventStatus(ctx context.Context, id int64, status string) error

	ListMatches(ctx context.Context) ([]models.Match, error)
	CreateMatch(ctx context.Context, volunteerID, eventID int64, score float64) (*models.Match, error)
	UpdateMatchStatus(ctx context.Context, matchID int64, status string) (*models.Match, error)
	ListProfiles(ctx context.Context) ([]models.Profile, error)
	ListCandidateProfiles(ctx context.Context, eventID int64, requiredSkills []string) ([]models.Profile, error)

	CreateNotification(ctx context.Context, n models.Notification) error
	ListNotifications(ctx context.Context, userID int64, unreadOnly bool) ([]models.Notification, error)
	MarkNotificationRead(ctx context.Context, notificationID int64) error
	MarkAllNotificationsRead(ctx context.Context, userID int64) (int64, error)

	ListHistory(ctx context.Context, volunteerID int64) ([]models.HistoryRecord, error)
	CreateHistory(ctx context.Context, r models.HistoryRecord) (*models.HistoryRecord, error)
	UpdateHistory(ctx context.Context, r models.HistoryRecord) (*models.HistoryRecord, error)

	VolunteerParticipationReport(ctx context.Context, params db.ReportParams) ([]models.ParticipationRow, error)
	EventSummaryReport(ctx context.Context, params db.ReportParams) ([]models.EventSummaryRow, error)
	VolunteerSummaryReport(ctx context.Context, params db.ReportParams) ([]models.VolunteerSummaryRow, error)
}
