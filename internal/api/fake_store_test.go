package api

import (
	"context"
	"time"

	"github.com/dcortes/volunteer-hub/internal/db"
	"github.com/dcortes/volunteer-hub/internal/models"
)

// fakeStore is an in-memory Store for handler tests.
type fakeStore struct {
	users         map[int64]models.User
	usersByEmail  map[string]models.User
	profiles      map[int64]models.Profile
	events        map[int64]models.Event
	matches       []models.Match
	notifications []models.Notification
	history       []models.HistoryRecord
	states        []db.State
	skills        []string

	nextMatchID        int64
	nextNotificationID int64
	nextHistoryID      int64
	nextEventID        int64
	nextUserID         int64

	failNotifications bool
	userLookupErr     error
	profileErr        error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:              map[int64]models.User{},
		usersByEmail:       map[string]models.User{},
		profiles:           map[int64]models.Profile{},
		events:             map[int64]models.Event{},
		nextMatchID:        1,
		nextNotificationID: 1,
		nextHistoryID:      1,
		nextEventID:        1,
		nextUserID:         1,
	}
}

func (f *fakeStore) addEvent(e models.Event) models.Event {
	if e.ID == 0 {
		e.ID = f.nextEventID
		f.nextEventID++
	} else if e.ID >= f.nextEventID {
		f.nextEventID = e.ID + 1
	}
	if e.Status == "" {
		e.Status = models.EventPublished
	}
	f.events[e.ID] = e
	return e
}

func (f *fakeStore) addProfile(p models.Profile) {
	f.profiles[p.UserID] = p
}

// auth.UserStore

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	if f.userLookupErr != nil {
		return nil, f.userLookupErr
	}
	u, ok := f.usersByEmail[email]
	if !ok {
		return nil, db.ErrNotFound
	}
	copied := u
	return &copied, nil
}

func (f *fakeStore) CreateUser(_ context.Context, email, passwordHash, role string) (*models.User, error) {
	u := models.User{ID: f.nextUserID, Email: email, PasswordHash: passwordHash, Role: role, CreatedAt: time.Now()}
	f.nextUserID++
	f.users[u.ID] = u
	f.usersByEmail[email] = u
	copied := u
	return &copied, nil
}

// api.Store

func (f *fakeStore) ListUsers(context.Context) ([]models.User, error) {
	var out []models.User
	for _, u := range f.users {
		u.PasswordHash = ""
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeStore) GetProfile(_ context.Context, userID int64) (*models.Profile, error) {
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	p, ok := f.profiles[userID]
	if !ok {
		return nil, db.ErrNotFound
	}
	copied := p
	return &copied, nil
}

func (f *fakeStore) UpsertProfile(_ context.Context, p models.Profile) error {
	f.profiles[p.UserID] = p
	return nil
}

func (f *fakeStore) ListStates(context.Context) ([]db.State, error) {
	return f.states, nil
}

func (f *fakeStore) ListSkills(context.Context) ([]string, error) {
	return f.skills, nil
}

func (f *fakeStore) ListEvents(context.Context) ([]models.Event, error) {
	var out []models.Event
	for _, e := range f.events {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeStore) GetEvent(_ context.Context, id int64) (*models.Event, error) {
	e, ok := f.events[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	copied := e
	return &copied, nil
}

func (f *fakeStore) CreateEvent(_ context.Context, e models.Event) (*models.Event, error) {
	created := f.addEvent(e)
	return &created, nil
}

func (f *fakeStore) UpdateEvent(_ context.Context, e models.Event) (*models.Event, error) {
	existing, ok := f.events[e.ID]
	if !ok {
		return nil, db.ErrNotFound
	}
	e.Status = existing.Status
	e.CurrentVolunteers = existing.CurrentVolunteers
	f.events[e.ID] = e
	return &e, nil
}

func (f *fakeStore) DeleteEvent(_ context.Context, id int64) error {
	if _, ok := f.events[id]; !ok {
		return db.ErrNotFound
	}
	delete(f.events, id)
	return nil
}

func (f *fakeStore) UpdateEventStatus(_ context.Context, id int64, status string) error {
	e, ok := f.events[id]
	if !ok {
		return db.ErrNotFound
	}
	e.Status = status
	f.events[id] = e
	return nil
}

func (f *fakeStore) ListMatches(context.Context) ([]models.Match, error) {
	return append([]models.Match(nil), f.matches...), nil
}

func (f *fakeStore) CreateMatch(_ context.Context, volunteerID, eventID int64, score float64) (*models.Match, error) {
	for _, m := range f.matches {
		if m.VolunteerID == volunteerID && m.EventID == eventID &&
			(m.Status == models.MatchPending || m.Status == models.MatchConfirmed) {
			return nil, db.ErrDuplicateMatch
		}
	}
	m := models.Match{
		ID:          f.nextMatchID,
		VolunteerID: volunteerID,
		EventID:     eventID,
		Status:      models.MatchPending,
		MatchScore:  score,
		MatchedAt:   time.Now(),
	}
	f.nextMatchID++
	f.matches = append(f.matches, m)
	f.recount(eventID)
	return &m, nil
}

func (f *fakeStore) UpdateMatchStatus(_ context.Context, matchID int64, status string) (*models.Match, error) {
	for i := range f.matches {
		if f.matches[i].ID == matchID {
			f.matches[i].Status = status
			f.recount(f.matches[i].EventID)
			copied := f.matches[i]
			return &copied, nil
		}
	}
	return nil, db.ErrNotFound
}

func (f *fakeStore) recount(eventID int64) {
	count := 0
	for _, m := range f.matches {
		if m.EventID == eventID && (m.Status == models.MatchPending || m.Status == models.MatchConfirmed) {
			count++
		}
	}
	if e, ok := f.events[eventID]; ok {
		e.CurrentVolunteers = count
		f.events[eventID] = e
	}
}

func (f *fakeStore) ListProfiles(context.Context) ([]models.Profile, error) {
	var out []models.Profile
	for _, p := range f.profiles {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeStore) ListCandidateProfiles(_ context.Context, eventID int64, requiredSkills []string) ([]models.Profile, error) {
	required := map[string]bool{}
	for _, s := range requiredSkills {
		required[s] = true
	}

	var out []models.Profile
	for _, p := range f.profiles {
		overlaps := false
		for _, s := range p.Skills {
			if required[s] {
				overlaps = true
				break
			}
		}
		if !overlaps {
			continue
		}
		active := false
		for _, m := range f.matches {
			if m.VolunteerID == p.UserID && m.EventID == eventID &&
				(m.Status == models.MatchPending || m.Status == models.MatchConfirmed) {
				active = true
				break
			}
		}
		if !active {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateNotification(_ context.Context, n models.Notification) error {
	if f.failNotifications {
		return db.ErrNotFound
	}
	n.ID = f.nextNotificationID
	f.nextNotificationID++
	n.CreatedAt = time.Now()
	f.notifications = append(f.notifications, n)
	return nil
}

func (f *fakeStore) ListNotifications(_ context.Context, userID int64, unreadOnly bool) ([]models.Notification, error) {
	var out []models.Notification
	for _, n := range f.notifications {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (f *fakeStore) MarkNotificationRead(_ context.Context, notificationID int64) error {
	for i := range f.notifications {
		if f.notifications[i].ID == notificationID {
			f.notifications[i].IsRead = true
			return nil
		}
	}
	return db.ErrNotFound
}

func (f *fakeStore) MarkAllNotificationsRead(_ context.Context, userID int64) (int64, error) {
	var updated int64
	for i := range f.notifications {
		if f.notifications[i].UserID == userID && !f.notifications[i].IsRead {
			f.notifications[i].IsRead = true
			updated++
		}
	}
	return updated, nil
}

func (f *fakeStore) ListHistory(_ context.Context, volunteerID int64) ([]models.HistoryRecord, error) {
	var out []models.HistoryRecord
	for _, r := range f.history {
		if volunteerID == 0 || r.VolunteerID == volunteerID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateHistory(_ context.Context, r models.HistoryRecord) (*models.HistoryRecord, error) {
	r.ID = f.nextHistoryID
	f.nextHistoryID++
	r.RecordedAt = time.Now()
	f.history = append(f.history, r)
	return &r, nil
}

func (f *fakeStore) UpdateHistory(_ context.Context, r models.HistoryRecord) (*models.HistoryRecord, error) {
	for i := range f.history {
		if f.history[i].ID == r.ID {
			f.history[i].Participation = r.Participation
			f.history[i].HoursServed = r.HoursServed
			f.history[i].Feedback = r.Feedback
			copied := f.history[i]
			return &copied, nil
		}
	}
	return nil, db.ErrNotFound
}

func (f *fakeStore) VolunteerParticipationReport(context.Context, db.ReportParams) ([]models.ParticipationRow, error) {
	return nil, nil
}

func (f *fakeStore) EventSummaryReport(context.Context, db.ReportParams) ([]models.EventSummaryRow, error) {
	return nil, nil
}

func (f *fakeStore) VolunteerSummaryReport(context.Context, db.ReportParams) ([]models.VolunteerSummaryRow, error) {
	return nil, nil
}
