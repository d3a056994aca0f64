package models

import "time"

// Urgency is the ordinal priority of an event, used as a scoring weight.
type Urgency string

const (
	UrgencyLow      Urgency = "low"
	UrgencyMedium   Urgency = "medium"
	UrgencyHigh     Urgency = "high"
	UrgencyCritical Urgency = "critical"
)

func (u Urgency) IsValid() bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyCritical:
		return true
	}
	return false
}

// Rank maps urgency to an ordinal so critical > high > medium > low.
func (u Urgency) Rank() int {
	switch u {
	case UrgencyCritical:
		return 4
	case UrgencyHigh:
		return 3
	case UrgencyMedium:
		return 2
	case UrgencyLow:
		return 1
	}
	return 0
}

// Event lifecycle statuses. Transitions are ordered; see ValidEventTransition.
const (
	EventDraft      = "draft"
	EventPublished  = "published"
	EventInProgress = "in_progress"
	EventCompleted  = "completed"
	EventCancelled  = "cancelled"
)

// ValidEventTransition reports whether an event may move from one lifecycle
// status to another. Cancellation is allowed from any non-terminal status.
func ValidEventTransition(from, to string) bool {
	if from == to {
		return false
	}
	switch to {
	case EventPublished:
		return from == EventDraft
	case EventInProgress:
		return from == EventPublished
	case EventCompleted:
		return from == EventInProgress
	case EventCancelled:
		return from == EventDraft || from == EventPublished || from == EventInProgress
	}
	return false
}

// Match statuses.
const (
	MatchPending   = "pending"
	MatchConfirmed = "confirmed"
	MatchDeclined  = "declined"
)

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// AvailabilityWindow is a weekly recurring window a volunteer is free,
// e.g. {Day: "Saturday", Start: "09:00", End: "13:00"}.
type AvailabilityWindow struct {
	Day   string `json:"day" yaml:"day"`
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
}

type Profile struct {
	UserID       int64                `json:"user_id"`
	FullName     string               `json:"full_name"`
	Address      string               `json:"address"`
	City         string               `json:"city"`
	State        string               `json:"state"`
	Zip          string               `json:"zip"`
	Skills       []string             `json:"skills"`
	Preferences  string               `json:"preferences"`
	Availability []AvailabilityWindow `json:"availability"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

type Event struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	Location          string    `json:"location"`
	City              string    `json:"city"`
	State             string    `json:"state"`
	RequiredSkills    []string  `json:"required_skills"`
	Urgency           Urgency   `json:"urgency"`
	EventDate         time.Time `json:"event_date"`
	StartTime         string    `json:"start_time"`
	EndTime           string    `json:"end_time"`
	MaxVolunteers     int       `json:"max_volunteers"`
	CurrentVolunteers int       `json:"current_volunteers"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
}

type Match struct {
	ID          int64     `json:"id"`
	VolunteerID int64     `json:"volunteer_id"`
	EventID     int64     `json:"event_id"`
	Status      string    `json:"status"`
	MatchScore  float64   `json:"match_score"`
	MatchedAt   time.Time `json:"matched_at"`

	// Denormalized for list responses.
	VolunteerName string `json:"volunteer_name,omitempty"`
	EventName     string `json:"event_name,omitempty"`
}

type Notification struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	EmailSent bool      `json:"email_sent"`
	CreatedAt time.Time `json:"created_at"`
}

type HistoryRecord struct {
	ID            int64     `json:"id"`
	VolunteerID   int64     `json:"volunteer_id"`
	EventID       int64     `json:"event_id"`
	EventName     string    `json:"event_name,omitempty"`
	Participation string    `json:"participation"`
	HoursServed   float64   `json:"hours_served"`
	Feedback      string    `json:"feedback"`
	RecordedAt    time.Time `json:"recorded_at"`
}

// Report rows.

type ParticipationRow struct {
	VolunteerID   int64   `json:"volunteer_id"`
	VolunteerName string  `json:"volunteer_name"`
	EventsJoined  int     `json:"events_joined"`
	TotalHours    float64 `json:"total_hours"`
}

type EventSummaryRow struct {
	EventID       int64     `json:"event_id"`
	EventName     string    `json:"event_name"`
	EventDate     time.Time `json:"event_date"`
	Status        string    `json:"status"`
	Urgency       Urgency   `json:"urgency"`
	MaxVolunteers int       `json:"max_volunteers"`
	Matched       int       `json:"matched"`
	Confirmed     int       `json:"confirmed"`
}

type VolunteerSummaryRow struct {
	VolunteerID    int64   `json:"volunteer_id"`
	VolunteerName  string  `json:"volunteer_name"`
	PendingMatches int     `json:"pending_matches"`
	Confirmed      int     `json:"confirmed_matches"`
	Declined       int     `json:"declined_matches"`
	AvgMatchScore  float64 `json:"avg_match_score"`
}
