package match

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcortes/volunteer-hub/internal/models"
)

func TestSkillOverlap(t *testing.T) {
	tests := []struct {
		name      string
		volunteer []string
		required  []string
		wantPct   float64
		wantMatch []string
	}{
		{
			name:      "empty required set is zero not undefined",
			volunteer: []string{"First Aid"},
			required:  nil,
			wantPct:   0,
		},
		{
			name:     "empty volunteer set is zero",
			required: []string{"First Aid"},
			wantPct:  0,
		},
		{
			name:      "both nil",
			volunteer: nil,
			required:  nil,
			wantPct:   0,
		},
		{
			name:      "superset is exactly 100",
			volunteer: []string{"First Aid", "Cooking", "Driving"},
			required:  []string{"Cooking", "Driving"},
			wantPct:   100,
			wantMatch: []string{"Cooking", "Driving"},
		},
		{
			name:      "partial overlap strictly between 0 and 100",
			volunteer: []string{"Cooking"},
			required:  []string{"Cooking", "Driving", "Translation"},
			wantPct:   33.3,
			wantMatch: []string{"Cooking"},
		},
		{
			name:      "matching is case sensitive",
			volunteer: []string{"cooking"},
			required:  []string{"Cooking"},
			wantPct:   0,
		},
		{
			name:      "duplicate required skills do not inflate the denominator",
			volunteer: []string{"Cooking"},
			required:  []string{"Cooking", "Cooking", "Driving"},
			wantPct:   50,
			wantMatch: []string{"Cooking"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matching, pct := SkillOverlap(tt.volunteer, tt.required)
			assert.Equal(t, tt.wantPct, pct)
			assert.Equal(t, tt.wantMatch, matching)

			// MatchingSkills must be a subset of both inputs.
			for _, s := range matching {
				assert.Contains(t, tt.volunteer, s)
				assert.Contains(t, tt.required, s)
			}
		})
	}
}

func TestSkillOverlapBounds(t *testing.T) {
	_, pct := SkillOverlap([]string{"a", "b"}, []string{"a", "c", "d"})
	require.Greater(t, pct, 0.0)
	require.Less(t, pct, 100.0)
}

func TestScoreIdempotent(t *testing.T) {
	p := models.Profile{
		UserID: 7,
		State:  "TX",
		City:   "Houston",
		Skills: []string{"Cooking", "Driving"},
		Availability: []models.AvailabilityWindow{
			{Day: "Saturday", Start: "08:00", End: "14:00"},
		},
	}
	e := models.Event{
		ID:             3,
		State:          "TX",
		City:           "Houston",
		RequiredSkills: []string{"Cooking", "Translation"},
		Urgency:        models.UrgencyHigh,
		EventDate:      time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC), // a Saturday
		StartTime:      "09:00",
	}

	first := Score(p, e, DefaultWeights())
	second := Score(p, e, DefaultWeights())
	assert.Equal(t, first, second)
}

func TestScoreComposite(t *testing.T) {
	w := DefaultWeights()
	saturday := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)

	e := models.Event{
		State:          "TX",
		City:           "Houston",
		RequiredSkills: []string{"Cooking", "Driving"},
		Urgency:        models.UrgencyCritical,
		EventDate:      saturday,
		StartTime:      "09:00",
	}

	p := models.Profile{
		UserID: 1,
		State:  "TX",
		City:   "Houston",
		Skills: []string{"Cooking", "Driving"},
		Availability: []models.AvailabilityWindow{
			{Day: "Saturday", Start: "08:00", End: "12:00"},
		},
	}

	c := Score(p, e, w)
	assert.Equal(t, 100.0, c.SkillMatchPercentage)
	assert.True(t, c.AvailabilityMatch)
	assert.True(t, c.LocationMatch)
	// 100 + availability + state + city + critical urgency
	want := 100 + w.Availability + w.StateMatch + w.CityMatch + 4*w.UrgencyStep
	assert.Equal(t, want, c.Score)
}

func TestScoreNoBonuses(t *testing.T) {
	e := models.Event{
		State:          "TX",
		RequiredSkills: []string{"Cooking"},
		Urgency:        models.UrgencyLow,
		EventDate:      time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), // a Monday
		StartTime:      "09:00",
	}
	p := models.Profile{
		UserID: 2,
		State:  "CA",
		Skills: []string{"Driving"},
		Availability: []models.AvailabilityWindow{
			{Day: "Saturday", Start: "08:00", End: "12:00"},
		},
	}

	c := Score(p, e, DefaultWeights())
	assert.Equal(t, 0.0, c.SkillMatchPercentage)
	assert.False(t, c.AvailabilityMatch)
	assert.False(t, c.LocationMatch)
	assert.Equal(t, 1*DefaultWeights().UrgencyStep, c.Score)
}

func TestWindowCovers(t *testing.T) {
	saturday := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)
	windows := []models.AvailabilityWindow{
		{Day: "Saturday", Start: "09:00", End: "12:00"},
	}

	assert.True(t, windowCovers(windows, saturday, "09:00"))
	assert.True(t, windowCovers(windows, saturday, "12:00"))
	assert.False(t, windowCovers(windows, saturday, "12:01"))
	assert.False(t, windowCovers(windows, saturday.AddDate(0, 0, 1), "10:00"))
	assert.False(t, windowCovers(windows, saturday, "garbage"))
	assert.False(t, windowCovers(nil, saturday, "10:00"))
}

func TestRankForEvent(t *testing.T) {
	e := models.Event{
		State:          "TX",
		RequiredSkills: []string{"Cooking", "Driving"},
		Urgency:        models.UrgencyMedium,
		EventDate:      time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC),
		StartTime:      "09:00",
	}

	profiles := []models.Profile{
		{UserID: 1, Skills: []string{"Cooking"}},
		{UserID: 2, Skills: []string{"Cooking", "Driving"}},
		{UserID: 3, Skills: nil},
	}

	ranked := RankForEvent(profiles, e, DefaultWeights())
	require.Len(t, ranked, 3)
	assert.Equal(t, int64(2), ranked[0].Profile.UserID)
	assert.Equal(t, int64(1), ranked[1].Profile.UserID)
	assert.Equal(t, int64(3), ranked[2].Profile.UserID)
}

func TestRankTieBreaksOnVolunteerID(t *testing.T) {
	e := models.Event{
		RequiredSkills: []string{"Cooking"},
		Urgency:        models.UrgencyLow,
	}
	profiles := []models.Profile{
		{UserID: 9, Skills: []string{"Cooking"}},
		{UserID: 4, Skills: []string{"Cooking"}},
	}

	ranked := RankForEvent(profiles, e, DefaultWeights())
	assert.Equal(t, int64(4), ranked[0].Profile.UserID)
	assert.Equal(t, int64(9), ranked[1].Profile.UserID)
}
