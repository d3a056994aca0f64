// Package match computes volunteer-to-event compatibility scores. All
// functions are pure: identical inputs always produce identical outputs.
package match

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/dcortes/volunteer-hub/internal/models"
)

// Candidate pairs a volunteer profile with its computed score against one
// event. MatchingSkills is always a subset of both the volunteer's and the
// event's skill sets.
type Candidate struct {
	Profile              models.Profile
	Score                float64
	SkillMatchPercentage float64
	MatchingSkills       []string
	AvailabilityMatch    bool
	LocationMatch        bool
}

// SkillOverlap returns the skills present in both sets (case-sensitive exact
// match, in the order they appear in required) and the overlap percentage,
// rounded to one decimal place. The percentage is exactly 0 when required is
// empty or when the volunteer has no skills. Nil slices are treated as empty
// sets.
func SkillOverlap(volunteer, required []string) ([]string, float64) {
	if len(required) == 0 || len(volunteer) == 0 {
		return nil, 0
	}

	have := make(map[string]bool, len(volunteer))
	for _, s := range volunteer {
		have[s] = true
	}

	var matching []string
	seen := make(map[string]bool, len(required))
	for _, s := range required {
		if have[s] && !seen[s] {
			matching = append(matching, s)
			seen[s] = true
		}
	}

	pct := float64(len(matching)) / float64(len(seen)+countMissing(required, seen)) * 100
	return matching, math.Round(pct*10) / 10
}

// countMissing counts distinct required skills that did not match, so the
// denominator is the distinct required set even when the input repeats skills.
func countMissing(required []string, matched map[string]bool) int {
	distinct := make(map[string]bool, len(required))
	for _, s := range required {
		if !matched[s] {
			distinct[s] = true
		}
	}
	return len(distinct)
}

// Score computes the composite compatibility score of one volunteer against
// one event: skill percentage plus availability, location, and urgency
// bonuses per w.
func Score(p models.Profile, e models.Event, w Weights) Candidate {
	matching, pct := SkillOverlap(p.Skills, e.RequiredSkills)

	c := Candidate{
		Profile:              p,
		SkillMatchPercentage: pct,
		MatchingSkills:       matching,
	}

	score := pct

	if windowCovers(p.Availability, e.EventDate, e.StartTime) {
		c.AvailabilityMatch = true
		score += w.Availability
	}

	if p.State != "" && strings.EqualFold(p.State, e.State) {
		c.LocationMatch = true
		score += w.StateMatch
		if p.City != "" && cityMatches(p.City, e.City) {
			score += w.CityMatch
		}
	}

	score += float64(e.Urgency.Rank()) * w.UrgencyStep

	c.Score = math.Round(score*10) / 10
	return c
}

// windowCovers reports whether any weekly window falls on the event's
// weekday and spans its start time. Unparseable times never match.
func windowCovers(windows []models.AvailabilityWindow, date time.Time, startTime string) bool {
	if len(windows) == 0 || date.IsZero() {
		return false
	}
	start, err := time.Parse("15:04", startTime)
	if err != nil {
		return false
	}
	weekday := date.Weekday().String()
	for _, win := range windows {
		if !strings.EqualFold(win.Day, weekday) {
			continue
		}
		lo, err := time.Parse("15:04", win.Start)
		if err != nil {
			continue
		}
		hi, err := time.Parse("15:04", win.End)
		if err != nil {
			continue
		}
		if !start.Before(lo) && !start.After(hi) {
			return true
		}
	}
	return false
}

func cityMatches(volunteerCity, eventCity string) bool {
	if eventCity == "" {
		return false
	}
	a := strings.ToLower(strings.TrimSpace(volunteerCity))
	b := strings.ToLower(strings.TrimSpace(eventCity))
	return a == b || strings.Contains(a, b) || strings.Contains(b, a)
}

// Rank orders candidates best-first: score descending, then skill percentage
// descending, then earlier event date, then volunteer ID ascending so the
// order is deterministic.
func Rank(candidates []Candidate, eventDate func(Candidate) time.Time) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.SkillMatchPercentage != b.SkillMatchPercentage {
			return a.SkillMatchPercentage > b.SkillMatchPercentage
		}
		if eventDate != nil {
			da, db := eventDate(a), eventDate(b)
			if !da.Equal(db) {
				return da.Before(db)
			}
		}
		return a.Profile.UserID < b.Profile.UserID
	})
}

// RankForEvent scores every profile against the event and returns them
// best-first.
func RankForEvent(profiles []models.Profile, e models.Event, w Weights) []Candidate {
	candidates := make([]Candidate, 0, len(profiles))
	for _, p := range profiles {
		candidates = append(candidates, Score(p, e, w))
	}
	Rank(candidates, nil)
	return candidates
}
