package match

// Built-in scoring weights for volunteer-to-event compatibility.
type Weights struct {
	// Availability is added when one of the volunteer's weekly windows
	// covers the event's weekday and start time.
	Availability float64 `yaml:"availability" validate:"gte=0"`

	// StateMatch is added when the volunteer's state equals the event's.
	StateMatch float64 `yaml:"stateMatch" validate:"gte=0"`

	// CityMatch is added on top of StateMatch when the cities also match.
	CityMatch float64 `yaml:"cityMatch" validate:"gte=0"`

	// UrgencyStep is multiplied by the event's urgency rank (low=1 ..
	// critical=4), so more urgent events pull candidates harder.
	UrgencyStep float64 `yaml:"urgencyStep" validate:"gte=0"`
}

// DefaultWeights are the weights used when no override file is configured.
// Skill overlap contributes its raw percentage (0-100) and dominates; the
// bonuses break ties between volunteers with similar skill coverage.
func DefaultWeights() Weights {
	return Weights{
		Availability: 20,
		StateMatch:   10,
		CityMatch:    5,
		UrgencyStep:  2.5,
	}
}
