package entities

// Sentiment is the overall meeting mood
type Sentiment string

const (
	SentimentNeutral  Sentiment = "neutral"
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
)

// Energy is the overall meeting energy level
type Energy string

const (
	EnergyLow    Energy = "low"
	EnergyMedium Energy = "medium"
	EnergyHigh   Energy = "high"
)

// ActionEntry is one accepted action item in the running state
type ActionEntry struct {
	Speaker    string  `json:"speaker"`
	Task       string  `json:"task"`
	Deadline   string  `json:"deadline"`
	Confidence float64 `json:"confidence"`
}

// SpeakerStats tracks per-speaker participation counters
type SpeakerStats struct {
	Turns int     `json:"turns"`
	Time  float64 `json:"time"`
}

// MeetingState is the cumulative structured record of one live meeting.
// One instance is owned exclusively by its session; fragments must be
// applied one at a time, in arrival order.
//
// Actions, Decisions and ParkingLot never contain two entries that are
// near-duplicates under the containment rule, and Participation keys keep
// the casing they were first inserted with.
type MeetingState struct {
	Actions       []ActionEntry           `json:"actions"`
	Decisions     []string                `json:"decisions"`
	ParkingLot    []string                `json:"parking_lot"`
	Participation map[string]SpeakerStats `json:"participation"`
	Sentiment     Sentiment               `json:"sentiment"`
	Energy        Energy                  `json:"energy"`
}

// NewMeetingState creates an empty state with default mood values
func NewMeetingState() *MeetingState {
	return &MeetingState{
		Actions:       make([]ActionEntry, 0),
		Decisions:     make([]string, 0),
		ParkingLot:    make([]string, 0),
		Participation: make(map[string]SpeakerStats),
		Sentiment:     SentimentNeutral,
		Energy:        EnergyMedium,
	}
}

// Clone returns a deep copy so the extraction pipeline can work on a
// snapshot without mutating the session's state.
func (s *MeetingState) Clone() *MeetingState {
	if s == nil {
		return nil
	}
	c := &MeetingState{
		Actions:       make([]ActionEntry, len(s.Actions)),
		Decisions:     make([]string, len(s.Decisions)),
		ParkingLot:    make([]string, len(s.ParkingLot)),
		Participation: make(map[string]SpeakerStats, len(s.Participation)),
		Sentiment:     s.Sentiment,
		Energy:        s.Energy,
	}
	copy(c.Actions, s.Actions)
	copy(c.Decisions, s.Decisions)
	copy(c.ParkingLot, s.ParkingLot)
	for k, v := range s.Participation {
		c.Participation[k] = v
	}
	return c
}

// Normalize replaces nil collections with empty ones. JSON-decoded states
// from clients arrive with nil slices for absent fields.
func (s *MeetingState) Normalize() {
	if s.Actions == nil {
		s.Actions = make([]ActionEntry, 0)
	}
	if s.Decisions == nil {
		s.Decisions = make([]string, 0)
	}
	if s.ParkingLot == nil {
		s.ParkingLot = make([]string, 0)
	}
	if s.Participation == nil {
		s.Participation = make(map[string]SpeakerStats)
	}
	if s.Sentiment == "" {
		s.Sentiment = SentimentNeutral
	}
	if s.Energy == "" {
		s.Energy = EnergyMedium
	}
}
