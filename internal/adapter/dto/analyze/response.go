package analyze

import "github.com/johnquangdev/meeting-facilitator/internal/domain/entities"

// Response is the envelope returned for every processed fragment: the
// newly discovered interventions plus the full updated meeting state.
// Transcript, Confidence and Language are only set for audio fragments
// that went through speech-to-text.
type Response struct {
	Interventions []entities.Item        `json:"interventions"`
	State         *entities.MeetingState `json:"state"`
	Transcript    string                 `json:"transcript,omitempty"`
	Confidence    float64                `json:"confidence,omitempty"`
	Language      string                 `json:"language,omitempty"`
}
