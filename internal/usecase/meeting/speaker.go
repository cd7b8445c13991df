package meeting

import (
	"strings"
	"unicode"

	"github.com/johnquangdev/meeting-facilitator/internal/domain/entities"
)

// wordsPerSecond approximates conversational speaking rate, used to
// estimate talk time from a text fragment.
const wordsPerSecond = 2.5

// SpeakerIdentifier attributes transcript fragments to a speaker. It is
// a best-effort heuristic: a known-names lookup with a capitalized
// first-word fallback.
type SpeakerIdentifier struct {
	knownNames []string
}

// NewSpeakerIdentifier creates an identifier over the configured
// known-names list
func NewSpeakerIdentifier(knownNames []string) *SpeakerIdentifier {
	return &SpeakerIdentifier{knownNames: knownNames}
}

// Identify returns the display name for the fragment's speaker. The
// first known name appearing anywhere in the fragment wins, in its
// configured casing. With no known name, a capitalized first word
// longer than two characters is taken as the speaker; otherwise
// "Unknown".
func (s *SpeakerIdentifier) Identify(transcript string) string {
	lower := strings.ToLower(transcript)
	for _, name := range s.knownNames {
		if name != "" && strings.Contains(lower, strings.ToLower(name)) {
			return name
		}
	}

	fields := strings.Fields(transcript)
	if len(fields) > 0 {
		first := strings.Trim(fields[0], ".,:;!?\"'")
		runes := []rune(first)
		if len(runes) > 2 && unicode.IsUpper(runes[0]) {
			return first
		}
	}

	return entities.SpeakerUnknown
}

// RecordTurn updates the speaker's participation counters for one
// fragment. Existing map keys are matched case-insensitively and never
// re-cased; the first inserted casing is the stable display name.
func (s *SpeakerIdentifier) RecordTurn(participation map[string]entities.SpeakerStats, speaker, transcript string) {
	if participation == nil || speaker == "" {
		return
	}

	key := speaker
	for existing := range participation {
		if strings.EqualFold(existing, speaker) {
			key = existing
			break
		}
	}

	stats := participation[key]
	stats.Turns++
	stats.Time += float64(len(strings.Fields(transcript))) / wordsPerSecond
	participation[key] = stats
}
