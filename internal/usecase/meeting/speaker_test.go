package meeting

import (
	"testing"

	"github.com/johnquangdev/meeting-facilitator/internal/domain/entities"
)

var knownNames = []string{"Sarah", "John", "Alex", "Maria", "Mike"}

func TestIdentify_KnownNameAnywhereInFragment(t *testing.T) {
	s := NewSpeakerIdentifier(knownNames)

	if got := s.Identify("I think sarah should own the budget review"); got != "Sarah" {
		t.Errorf("expected Sarah, got %q", got)
	}
}

func TestIdentify_FirstKnownNameWins(t *testing.T) {
	s := NewSpeakerIdentifier(knownNames)

	if got := s.Identify("Sarah asked John to help"); got != "Sarah" {
		t.Errorf("expected Sarah, got %q", got)
	}
}

func TestIdentify_CapitalizedFirstWordFallback(t *testing.T) {
	s := NewSpeakerIdentifier(knownNames)

	if got := s.Identify("Bob: I can take the release notes"); got != "Bob" {
		t.Errorf("expected Bob, got %q", got)
	}
}

func TestIdentify_Unknown(t *testing.T) {
	s := NewSpeakerIdentifier(knownNames)

	cases := []string{"yeah that works for me", "Ok then", ""}
	for _, transcript := range cases {
		if got := s.Identify(transcript); got != entities.SpeakerUnknown {
			t.Errorf("%q: expected Unknown, got %q", transcript, got)
		}
	}
}

func TestRecordTurn_AccumulatesCounters(t *testing.T) {
	s := NewSpeakerIdentifier(knownNames)
	participation := map[string]entities.SpeakerStats{}

	s.RecordTurn(participation, "Sarah", "I will send the budget by Friday")
	s.RecordTurn(participation, "Sarah", "and follow up next week")

	stats := participation["Sarah"]
	if stats.Turns != 2 {
		t.Errorf("expected 2 turns, got %d", stats.Turns)
	}
	if stats.Time <= 0 {
		t.Errorf("expected positive talk time, got %v", stats.Time)
	}
}

func TestRecordTurn_NeverRecasesExistingKey(t *testing.T) {
	s := NewSpeakerIdentifier(knownNames)
	participation := map[string]entities.SpeakerStats{
		"Sarah": {Turns: 1, Time: 2.0},
	}

	s.RecordTurn(participation, "sarah", "quick follow up")

	if _, ok := participation["sarah"]; ok {
		t.Fatal("expected existing key casing to be reused, found new lowercase key")
	}
	if got := participation["Sarah"]; got.Turns != 2 {
		t.Errorf("expected 2 turns under original key, got %+v", got)
	}
}
