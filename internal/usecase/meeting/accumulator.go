package meeting

import (
	"github.com/johnquangdev/meeting-facilitator/errors"
	"github.com/johnquangdev/meeting-facilitator/internal/domain/entities"
)

// Merge applies one reconciled delta to the running meeting state and
// returns the updated state. This is the only place overall state is
// mutated; it must run exactly once per accepted fragment, in arrival
// order.
//
// Actions, decisions and parking-lot entries concatenate (the
// reconciler already deduplicated them). Participation merges key-wise:
// counters for speakers the delta does not mention are preserved.
// Sentiment and energy are replaced only when the delta carries a
// value.
//
// A nil or structurally broken input is a programming defect upstream,
// not a data issue, so it fails loudly instead of degrading.
func Merge(state, delta *entities.MeetingState) (*entities.MeetingState, error) {
	if state == nil {
		return nil, errors.ErrInvalidState("meeting state is nil")
	}
	if delta == nil {
		return nil, errors.ErrInvalidState("state delta is nil")
	}
	if state.Participation == nil {
		return nil, errors.ErrInvalidState("meeting state is missing participation map")
	}

	merged := state.Clone()
	merged.Actions = append(merged.Actions, delta.Actions...)
	merged.Decisions = append(merged.Decisions, delta.Decisions...)
	merged.ParkingLot = append(merged.ParkingLot, delta.ParkingLot...)
	for speaker, stats := range delta.Participation {
		merged.Participation[speaker] = stats
	}
	if delta.Sentiment != "" {
		merged.Sentiment = delta.Sentiment
	}
	if delta.Energy != "" {
		merged.Energy = delta.Energy
	}

	return merged, nil
}
