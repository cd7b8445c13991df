package extract

import (
	"strings"

	"github.com/johnquangdev/meeting-facilitator/internal/domain/entities"
)

// containmentIndex deduplicates items by fuzzy containment: a candidate
// key is a duplicate when it contains, or is contained by, any known
// key. "review the doc" and "review the doc tonight" collapse to one.
type containmentIndex struct {
	keys []string
}

func newContainmentIndex() *containmentIndex {
	return &containmentIndex{keys: make([]string, 0, 16)}
}

// Seed loads the keys of everything already in the meeting state, so a
// new fragment cannot re-add items from earlier fragments.
func (ix *containmentIndex) Seed(state *entities.MeetingState) {
	if state == nil {
		return
	}
	for _, a := range state.Actions {
		ix.Add(actionKey(a.Speaker, a.Task))
	}
	for _, d := range state.Decisions {
		ix.Add(normalizeKey(d))
	}
	for _, p := range state.ParkingLot {
		ix.Add(normalizeKey(p))
	}
}

// Has reports whether key is a near-duplicate of a known key
func (ix *containmentIndex) Has(key string) bool {
	if key == "" {
		return true
	}
	for _, known := range ix.keys {
		if strings.Contains(known, key) || strings.Contains(key, known) {
			return true
		}
	}
	return false
}

// Add registers a key. Callers must check Has first; Add does not.
func (ix *containmentIndex) Add(key string) {
	if key != "" {
		ix.keys = append(ix.keys, key)
	}
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// actionKey scopes the task to the speaker, so two people taking the
// same task are two separate entries.
func actionKey(speaker, task string) string {
	return normalizeKey(speaker) + ":" + normalizeKey(task)
}

// itemKey derives the dedup key for an extracted item
func itemKey(item entities.Item) string {
	switch item.Type {
	case entities.ItemTypeActionItem:
		return actionKey(item.Speaker, item.Details[entities.DetailTask])
	case entities.ItemTypeDecision:
		return normalizeKey(item.Details[entities.DetailWhat])
	case entities.ItemTypeParkingLot:
		return normalizeKey(item.Details[entities.DetailItem])
	default:
		return ""
	}
}
