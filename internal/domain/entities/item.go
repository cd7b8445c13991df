package entities

import "fmt"

// ItemType selects which detail fields apply to an extracted item
type ItemType string

const (
	ItemTypeActionItem ItemType = "action_item"
	ItemTypeDecision   ItemType = "decision"
	ItemTypeParkingLot ItemType = "parking_lot"
)

// Detail field keys per item type
const (
	DetailTask     = "task"
	DetailDeadline = "deadline"
	DetailPriority = "priority"
	DetailWhat     = "what"
	DetailItem     = "item"
)

// Speaker attribution for items not tied to a named participant
const (
	SpeakerTeam    = "Team"
	SpeakerUnknown = "Unknown"
)

// Item is one extracted meeting fact. Content is always derived from
// Type/Speaker/Details via Render, never authored separately.
type Item struct {
	Type       ItemType          `json:"type"`
	Confidence float64           `json:"confidence"`
	Speaker    string            `json:"speaker"`
	Content    string            `json:"content"`
	Details    map[string]string `json:"details"`
}

// NewActionItem creates an action_item with rendered content
func NewActionItem(speaker, task, deadline string, confidence float64) Item {
	it := Item{
		Type:       ItemTypeActionItem,
		Confidence: confidence,
		Speaker:    speaker,
		Details: map[string]string{
			DetailTask:     task,
			DetailDeadline: deadline,
			DetailPriority: "medium",
		},
	}
	it.Content = it.Render()
	return it
}

// NewDecision creates a decision item with rendered content
func NewDecision(speaker, what string, confidence float64) Item {
	it := Item{
		Type:       ItemTypeDecision,
		Confidence: confidence,
		Speaker:    speaker,
		Details:    map[string]string{DetailWhat: what},
	}
	it.Content = it.Render()
	return it
}

// NewParkingLot creates a parking_lot item with rendered content
func NewParkingLot(speaker, topic string, confidence float64) Item {
	it := Item{
		Type:       ItemTypeParkingLot,
		Confidence: confidence,
		Speaker:    speaker,
		Details:    map[string]string{DetailItem: topic},
	}
	it.Content = it.Render()
	return it
}

// Render derives the human-readable content deterministically from the
// item's type, speaker and details. Re-rendering the same item always
// produces the same string.
func (i Item) Render() string {
	switch i.Type {
	case ItemTypeActionItem:
		return fmt.Sprintf("%s will %s by %s", i.Speaker, i.Details[DetailTask], i.Details[DetailDeadline])
	case ItemTypeDecision:
		return fmt.Sprintf("Decision: %s", i.Details[DetailWhat])
	case ItemTypeParkingLot:
		return fmt.Sprintf("Parked for later: %s", i.Details[DetailItem])
	default:
		return ""
	}
}
