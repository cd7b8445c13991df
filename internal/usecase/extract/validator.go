package extract

import (
	"encoding/json"
	"strings"

	"github.com/johnquangdev/meeting-facilitator/internal/domain/entities"
	"github.com/johnquangdev/meeting-facilitator/pkg/config"
)

// Rules holds the word lists the item validator filters against. The
// upstream model frequently echoes the instructional schema's example
// values verbatim when it finds nothing real; these lists are the only
// defense.
type Rules struct {
	// PlaceholderPhrases reject any item whose serialized form contains one
	PlaceholderPhrases []string
	// ParkingBlacklist rejects parking topics equal to a generic word
	ParkingBlacklist []string
	// GenericSpeakers reject action items attributed to a template name
	GenericSpeakers []string
}

// DefaultRules returns the shipped word lists
func DefaultRules() Rules {
	return Rules{
		PlaceholderPhrases: []string{
			"name will", "task description", "what was decided", "do something",
			"nothing", "none", "n/a", "example", "placeholder",
		},
		ParkingBlacklist: []string{"nothing", "none", "n/a", "parking", "items", "item", "lot"},
		GenericSpeakers:  []string{"name", "we", "person"},
	}
}

// RulesFromConfig builds Rules from the engine configuration, falling
// back to defaults for any list left empty
func RulesFromConfig(cfg *config.EngineConfig) Rules {
	rules := DefaultRules()
	if cfg == nil {
		return rules
	}
	if len(cfg.PlaceholderPhrases) > 0 {
		rules.PlaceholderPhrases = cfg.PlaceholderPhrases
	}
	if len(cfg.ParkingBlacklist) > 0 {
		rules.ParkingBlacklist = cfg.ParkingBlacklist
	}
	if len(cfg.GenericSpeakers) > 0 {
		rules.GenericSpeakers = cfg.GenericSpeakers
	}
	return rules
}

// Validate reports whether an extracted item is real enough to keep.
// Rejected items are noise: dropped silently, never surfaced as errors.
func (r Rules) Validate(item entities.Item) bool {
	serialized := strings.ToLower(serializeItem(item))
	for _, phrase := range r.PlaceholderPhrases {
		if phrase == "" {
			continue
		}
		if strings.Contains(serialized, strings.ToLower(phrase)) {
			return false
		}
	}

	switch item.Type {
	case entities.ItemTypeParkingLot:
		topic := strings.TrimSpace(item.Details[entities.DetailItem])
		if len(topic) < 4 {
			return false
		}
		for _, word := range r.ParkingBlacklist {
			if strings.EqualFold(topic, word) {
				return false
			}
		}
	case entities.ItemTypeActionItem:
		task := strings.TrimSpace(item.Details[entities.DetailTask])
		if len(task) < 3 {
			return false
		}
		if strings.TrimSpace(item.Details[entities.DetailDeadline]) == "" {
			return false
		}
		speaker := strings.ToLower(strings.TrimSpace(item.Speaker))
		if speaker == "" {
			return false
		}
		for _, generic := range r.GenericSpeakers {
			if speaker == strings.ToLower(generic) {
				return false
			}
		}
	case entities.ItemTypeDecision:
		if len(strings.TrimSpace(item.Details[entities.DetailWhat])) < 3 {
			return false
		}
	default:
		return false
	}

	return true
}

func serializeItem(item entities.Item) string {
	b, err := json.Marshal(item)
	if err != nil {
		return item.Content
	}
	return string(b)
}
