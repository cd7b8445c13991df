package extract

import (
	"regexp"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-facilitator/internal/domain/entities"
	"github.com/johnquangdev/meeting-facilitator/internal/infrastructure/observability"
)

const patternConfidence = 0.85

// genericParkingTopic is recorded when a fragment postpones "it" or
// "this" without naming the subject. Capped at one entry per fragment.
const genericParkingTopic = "discussion topic"

var (
	actionRe = regexp.MustCompile(`(?i)\b(\w+)\s+will\s+(.+?)\s+by\s+(\w+(?:\s+\w+)?)`)

	parkingSpecificRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bpark\s+(?:the\s+)?(.+?)\s+discussion\b`),
		regexp.MustCompile(`(?i)\bdiscuss\s+(?:the\s+)?(.+?)\s+(?:later|next\s+time)\b`),
		regexp.MustCompile(`(?i)\btable\s+(?:the\s+)?([^.,;!?]+)`),
	}

	parkingGenericRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bdiscuss\s+(?:it|this|that)\s+later\b`),
		regexp.MustCompile(`(?i)\btalk\s+about\s+(?:it|this|that)\s+later\b`),
		regexp.MustCompile(`(?i)\bcome\s+back\s+to\s+(?:it|this|that)\b`),
	}

	decisionNamedRe  = regexp.MustCompile(`(?i)\b(\w+)\s+decided\s+to\s+([^.,;!?]+)`)
	decisionAgreedRe = regexp.MustCompile(`(?i)\b(?:we|the\s+team|team)\s+(?:decided|agreed)\s+to\s+([^.,;!?]+)`)
	decisionGoWithRe = regexp.MustCompile(`(?i)\b(?:let'?s|we'?ll)\s+(?:go\s+with|use)\s+([^.,;!?]+)`)
)

// PatternExtractor finds action items, decisions and parking-lot topics
// with surface-form rules. It always runs, whether or not the primary
// extractor succeeded, so the session never goes blind when the model
// is down.
type PatternExtractor struct {
	rules  Rules
	logger *zap.Logger
}

// NewPatternExtractor creates a new PatternExtractor
func NewPatternExtractor(rules Rules, logger *zap.Logger) *PatternExtractor {
	return &PatternExtractor{rules: rules, logger: logger}
}

// Extract runs all pattern families over the transcript, deduplicating
// against entries already present in state.
func (p *PatternExtractor) Extract(transcript string, state *entities.MeetingState) []entities.Item {
	ix := newContainmentIndex()
	ix.Seed(state)
	return p.extract(transcript, ix)
}

// extract shares the caller's working index so results from an earlier
// extraction pass over the same fragment are respected. Family order is
// fixed: parking-specific, parking-generic, actions, decisions.
func (p *PatternExtractor) extract(transcript string, ix *containmentIndex) []entities.Item {
	items := make([]entities.Item, 0)
	items = append(items, p.extractParking(transcript, ix)...)
	items = append(items, p.extractActions(transcript, ix)...)
	items = append(items, p.extractDecisions(transcript, ix)...)
	return items
}

func (p *PatternExtractor) extractParking(transcript string, ix *containmentIndex) []entities.Item {
	items := make([]entities.Item, 0)

	addedSpecific := false
	for _, re := range parkingSpecificRes {
		for _, m := range re.FindAllStringSubmatch(transcript, -1) {
			topic := trimParkingTopic(m[1])
			item := entities.NewParkingLot(entities.SpeakerTeam, topic, patternConfidence)
			if !p.admit(&item, ix) {
				continue
			}
			items = append(items, item)
			addedSpecific = true
		}
	}
	if addedSpecific {
		return items
	}

	// Generic "deal with it later" phrasings map to one fixed topic, at
	// most once per fragment, and only when no named topic was parked.
	for _, re := range parkingGenericRes {
		if !re.MatchString(transcript) {
			continue
		}
		item := entities.NewParkingLot(entities.SpeakerTeam, genericParkingTopic, patternConfidence)
		if p.admit(&item, ix) {
			items = append(items, item)
		}
		break
	}

	return items
}

func (p *PatternExtractor) extractActions(transcript string, ix *containmentIndex) []entities.Item {
	items := make([]entities.Item, 0)

	for _, m := range actionRe.FindAllStringSubmatch(transcript, -1) {
		speaker := capitalize(m[1])
		task := trimTrailingConjunction(strings.TrimSpace(m[2]))
		deadline := trimTrailingConjunction(strings.TrimSpace(m[3]))

		// Run-on guard: "Sarah will do X and Y and Z by whenever" is
		// almost always a mis-split sentence, not a real commitment.
		lowTask := strings.ToLower(task)
		if strings.Contains(lowTask, "something") || strings.Contains(lowTask, " and ") {
			continue
		}

		item := entities.NewActionItem(speaker, task, deadline, patternConfidence)
		if p.admit(&item, ix) {
			items = append(items, item)
		}
	}

	return items
}

func (p *PatternExtractor) extractDecisions(transcript string, ix *containmentIndex) []entities.Item {
	items := make([]entities.Item, 0)

	for _, m := range decisionNamedRe.FindAllStringSubmatch(transcript, -1) {
		name := m[1]
		if isCollectiveSubject(name) {
			// "we decided to X" belongs to the Team patterns below
			continue
		}
		item := entities.NewDecision(capitalize(name), decisionText(m[2]), patternConfidence)
		if p.admit(&item, ix) {
			items = append(items, item)
		}
	}

	for _, m := range decisionAgreedRe.FindAllStringSubmatch(transcript, -1) {
		what := strings.TrimSpace(trimTrailingConjunction(m[1]))
		item := entities.NewDecision(entities.SpeakerTeam, what, patternConfidence)
		if p.admit(&item, ix) {
			items = append(items, item)
		}
	}

	for _, m := range decisionGoWithRe.FindAllStringSubmatch(transcript, -1) {
		item := entities.NewDecision(entities.SpeakerTeam, decisionText(m[1]), patternConfidence)
		if p.admit(&item, ix) {
			items = append(items, item)
		}
	}

	return items
}

// admit runs validation and containment dedup; accepted items are
// registered in the working index.
func (p *PatternExtractor) admit(item *entities.Item, ix *containmentIndex) bool {
	if !p.rules.Validate(*item) {
		observability.RecordRejected("validation")
		if p.logger != nil {
			p.logger.Debug("🧹 Dropped noise item",
				zap.String("type", string(item.Type)),
				zap.String("content", item.Content),
			)
		}
		return false
	}
	key := itemKey(*item)
	if ix.Has(key) {
		observability.RecordRejected("duplicate")
		return false
	}
	ix.Add(key)
	observability.RecordItem("pattern", string(item.Type))
	return true
}

// decisionText normalizes a captured decision phrase into "use <X>"
func decisionText(captured string) string {
	what := strings.TrimSpace(trimTrailingConjunction(captured))
	if strings.HasPrefix(strings.ToLower(what), "use ") {
		return what
	}
	return "use " + what
}

func isCollectiveSubject(name string) bool {
	switch strings.ToLower(name) {
	case "we", "team", "they":
		return true
	}
	return false
}

// trimParkingTopic strips the leading article and trailing postponement
// qualifiers: "the pricing model for later" becomes "pricing model".
func trimParkingTopic(topic string) string {
	topic = strings.TrimSpace(topic)
	if len(topic) > 4 && strings.EqualFold(topic[:4], "the ") {
		topic = topic[4:]
	}
	lower := strings.ToLower(topic)
	for _, suffix := range []string{" for later", " for now", " until later", " until next time", " later", " next time"} {
		if strings.HasSuffix(lower, suffix) {
			topic = strings.TrimSpace(topic[:len(topic)-len(suffix)])
			lower = strings.ToLower(topic)
		}
	}
	return strings.Trim(topic, " .,!?;:")
}

func trimTrailingConjunction(s string) string {
	fields := strings.Fields(s)
	for len(fields) > 0 {
		switch strings.ToLower(fields[len(fields)-1]) {
		case "and", "but", "or", "then":
			fields = fields[:len(fields)-1]
		default:
			return strings.Join(fields, " ")
		}
	}
	return ""
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
