package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-facilitator/errors"
	"github.com/johnquangdev/meeting-facilitator/internal/domain/entities"
	"github.com/johnquangdev/meeting-facilitator/internal/infrastructure/observability"
)

const primaryConfidence = 0.9

// Completer produces raw model output for a prompt. *ai.OllamaClient is
// the production implementation; tests substitute a fake.
type Completer interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// rawItem mirrors one element of the fixed JSON shape the model is
// asked to return. Absent optional fields stay empty strings.
type rawItem struct {
	Type       string  `json:"type"`
	Speaker    string  `json:"speaker"`
	Task       string  `json:"task"`
	Deadline   string  `json:"deadline"`
	Item       string  `json:"item"`
	Decision   string  `json:"decision"`
	Confidence float64 `json:"confidence"`
}

// PrimaryExtractor adapts a generative model into validated items. It
// is best-effort: connection failures and malformed output surface as
// typed errors the reconciler absorbs.
type PrimaryExtractor struct {
	completer Completer
	rules     Rules
	logger    *zap.Logger
	// retryMax bounds the total retry window for transient upstream
	// failures; a stuck model must not stall fragment ingestion.
	retryMax time.Duration
}

// NewPrimaryExtractor creates a new PrimaryExtractor
func NewPrimaryExtractor(completer Completer, rules Rules, retryMax time.Duration, logger *zap.Logger) *PrimaryExtractor {
	if retryMax <= 0 {
		retryMax = 5 * time.Second
	}
	return &PrimaryExtractor{
		completer: completer,
		rules:     rules,
		logger:    logger,
		retryMax:  retryMax,
	}
}

// Extract sends the transcript plus serialized state context to the
// model and converts its JSON reply into validated items. Transient
// upstream failures are retried with exponential backoff; malformed
// output is never retried, a confused model rarely un-confuses itself
// on the same prompt.
func (e *PrimaryExtractor) Extract(ctx context.Context, transcript string, state *entities.MeetingState) ([]entities.Item, error) {
	prompt := buildPrompt(transcript, state)

	var raw string
	call := func() error {
		out, err := e.completer.Generate(ctx, prompt)
		if err != nil {
			if errors.IsCode(err, errors.ErrorCode_AI_UPSTREAM_UNAVAILABLE) {
				return err
			}
			return backoff.Permanent(err)
		}
		raw = out
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.MaxInterval = 2 * time.Second
	bo.MaxElapsedTime = e.retryMax
	if err := backoff.Retry(call, backoff.WithContext(bo, ctx)); err != nil {
		return nil, err
	}

	rawItems, err := parseItems(raw)
	if err != nil {
		return nil, err
	}

	items := make([]entities.Item, 0, len(rawItems))
	for _, ri := range rawItems {
		item, ok := e.toItem(ri)
		if !ok {
			continue
		}
		if !e.rules.Validate(item) {
			observability.RecordRejected("validation")
			if e.logger != nil {
				e.logger.Debug("🧹 Dropped noise item",
					zap.String("type", string(item.Type)),
					zap.String("content", item.Content),
				)
			}
			continue
		}
		items = append(items, item)
	}

	return items, nil
}

// toItem converts one raw model element into the canonical shape.
// Elements with an unrecognized type are skipped, not fatal: the outer
// object still matched the contract.
func (e *PrimaryExtractor) toItem(ri rawItem) (entities.Item, bool) {
	confidence := ri.Confidence
	if confidence <= 0 || confidence > 1 {
		confidence = primaryConfidence
	}

	switch entities.ItemType(ri.Type) {
	case entities.ItemTypeActionItem:
		return entities.NewActionItem(strings.TrimSpace(ri.Speaker), strings.TrimSpace(ri.Task), strings.TrimSpace(ri.Deadline), confidence), true
	case entities.ItemTypeDecision:
		speaker := strings.TrimSpace(ri.Speaker)
		if speaker == "" {
			speaker = entities.SpeakerTeam
		}
		return entities.NewDecision(speaker, strings.TrimSpace(ri.Decision), confidence), true
	case entities.ItemTypeParkingLot:
		speaker := strings.TrimSpace(ri.Speaker)
		if speaker == "" {
			speaker = entities.SpeakerTeam
		}
		return entities.NewParkingLot(speaker, strings.TrimSpace(ri.Item), confidence), true
	default:
		if e.logger != nil {
			e.logger.Debug("🧹 Skipped item with unknown type", zap.String("type", ri.Type))
		}
		return entities.Item{}, false
	}
}

// parseItems decodes the model reply. Anything other than a JSON object
// with an "items" array is a malformed response.
func parseItems(raw string) ([]rawItem, error) {
	cleaned := stripFences(raw)

	var probe map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &probe); err != nil {
		return nil, errors.ErrMalformedResponse(err)
	}
	itemsRaw, ok := probe["items"]
	if !ok {
		return nil, errors.ErrMalformedResponse(fmt.Errorf("missing items array"))
	}
	var items []rawItem
	if err := json.Unmarshal(itemsRaw, &items); err != nil {
		return nil, errors.ErrMalformedResponse(err)
	}
	return items, nil
}

// stripFences removes a surrounding markdown code fence, which smaller
// models add even when told to return bare JSON.
func stripFences(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
	}
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}

func buildPrompt(transcript string, state *entities.MeetingState) string {
	stateJSON := "{}"
	if state != nil {
		if b, err := json.Marshal(state); err == nil {
			stateJSON = string(b)
		}
	}

	return fmt.Sprintf(`You are an expert meeting facilitator.

Analyze this meeting transcript fragment and extract action items, decisions, and parking lot topics.

Current meeting state (do not repeat items already listed here): %s

Transcript: "%s"

Return ONLY valid JSON with this EXACT structure:
{"items": [
  {"type": "action_item", "speaker": "PersonName", "task": "task description", "deadline": "when"},
  {"type": "decision", "speaker": "PersonName", "decision": "what was decided"},
  {"type": "parking_lot", "item": "topic name"}
]}

Do not echo the example values. Return {"items": []} when nothing concrete was said.`, stateJSON, transcript)
}
