package extract

import (
	"context"
	"testing"
	"time"

	"github.com/johnquangdev/meeting-facilitator/errors"
	"github.com/johnquangdev/meeting-facilitator/internal/domain/entities"
)

type fakeCompleter struct {
	response string
	err      error
	calls    int
}

func (f *fakeCompleter) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func newPrimary(c Completer) *PrimaryExtractor {
	return NewPrimaryExtractor(c, DefaultRules(), 10*time.Millisecond, nil)
}

func TestPrimaryExtract_Success(t *testing.T) {
	fake := &fakeCompleter{response: `{"items": [
		{"type": "action_item", "speaker": "Maria", "task": "update the roadmap", "deadline": "Thursday"},
		{"type": "decision", "decision": "postpone the launch"},
		{"type": "parking_lot", "item": "hiring plan"}
	]}`}

	items, err := newPrimary(fake).Extract(context.Background(), "some transcript", entities.NewMeetingState())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d: %v", len(items), items)
	}
	if items[0].Type != entities.ItemTypeActionItem || items[0].Speaker != "Maria" {
		t.Errorf("unexpected first item: %+v", items[0])
	}
	// model gave no confidence, the adapter's default applies
	if items[0].Confidence != 0.9 {
		t.Errorf("expected default confidence 0.9, got %v", items[0].Confidence)
	}
	// speaker-less decisions and parking items belong to the Team
	if items[1].Speaker != entities.SpeakerTeam || items[2].Speaker != entities.SpeakerTeam {
		t.Errorf("expected Team attribution, got %q and %q", items[1].Speaker, items[2].Speaker)
	}
}

func TestPrimaryExtract_StripsMarkdownFence(t *testing.T) {
	fake := &fakeCompleter{response: "```json\n{\"items\": [{\"type\": \"parking_lot\", \"item\": \"hiring plan\"}]}\n```"}

	items, err := newPrimary(fake).Extract(context.Background(), "some transcript", entities.NewMeetingState())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
}

func TestPrimaryExtract_MissingItemsArrayIsMalformed(t *testing.T) {
	fake := &fakeCompleter{response: `{"actions": []}`}

	_, err := newPrimary(fake).Extract(context.Background(), "some transcript", entities.NewMeetingState())
	if !errors.IsCode(err, errors.ErrorCode_AI_MALFORMED_RESPONSE) {
		t.Fatalf("expected AI_MALFORMED_RESPONSE, got %v", err)
	}
	if fake.calls != 1 {
		t.Errorf("malformed output must not be retried, got %d calls", fake.calls)
	}
}

func TestPrimaryExtract_NonObjectIsMalformed(t *testing.T) {
	fake := &fakeCompleter{response: `[1, 2, 3]`}

	_, err := newPrimary(fake).Extract(context.Background(), "some transcript", entities.NewMeetingState())
	if !errors.IsCode(err, errors.ErrorCode_AI_MALFORMED_RESPONSE) {
		t.Fatalf("expected AI_MALFORMED_RESPONSE, got %v", err)
	}
}

func TestPrimaryExtract_RetriesUpstreamFailure(t *testing.T) {
	fake := &fakeCompleter{err: errors.ErrUpstreamUnavailable(context.DeadlineExceeded)}

	_, err := newPrimary(fake).Extract(context.Background(), "some transcript", entities.NewMeetingState())
	if !errors.IsCode(err, errors.ErrorCode_AI_UPSTREAM_UNAVAILABLE) {
		t.Fatalf("expected AI_UPSTREAM_UNAVAILABLE, got %v", err)
	}
	if fake.calls < 1 {
		t.Errorf("expected at least one attempt, got %d", fake.calls)
	}
}

func TestPrimaryExtract_DropsInvalidItems(t *testing.T) {
	fake := &fakeCompleter{response: `{"items": [
		{"type": "action_item", "speaker": "Sarah", "task": "do something", "deadline": "Friday"},
		{"type": "action_item", "speaker": "Sarah", "task": "send the budget", "deadline": "Friday"}
	]}`}

	items, err := newPrimary(fake).Extract(context.Background(), "some transcript", entities.NewMeetingState())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item after validation, got %d: %v", len(items), items)
	}
	if items[0].Details[entities.DetailTask] != "send the budget" {
		t.Errorf("wrong item survived: %+v", items[0])
	}
}

func TestPrimaryExtract_SkipsUnknownTypes(t *testing.T) {
	fake := &fakeCompleter{response: `{"items": [
		{"type": "question", "item": "who owns this"},
		{"type": "parking_lot", "item": "hiring plan"}
	]}`}

	items, err := newPrimary(fake).Extract(context.Background(), "some transcript", entities.NewMeetingState())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d: %v", len(items), items)
	}
}
