package extract

import (
	"context"
	"testing"
	"time"

	"github.com/johnquangdev/meeting-facilitator/errors"
	"github.com/johnquangdev/meeting-facilitator/internal/domain/entities"
)

func newReconciler(c Completer) *Reconciler {
	var primary *PrimaryExtractor
	if c != nil {
		primary = NewPrimaryExtractor(c, DefaultRules(), 10*time.Millisecond, nil)
	}
	return NewReconciler(primary, NewPatternExtractor(DefaultRules(), nil), nil)
}

func TestReconcile_PrimarySuccess(t *testing.T) {
	fake := &fakeCompleter{response: `{"items": [{"type": "action_item", "speaker": "Maria", "task": "update the roadmap", "deadline": "Thursday"}]}`}
	r := newReconciler(fake)

	interventions, delta := r.Reconcile(context.Background(), "Maria said she would handle the roadmap", entities.NewMeetingState())

	if len(interventions) != 1 {
		t.Fatalf("expected 1 intervention, got %d: %v", len(interventions), interventions)
	}
	if len(delta.Actions) != 1 || delta.Actions[0].Speaker != "Maria" {
		t.Fatalf("unexpected delta actions: %+v", delta.Actions)
	}
}

func TestReconcile_UpstreamDownDegradesToPatterns(t *testing.T) {
	fake := &fakeCompleter{err: errors.ErrUpstreamUnavailable(context.DeadlineExceeded)}
	r := newReconciler(fake)

	interventions, delta := r.Reconcile(context.Background(),
		"Sarah will send the budget by Friday and John will review it by Monday",
		entities.NewMeetingState())

	if len(interventions) != 2 {
		t.Fatalf("expected 2 interventions from fallback, got %d: %v", len(interventions), interventions)
	}
	if len(delta.Actions) != 2 {
		t.Fatalf("expected 2 actions in delta, got %+v", delta.Actions)
	}
	if delta.Actions[0].Speaker != "Sarah" || delta.Actions[0].Task != "send the budget" || delta.Actions[0].Deadline != "Friday" {
		t.Errorf("unexpected first action: %+v", delta.Actions[0])
	}
	if delta.Actions[1].Speaker != "John" || delta.Actions[1].Task != "review it" || delta.Actions[1].Deadline != "Monday" {
		t.Errorf("unexpected second action: %+v", delta.Actions[1])
	}
}

func TestReconcile_MalformedOutputDegradesToPatterns(t *testing.T) {
	fake := &fakeCompleter{response: "I could not find any items in this transcript."}
	r := newReconciler(fake)

	interventions, delta := r.Reconcile(context.Background(),
		"Let's table the pricing model for later",
		entities.NewMeetingState())

	if len(interventions) != 1 {
		t.Fatalf("expected 1 intervention from fallback, got %d: %v", len(interventions), interventions)
	}
	if len(delta.ParkingLot) != 1 || delta.ParkingLot[0] != "pricing model" {
		t.Fatalf("unexpected parking delta: %+v", delta.ParkingLot)
	}
	if fake.calls != 1 {
		t.Errorf("malformed output must not be retried, got %d calls", fake.calls)
	}
}

func TestReconcile_PatternPassSeesPrimaryResults(t *testing.T) {
	// Both extractors find the same commitment; only one copy survives.
	fake := &fakeCompleter{response: `{"items": [{"type": "action_item", "speaker": "Sarah", "task": "send the budget", "deadline": "Friday"}]}`}
	r := newReconciler(fake)

	interventions, delta := r.Reconcile(context.Background(),
		"Sarah will send the budget by Friday",
		entities.NewMeetingState())

	if len(interventions) != 1 {
		t.Fatalf("expected 1 intervention, got %d: %v", len(interventions), interventions)
	}
	if len(delta.Actions) != 1 {
		t.Fatalf("expected 1 action, got %+v", delta.Actions)
	}
}

func TestReconcile_PrimaryItemsPrecedePatternItems(t *testing.T) {
	fake := &fakeCompleter{response: `{"items": [{"type": "decision", "speaker": "Team", "decision": "postpone the launch"}]}`}
	r := newReconciler(fake)

	interventions, _ := r.Reconcile(context.Background(),
		"Sarah will send the budget by Friday",
		entities.NewMeetingState())

	if len(interventions) != 2 {
		t.Fatalf("expected 2 interventions, got %d: %v", len(interventions), interventions)
	}
	if interventions[0].Type != entities.ItemTypeDecision {
		t.Errorf("expected primary decision first, got %s", interventions[0].Type)
	}
	if interventions[1].Type != entities.ItemTypeActionItem {
		t.Errorf("expected pattern action second, got %s", interventions[1].Type)
	}
}

func TestReconcile_ResubmissionAddsNothing(t *testing.T) {
	r := newReconciler(nil)
	transcript := "Sarah will send the budget by Friday. We agreed to postpone the launch."

	state := entities.NewMeetingState()
	_, delta := r.Reconcile(context.Background(), transcript, state)
	state.Actions = append(state.Actions, delta.Actions...)
	state.Decisions = append(state.Decisions, delta.Decisions...)
	state.ParkingLot = append(state.ParkingLot, delta.ParkingLot...)

	interventions, delta2 := r.Reconcile(context.Background(), transcript, state)
	if len(interventions) != 0 {
		t.Fatalf("expected no interventions on resubmission, got %v", interventions)
	}
	if len(delta2.Actions)+len(delta2.Decisions)+len(delta2.ParkingLot) != 0 {
		t.Fatalf("expected empty delta on resubmission, got %+v", delta2)
	}
}

func TestReconcile_PlaceholderNeverReachesOutput(t *testing.T) {
	fake := &fakeCompleter{response: `{"items": [{"type": "action_item", "speaker": "Sarah", "task": "do something", "deadline": "Friday"}]}`}
	r := newReconciler(fake)

	interventions, delta := r.Reconcile(context.Background(), "nothing concrete was said here", entities.NewMeetingState())

	if len(interventions) != 0 {
		t.Fatalf("expected no interventions, got %v", interventions)
	}
	if len(delta.Actions) != 0 {
		t.Fatalf("expected no actions, got %+v", delta.Actions)
	}
}

func TestReconcile_DeltaCarriesNoMoodOverride(t *testing.T) {
	r := newReconciler(nil)

	_, delta := r.Reconcile(context.Background(), "Sarah will send the budget by Friday", entities.NewMeetingState())

	if delta.Sentiment != "" || delta.Energy != "" {
		t.Fatalf("expected empty mood fields in delta, got %q/%q", delta.Sentiment, delta.Energy)
	}
}
