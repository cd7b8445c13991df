package extract

import (
	"testing"

	"github.com/johnquangdev/meeting-facilitator/internal/domain/entities"
)

func newPatterns() *PatternExtractor {
	return NewPatternExtractor(DefaultRules(), nil)
}

func TestExtractActions_TwoCommitmentsInOneSentence(t *testing.T) {
	p := newPatterns()

	items := p.Extract("Sarah will send the budget by Friday and John will review it by Monday", entities.NewMeetingState())

	if len(items) != 2 {
		t.Fatalf("expected 2 actions, got %d: %v", len(items), items)
	}
	first, second := items[0], items[1]
	if first.Speaker != "Sarah" || first.Details[entities.DetailTask] != "send the budget" || first.Details[entities.DetailDeadline] != "Friday" {
		t.Errorf("unexpected first action: %+v", first)
	}
	if second.Speaker != "John" || second.Details[entities.DetailTask] != "review it" || second.Details[entities.DetailDeadline] != "Monday" {
		t.Errorf("unexpected second action: %+v", second)
	}
}

func TestExtractActions_RunOnTaskRejected(t *testing.T) {
	p := newPatterns()

	items := p.Extract("Mike will fix the build and update the docs by Friday", entities.NewMeetingState())

	for _, item := range items {
		if item.Type == entities.ItemTypeActionItem {
			t.Fatalf("expected run-on task to be rejected, got %+v", item)
		}
	}
}

func TestExtractActions_RendersContent(t *testing.T) {
	p := newPatterns()

	items := p.Extract("Maria will update the roadmap by next Thursday", entities.NewMeetingState())

	if len(items) != 1 {
		t.Fatalf("expected 1 action, got %d", len(items))
	}
	if items[0].Content != "Maria will update the roadmap by next Thursday" {
		t.Errorf("unexpected content %q", items[0].Content)
	}
}

func TestExtractParking_TableWithQualifier(t *testing.T) {
	p := newPatterns()

	items := p.Extract("Let's table the pricing model for later", entities.NewMeetingState())

	if len(items) != 1 {
		t.Fatalf("expected 1 parking item, got %d: %v", len(items), items)
	}
	if items[0].Type != entities.ItemTypeParkingLot {
		t.Fatalf("expected parking_lot, got %s", items[0].Type)
	}
	if topic := items[0].Details[entities.DetailItem]; topic != "pricing model" {
		t.Errorf("expected topic %q, got %q", "pricing model", topic)
	}
}

func TestExtractParking_GenericCappedAtOne(t *testing.T) {
	p := newPatterns()

	items := p.Extract("We should discuss it later. Let's talk about it later. We can come back to it.", entities.NewMeetingState())

	if len(items) != 1 {
		t.Fatalf("expected exactly 1 parking item, got %d: %v", len(items), items)
	}
	if topic := items[0].Details[entities.DetailItem]; topic != "discussion topic" {
		t.Errorf("expected generic topic, got %q", topic)
	}
}

func TestExtractParking_SpecificSuppressesGeneric(t *testing.T) {
	p := newPatterns()

	items := p.Extract("Let's park the budget discussion and come back to it", entities.NewMeetingState())

	if len(items) != 1 {
		t.Fatalf("expected 1 parking item, got %d: %v", len(items), items)
	}
	if topic := items[0].Details[entities.DetailItem]; topic != "budget" {
		t.Errorf("expected topic %q, got %q", "budget", topic)
	}
}

func TestExtractParking_DedupAgainstKnownState(t *testing.T) {
	p := newPatterns()
	state := entities.NewMeetingState()
	state.ParkingLot = append(state.ParkingLot, "pricing model")

	items := p.Extract("Let's table the pricing model for later", state)

	if len(items) != 0 {
		t.Fatalf("expected no new items, got %v", items)
	}
}

func TestExtractDecisions_NamedSpeaker(t *testing.T) {
	p := newPatterns()

	items := p.Extract("Sarah decided to switch to weekly standups", entities.NewMeetingState())

	if len(items) != 1 {
		t.Fatalf("expected 1 decision, got %d: %v", len(items), items)
	}
	if items[0].Speaker != "Sarah" {
		t.Errorf("expected speaker Sarah, got %q", items[0].Speaker)
	}
	if what := items[0].Details[entities.DetailWhat]; what != "use switch to weekly standups" {
		t.Errorf("unexpected decision text %q", what)
	}
}

func TestExtractDecisions_CollectiveSubjectGoesToTeam(t *testing.T) {
	p := newPatterns()

	items := p.Extract("After a long debate we decided to postpone the launch", entities.NewMeetingState())

	if len(items) != 1 {
		t.Fatalf("expected 1 decision, got %d: %v", len(items), items)
	}
	if items[0].Speaker != entities.SpeakerTeam {
		t.Errorf("expected speaker Team, got %q", items[0].Speaker)
	}
	if what := items[0].Details[entities.DetailWhat]; what != "postpone the launch" {
		t.Errorf("unexpected decision text %q", what)
	}
}

func TestExtractDecisions_GoWith(t *testing.T) {
	p := newPatterns()

	items := p.Extract("Fine, let's go with the managed database", entities.NewMeetingState())

	if len(items) != 1 {
		t.Fatalf("expected 1 decision, got %d: %v", len(items), items)
	}
	if what := items[0].Details[entities.DetailWhat]; what != "use the managed database" {
		t.Errorf("unexpected decision text %q", what)
	}
}

func TestExtract_ParkingPrecedesActions(t *testing.T) {
	p := newPatterns()

	items := p.Extract("Let's table the roadmap for later. Sarah will draft the plan by Monday.", entities.NewMeetingState())

	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d: %v", len(items), items)
	}
	if items[0].Type != entities.ItemTypeParkingLot {
		t.Errorf("expected parking_lot first, got %s", items[0].Type)
	}
	if items[1].Type != entities.ItemTypeActionItem {
		t.Errorf("expected action_item second, got %s", items[1].Type)
	}
}

func TestExtract_IdempotentOnResubmission(t *testing.T) {
	p := newPatterns()
	transcript := "Sarah will send the budget by Friday. We agreed to postpone the launch. Let's table the pricing model for later."

	state := entities.NewMeetingState()
	first := p.Extract(transcript, state)
	if len(first) != 3 {
		t.Fatalf("expected 3 items on first pass, got %d: %v", len(first), first)
	}

	for _, item := range first {
		switch item.Type {
		case entities.ItemTypeActionItem:
			state.Actions = append(state.Actions, entities.ActionEntry{
				Speaker: item.Speaker, Task: item.Details[entities.DetailTask], Deadline: item.Details[entities.DetailDeadline],
			})
		case entities.ItemTypeDecision:
			state.Decisions = append(state.Decisions, item.Details[entities.DetailWhat])
		case entities.ItemTypeParkingLot:
			state.ParkingLot = append(state.ParkingLot, item.Details[entities.DetailItem])
		}
	}

	second := p.Extract(transcript, state)
	if len(second) != 0 {
		t.Fatalf("expected no items on resubmission, got %v", second)
	}
}
