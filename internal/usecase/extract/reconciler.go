package extract

import (
	"context"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-facilitator/errors"
	"github.com/johnquangdev/meeting-facilitator/internal/domain/entities"
	"github.com/johnquangdev/meeting-facilitator/internal/infrastructure/observability"
	"github.com/johnquangdev/meeting-facilitator/pkg/sessionctx"
)

// Reconciler merges the primary and pattern extractors' views of one
// transcript fragment against the already-known meeting state. It never
// mutates the state it is given; accepted items come back as a delta
// the accumulator applies.
type Reconciler struct {
	primary  *PrimaryExtractor
	patterns *PatternExtractor
	logger   *zap.Logger
}

// NewReconciler creates a new Reconciler. primary may be nil, which
// runs the pattern pass alone.
func NewReconciler(primary *PrimaryExtractor, patterns *PatternExtractor, logger *zap.Logger) *Reconciler {
	return &Reconciler{primary: primary, patterns: patterns, logger: logger}
}

// Reconcile extracts new items from the fragment. Primary-extractor
// failures narrow extraction to the pattern pass for this fragment;
// they are logged and counted but never returned to the caller. The
// pattern pass runs against the post-primary working index, so it only
// contributes facts the primary pass missed. Interventions preserve
// discovery order: primary items first, then pattern items.
func (r *Reconciler) Reconcile(ctx context.Context, transcript string, state *entities.MeetingState) ([]entities.Item, *entities.MeetingState) {
	ix := newContainmentIndex()
	ix.Seed(state)

	delta := &entities.MeetingState{
		Actions:       make([]entities.ActionEntry, 0),
		Decisions:     make([]string, 0),
		ParkingLot:    make([]string, 0),
		Participation: make(map[string]entities.SpeakerStats),
	}
	interventions := make([]entities.Item, 0)

	if r.primary != nil {
		items, err := r.primary.Extract(ctx, transcript, state)
		if err != nil {
			code := errors.CodeOf(err).String()
			observability.RecordPrimaryFailure(code)
			if r.logger != nil {
				r.logger.Warn("🔄 Primary extractor failed, relying on pattern fallback",
					zap.String("code", code),
					zap.Int("fragment", sessionctx.FragmentSeq(ctx)),
					zap.Error(err),
				)
			}
		} else {
			for _, item := range items {
				key := itemKey(item)
				if ix.Has(key) {
					observability.RecordRejected("duplicate")
					continue
				}
				ix.Add(key)
				observability.RecordItem("primary", string(item.Type))
				applyToDelta(delta, item)
				interventions = append(interventions, item)
			}
		}
	}

	for _, item := range r.patterns.extract(transcript, ix) {
		applyToDelta(delta, item)
		interventions = append(interventions, item)
	}

	return interventions, delta
}

func applyToDelta(delta *entities.MeetingState, item entities.Item) {
	switch item.Type {
	case entities.ItemTypeActionItem:
		delta.Actions = append(delta.Actions, entities.ActionEntry{
			Speaker:    item.Speaker,
			Task:       item.Details[entities.DetailTask],
			Deadline:   item.Details[entities.DetailDeadline],
			Confidence: item.Confidence,
		})
	case entities.ItemTypeDecision:
		delta.Decisions = append(delta.Decisions, item.Details[entities.DetailWhat])
	case entities.ItemTypeParkingLot:
		delta.ParkingLot = append(delta.ParkingLot, item.Details[entities.DetailItem])
	}
}
