package meeting

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-facilitator/internal/domain/entities"
	"github.com/johnquangdev/meeting-facilitator/internal/infrastructure/observability"
	"github.com/johnquangdev/meeting-facilitator/internal/usecase/extract"
	"github.com/johnquangdev/meeting-facilitator/pkg/sessionctx"
)

// Facilitator processes one transcript fragment end to end: speaker
// attribution, reconciliation, then the single state merge. Callers own
// the returned state; the input state is never mutated.
type Facilitator struct {
	reconciler *extract.Reconciler
	speakers   *SpeakerIdentifier
	logger     *zap.Logger
}

// NewFacilitator creates a new Facilitator
func NewFacilitator(reconciler *extract.Reconciler, speakers *SpeakerIdentifier, logger *zap.Logger) *Facilitator {
	return &Facilitator{
		reconciler: reconciler,
		speakers:   speakers,
		logger:     logger,
	}
}

// ProcessFragment reconciles the fragment against state and returns the
// new interventions plus the updated state. A nil state starts a fresh
// meeting.
func (f *Facilitator) ProcessFragment(ctx context.Context, transcript string, state *entities.MeetingState) ([]entities.Item, *entities.MeetingState, error) {
	start := time.Now()
	defer observability.ObserveExtraction(start)

	if state == nil {
		state = entities.NewMeetingState()
	}
	snapshot := state.Clone()
	snapshot.Normalize()

	// Participation is seeded before reconciliation so the extraction
	// pipeline sees the speaker's baseline in its state context.
	speaker := f.speakers.Identify(transcript)
	f.speakers.RecordTurn(snapshot.Participation, speaker, transcript)

	interventions, delta := f.reconciler.Reconcile(ctx, transcript, snapshot)

	// The delta only carries the current speaker's counter; everyone
	// else's history survives the key-wise merge untouched.
	for name, stats := range snapshot.Participation {
		if strings.EqualFold(name, speaker) {
			delta.Participation[name] = stats
			break
		}
	}

	merged, err := Merge(state, delta)
	if err != nil {
		return nil, nil, err
	}

	if f.logger != nil {
		fields := []zap.Field{
			zap.String("speaker", speaker),
			zap.Int("interventions", len(interventions)),
			zap.Int("fragment", sessionctx.FragmentSeq(ctx)),
		}
		if id, ok := sessionctx.SessionID(ctx); ok {
			fields = append(fields, zap.String("session_id", id.String()))
		}
		f.logger.Info("🤝 Fragment reconciled", fields...)
	}

	return interventions, merged, nil
}
