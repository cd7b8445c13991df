// Package sessionctx carries live-session metadata through context so
// handlers and the extraction pipeline log consistent identifiers.
package sessionctx

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

var (
	keySessionID   ctxKey = "session_id"
	keyFragmentSeq ctxKey = "fragment_seq"
)

// WithSession attaches the session identifier to the context
func WithSession(ctx context.Context, sessionID uuid.UUID) context.Context {
	return context.WithValue(ctx, keySessionID, sessionID)
}

// WithFragment attaches the fragment sequence number within a session
func WithFragment(ctx context.Context, seq int) context.Context {
	return context.WithValue(ctx, keyFragmentSeq, seq)
}

// SessionID extracts the session identifier from the context
func SessionID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(keySessionID).(uuid.UUID)
	return id, ok
}

// FragmentSeq extracts the fragment sequence number from the context.
// Returns 0 when no fragment is attached.
func FragmentSeq(ctx context.Context) int {
	seq, ok := ctx.Value(keyFragmentSeq).(int)
	if !ok {
		return 0
	}
	return seq
}
