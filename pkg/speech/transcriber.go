// Package speech is the speech-to-text boundary. The engine never calls
// it directly; the session layer feeds transcribed text into the engine
// and attaches confidence/language to the outgoing envelope.
package speech

import "context"

// Result is one transcribed audio fragment
type Result struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	Language   string  `json:"language"`
}

// Transcriber turns raw audio bytes into text. Implementations are
// process-wide singletons: created once at startup, closed at shutdown,
// and injected where needed.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (*Result, error)
	Close() error
}
