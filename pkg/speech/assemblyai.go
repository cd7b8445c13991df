package speech

import (
	"bytes"
	"context"
	"fmt"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-facilitator/errors"
	"github.com/johnquangdev/meeting-facilitator/pkg/config"
)

// AssemblyAITranscriber implements Transcriber against the AssemblyAI API
type AssemblyAITranscriber struct {
	client   *aai.Client
	language string
	logger   *zap.Logger
}

// NewAssemblyAITranscriber creates a transcriber from config. Returns nil
// when no API key is configured, which disables audio fragments.
func NewAssemblyAITranscriber(cfg *config.SpeechConfig, logger *zap.Logger) *AssemblyAITranscriber {
	if cfg == nil || cfg.AssemblyAIKey == "" {
		return nil
	}
	return &AssemblyAITranscriber{
		client:   aai.NewClient(cfg.AssemblyAIKey),
		language: cfg.LanguageCode,
		logger:   logger,
	}
}

// Transcribe uploads the audio bytes and waits for the finished transcript
func (t *AssemblyAITranscriber) Transcribe(ctx context.Context, audio []byte) (*Result, error) {
	if len(audio) == 0 {
		return nil, errors.ErrTranscriptionFailed(fmt.Errorf("empty audio payload"))
	}

	uploadURL, err := t.client.Upload(ctx, bytes.NewReader(audio))
	if err != nil {
		return nil, errors.ErrTranscriptionFailed(fmt.Errorf("failed to upload audio: %w", err))
	}

	params := &aai.TranscriptOptionalParams{}
	if t.language != "" {
		params.LanguageCode = aai.TranscriptLanguageCode(t.language)
	}

	transcript, err := t.client.Transcripts.TranscribeFromURL(ctx, uploadURL, params)
	if err != nil {
		return nil, errors.ErrTranscriptionFailed(err)
	}
	if transcript.Status == aai.TranscriptStatusError {
		msg := "transcription failed"
		if transcript.Error != nil {
			msg = *transcript.Error
		}
		return nil, errors.ErrTranscriptionFailed(fmt.Errorf("%s", msg))
	}

	res := &Result{}
	if transcript.Text != nil {
		res.Text = *transcript.Text
	}
	if transcript.Confidence != nil {
		res.Confidence = *transcript.Confidence
	}
	if transcript.LanguageCode != "" {
		res.Language = string(transcript.LanguageCode)
	}

	if t.logger != nil {
		t.logger.Info("🎤 Audio fragment transcribed",
			zap.Int("audio_bytes", len(audio)),
			zap.Int("text_length", len(res.Text)),
			zap.Float64("confidence", res.Confidence),
			zap.String("language", res.Language),
		)
	}

	return res, nil
}

// Close releases the transcriber. The HTTP-backed client holds no
// persistent connections, so this only exists for the singleton lifecycle.
func (t *AssemblyAITranscriber) Close() error {
	return nil
}
