package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-facilitator/internal/adapter/dto/analyze"
	"github.com/johnquangdev/meeting-facilitator/internal/domain/entities"
	"github.com/johnquangdev/meeting-facilitator/internal/infrastructure/observability"
	"github.com/johnquangdev/meeting-facilitator/internal/usecase/meeting"
	"github.com/johnquangdev/meeting-facilitator/pkg/sessionctx"
	"github.com/johnquangdev/meeting-facilitator/pkg/speech"
)

// wsFragment is one inbound text frame
type wsFragment struct {
	Transcript string `json:"transcript"`
}

// wsError is sent when a single frame cannot be processed; the session
// itself stays open.
type wsError struct {
	Error string `json:"error"`
}

// LiveSession serves the stateful WebSocket endpoint. Each connection
// owns one MeetingState for its lifetime; text frames carry transcript
// JSON, binary frames carry raw audio for transcription.
//
// Frames are read and processed one at a time by the single read loop,
// which is what keeps state merging in strict arrival order without
// locks.
type LiveSession struct {
	facilitator *meeting.Facilitator
	transcriber speech.Transcriber
	upgrader    websocket.Upgrader
	logger      *zap.Logger
}

// NewLiveSession creates the WebSocket handler. transcriber may be nil,
// which rejects binary frames but keeps text fragments working.
func NewLiveSession(facilitator *meeting.Facilitator, transcriber speech.Transcriber, allowedOrigins []string, logger *zap.Logger) *LiveSession {
	return &LiveSession{
		facilitator: facilitator,
		transcriber: transcriber,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				for _, allowed := range allowedOrigins {
					if allowed == "*" || strings.EqualFold(allowed, origin) {
						return true
					}
				}
				return false
			},
		},
		logger: logger,
	}
}

// Serve upgrades the connection and runs the session loop until the
// client disconnects. The meeting state is discarded with the session.
func (s *LiveSession) Serve(c echo.Context) error {
	conn, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	sessionID := uuid.New()
	ctx := sessionctx.WithSession(c.Request().Context(), sessionID)

	observability.SessionOpened()
	defer observability.SessionClosed()
	if s.logger != nil {
		s.logger.Info("📡 Live session opened", zap.String("session_id", sessionID.String()))
	}

	state := entities.NewMeetingState()
	seq := 0
	for {
		msgType, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) && s.logger != nil {
				s.logger.Warn("📡 Live session read failed",
					zap.String("session_id", sessionID.String()),
					zap.Error(err),
				)
			}
			break
		}

		seq++
		fragCtx := sessionctx.WithFragment(ctx, seq)

		var reply interface{}
		switch msgType {
		case websocket.TextMessage:
			reply, state = s.handleText(fragCtx, payload, state)
		case websocket.BinaryMessage:
			reply, state = s.handleAudio(fragCtx, payload, state)
		default:
			continue
		}

		if err := conn.WriteJSON(reply); err != nil {
			if s.logger != nil {
				s.logger.Warn("📡 Live session write failed",
					zap.String("session_id", sessionID.String()),
					zap.Error(err),
				)
			}
			break
		}
	}

	if s.logger != nil {
		s.logger.Info("📡 Live session closed",
			zap.String("session_id", sessionID.String()),
			zap.Int("fragments", seq),
			zap.Int("actions", len(state.Actions)),
			zap.Int("decisions", len(state.Decisions)),
		)
	}
	return nil
}

func (s *LiveSession) handleText(ctx context.Context, payload []byte, state *entities.MeetingState) (interface{}, *entities.MeetingState) {
	var frame wsFragment
	if err := json.Unmarshal(payload, &frame); err != nil {
		return wsError{Error: "invalid frame: expected {\"transcript\": \"...\"}"}, state
	}
	if strings.TrimSpace(frame.Transcript) == "" {
		return wsError{Error: "transcript is empty"}, state
	}

	observability.RecordFragment("ws")
	interventions, updated, err := s.facilitator.ProcessFragment(ctx, frame.Transcript, state)
	if err != nil {
		return wsError{Error: err.Error()}, state
	}

	return &analyze.Response{Interventions: interventions, State: updated}, updated
}

func (s *LiveSession) handleAudio(ctx context.Context, payload []byte, state *entities.MeetingState) (interface{}, *entities.MeetingState) {
	if s.transcriber == nil {
		return wsError{Error: "audio transcription is not configured"}, state
	}

	observability.RecordFragment("audio")
	result, err := s.transcriber.Transcribe(ctx, payload)
	if err != nil {
		observability.RecordTranscription(false)
		return wsError{Error: err.Error()}, state
	}
	observability.RecordTranscription(true)

	if strings.TrimSpace(result.Text) == "" {
		return wsError{Error: "no speech detected"}, state
	}

	interventions, updated, err := s.facilitator.ProcessFragment(ctx, result.Text, state)
	if err != nil {
		return wsError{Error: err.Error()}, state
	}

	return &analyze.Response{
		Interventions: interventions,
		State:         updated,
		Transcript:    result.Text,
		Confidence:    result.Confidence,
		Language:      result.Language,
	}, updated
}
