package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-facilitator/errors"
	"github.com/johnquangdev/meeting-facilitator/internal/adapter/dto/analyze"
	"github.com/johnquangdev/meeting-facilitator/internal/domain/entities"
	"github.com/johnquangdev/meeting-facilitator/internal/infrastructure/observability"
	"github.com/johnquangdev/meeting-facilitator/internal/usecase/meeting"
)

// Analyze handles stateless fragment analysis over HTTP. The client
// carries the meeting state between calls; the WebSocket session in
// ws.go is the stateful alternative.
type Analyze struct {
	facilitator *meeting.Facilitator
	logger      *zap.Logger
}

// NewAnalyze creates a new Analyze handler
func NewAnalyze(facilitator *meeting.Facilitator, logger *zap.Logger) *Analyze {
	return &Analyze{facilitator: facilitator, logger: logger}
}

// Handle processes POST /v1/analyze
func (h *Analyze) Handle(c echo.Context) error {
	var req analyze.Request
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, err)
	}

	state := req.State
	if state == nil {
		state = entities.NewMeetingState()
	} else {
		state.Normalize()
	}

	observability.RecordFragment("http")
	interventions, updated, err := h.facilitator.ProcessFragment(c.Request().Context(), req.Transcript, state)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, analyze.Response{
		Interventions: interventions,
		State:         updated,
	})
}
