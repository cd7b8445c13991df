package analyze

import "github.com/johnquangdev/meeting-facilitator/internal/domain/entities"

// Request is one transcript fragment submitted for analysis. State is
// optional: omitting it starts a fresh meeting, sending it back
// continues one (the server keeps no copy between HTTP calls).
type Request struct {
	Transcript string                 `json:"transcript" validate:"required,min=1"`
	State      *entities.MeetingState `json:"state"`
}
