package errors

// ErrorCode identifies an application error condition
type ErrorCode int32

const (
	ErrorCode_UNKNOWN ErrorCode = iota
	ErrorCode_INTERNAL
	ErrorCode_INVALID_ARGUMENT
	ErrorCode_INVALID_PAYLOAD
	ErrorCode_AI_UPSTREAM_UNAVAILABLE
	ErrorCode_AI_MALFORMED_RESPONSE
	ErrorCode_STATE_INVALID
	ErrorCode_TRANSCRIPTION_FAILED
)

var codeNames = map[ErrorCode]string{
	ErrorCode_UNKNOWN:                 "UNKNOWN",
	ErrorCode_INTERNAL:                "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:        "INVALID_ARGUMENT",
	ErrorCode_INVALID_PAYLOAD:         "INVALID_PAYLOAD",
	ErrorCode_AI_UPSTREAM_UNAVAILABLE: "AI_UPSTREAM_UNAVAILABLE",
	ErrorCode_AI_MALFORMED_RESPONSE:   "AI_MALFORMED_RESPONSE",
	ErrorCode_STATE_INVALID:           "STATE_INVALID",
	ErrorCode_TRANSCRIPTION_FAILED:    "TRANSCRIPTION_FAILED",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
