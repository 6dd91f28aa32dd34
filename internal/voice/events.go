// Package voice is the client side of the realtime voice agent platform: session configuration,
// the event stream it emits and a websocket gateway transport.
package voice

import "strings"

type EventType string

const (
	EventCallStart   EventType = "call-start"
	EventCallEnd     EventType = "call-end"
	EventMessage     EventType = "message"
	EventSpeechStart EventType = "speech-start"
	EventSpeechEnd   EventType = "speech-end"
	EventError       EventType = "error"
)

const (
	MessageTypeTranscript = "transcript"
	TranscriptTypeFinal   = "final"
	TranscriptTypePartial = "partial"
)

// Event is one item of the voice platform's event stream. Only the fields relevant to Type are set.
type Event struct {
	Type           EventType `json:"type"`
	MessageType    string    `json:"messageType,omitempty"`
	TranscriptType string    `json:"transcriptType,omitempty"`
	Role           string    `json:"role,omitempty"`
	Transcript     string    `json:"transcript,omitempty"`
	Error          string    `json:"error,omitempty"`
	ErrorKind      ErrorKind `json:"errorKind,omitempty"`
}

// IsFinalTranscript reports whether e carries a finalized speaker turn.
func (e Event) IsFinalTranscript() bool {
	return e.Type == EventMessage && e.MessageType == MessageTypeTranscript && e.TranscriptType == TranscriptTypeFinal
}

// Kind returns the structured error kind, classifying the message text when the platform sent none.
func (e Event) Kind() ErrorKind {
	if e.ErrorKind != "" {
		return e.ErrorKind
	}
	return ClassifyError(e.Error)
}

type ErrorKind string

const (
	ErrorPermission   ErrorKind = "permission"
	ErrorNetwork      ErrorKind = "network"
	ErrorEjection     ErrorKind = "ejection"
	ErrorUnclassified ErrorKind = "unclassified"
)

// ClassifyError is a best-effort substring heuristic for platforms that only report a message.
// Ejection wins over permission, which wins over network.
func ClassifyError(message string) ErrorKind {
	m := strings.ToLower(message)
	switch {
	case strings.Contains(m, "ejection"):
		return ErrorEjection
	case strings.Contains(m, "permission"):
		return ErrorPermission
	case strings.Contains(m, "network"):
		return ErrorNetwork
	default:
		return ErrorUnclassified
	}
}

// Hint is the operator-facing explanation logged for an error kind.
func (k ErrorKind) Hint() string {
	switch k {
	case ErrorEjection:
		return "call was ejected, likely network issues or browser permissions"
	case ErrorPermission:
		return "microphone permission denied"
	case ErrorNetwork:
		return "network error, check connectivity"
	default:
		return "unclassified voice session error"
	}
}
