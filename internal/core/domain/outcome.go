package domain

import "fmt"

// PendingMessage is the message carried by a Pending outcome when the user
// still has to complete an authentication flow out-of-band.
const PendingMessage = "Awaiting user authentication."

// OutcomeKind identifies which variant of an Outcome is populated.
type OutcomeKind int

const (
	// KindSuccess indicates the call completed and carries a payload.
	KindSuccess OutcomeKind = iota
	// KindError indicates the call failed terminally for this invocation.
	KindError
	// KindPending indicates user interaction is required before the same
	// logical call can complete. It is not an error.
	KindPending
)

// Outcome is the tri-state result every access-layer operation produces.
// Exactly one variant is populated; success is defined solely by the kind
// tag, never by inspecting the payload. Raw transport or HTTP failures never
// cross this boundary as Go errors.
type Outcome struct {
	kind    OutcomeKind
	data    any
	message string
}

// Success returns a success outcome carrying the decoded payload.
// The payload may be nil for payload-less endpoints.
func Success(data any) Outcome {
	return Outcome{kind: KindSuccess, data: data}
}

// Errorf returns an error outcome with a formatted diagnostic message.
func Errorf(format string, args ...any) Outcome {
	return Outcome{kind: KindError, message: fmt.Sprintf(format, args...)}
}

// Pending returns a pending outcome signalling that the caller must surface
// an authentication flow to the user and retry the operation later.
func Pending() Outcome {
	return Outcome{kind: KindPending, message: PendingMessage}
}

// Kind returns the populated variant tag.
func (o Outcome) Kind() OutcomeKind { return o.kind }

// IsSuccess reports whether the outcome is the success variant.
func (o Outcome) IsSuccess() bool { return o.kind == KindSuccess }

// IsError reports whether the outcome is the error variant.
func (o Outcome) IsError() bool { return o.kind == KindError }

// IsPending reports whether the outcome is the pending variant.
func (o Outcome) IsPending() bool { return o.kind == KindPending }

// Data returns the payload of a success outcome, nil otherwise.
func (o Outcome) Data() any { return o.data }

// Message returns the diagnostic of an error or pending outcome.
func (o Outcome) Message() string { return o.message }

// AsMap renders the stable wire contract consumed by tool layers:
//
//	{"status": "success", "data": <payload>}
//	{"status": "error", "message": <string>}
//	{"pending": true, "message": <string>}
func (o Outcome) AsMap() map[string]any {
	switch o.kind {
	case KindError:
		return map[string]any{"status": "error", "message": o.message}
	case KindPending:
		return map[string]any{"pending": true, "message": o.message}
	default:
		return map[string]any{"status": "success", "data": o.data}
	}
}
