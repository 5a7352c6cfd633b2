package davclient

import (
	"net/http"

	"github.com/cyp0633/caldavkit/internal/httpclient"
)

// Operation is the kind of protocol request an outcome belongs to.
type Operation int

const (
	OpPut Operation = iota + 1
	OpDelete
	OpMkCalendar
)

// Method returns the HTTP method used on the wire.
func (o Operation) Method() string {
	switch o {
	case OpPut:
		return http.MethodPut
	case OpDelete:
		return http.MethodDelete
	case OpMkCalendar:
		return httpclient.MethodMkCalendar
	default:
		return "UNKNOWN"
	}
}

func (o Operation) String() string {
	return o.Method()
}

// OutcomeKind classifies a server reply.
type OutcomeKind int

const (
	Success OutcomeKind = iota
	// BenignConflict is a recognized non-fatal status; the call returns no error.
	BenignConflict
	// HardFailure is any status the operation does not accept.
	HardFailure
)

func (k OutcomeKind) String() string {
	switch k {
	case Success:
		return "success"
	case BenignConflict:
		return "benign_conflict"
	case HardFailure:
		return "hard_failure"
	default:
		return "unknown"
	}
}

// Outcome is the result of one operation call. Body is kept only for hard
// failures, for diagnostics. StatusCode is zero when no reply was received.
type Outcome struct {
	Operation  Operation
	Kind       OutcomeKind
	StatusCode int
	Reason     string
	Body       string
}

func (o Outcome) IsSuccess() bool        { return o.Kind == Success }
func (o Outcome) IsBenignConflict() bool { return o.Kind == BenignConflict }
func (o Outcome) IsHardFailure() bool    { return o.Kind == HardFailure }
