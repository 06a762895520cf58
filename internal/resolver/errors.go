package resolver

import (
	"errors"
	"fmt"
)

// Kind classifies why a resolution stopped.
type Kind int

const (
	KindNone Kind = iota
	KindInvalidInput
	KindTransport
	KindStatus
	KindNoData
	KindNoMatch
	KindNoDownloadURI
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid input"
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	case KindNoData:
		return "no data"
	case KindNoMatch:
		return "no match"
	case KindNoDownloadURI:
		return "no download uri"
	default:
		return "none"
	}
}

const (
	MsgNoData        = "No data received from the API."
	MsgNoMatch       = "No matching data found."
	MsgNoDownloadURI = "Download URI not found in the response."
)

// Error is the user-facing failure of a resolution. Status is set for
// KindStatus only.
type Error struct {
	Kind   Kind
	Status int
	Msg    string
	Err    error
}

func (e *Error) Error() string {
	switch {
	case e.Kind == KindStatus:
		return fmt.Sprintf("Status Code: %d", e.Status)
	case e.Msg != "":
		return e.Msg
	case e.Err != nil:
		return e.Err.Error()
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind carried by err, or KindNone.
func KindOf(err error) Kind {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind
	}
	return KindNone
}

// AsError extracts the resolver Error from err, or nil.
func AsError(err error) *Error {
	var re *Error
	if errors.As(err, &re) {
		return re
	}
	return nil
}
