package clierr

import (
	"errors"
	"fmt"
)

// Exit codes returned by the CLI.
const (
	CodeFailure   = 1
	CodeUsage     = 2
	CodeTransport = 3
	CodeStatus    = 4
	CodeNotFound  = 5
)

// ExitError carries a process exit code alongside its cause.
type ExitError struct {
	code  int
	cause error
}

func (e *ExitError) Error() string { return e.cause.Error() }

func (e *ExitError) ExitCode() int { return e.code }

func (e *ExitError) Unwrap() error { return e.cause }

// Wrap attaches code to err. A nil err stays nil.
func Wrap(code int, err error) error {
	if err == nil {
		return nil
	}
	if code <= 0 {
		code = CodeFailure
	}
	return &ExitError{code: code, cause: err}
}

func Newf(code int, format string, args ...any) error {
	return Wrap(code, fmt.Errorf(format, args...))
}

// ExitCodeOf extracts an exit code from any error, defaulting to 1.
func ExitCodeOf(err error) int {
	if err == nil {
		return 0
	}
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.ExitCode()
	}
	return CodeFailure
}
