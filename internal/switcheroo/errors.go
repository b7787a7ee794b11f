package switcheroo

import (
	"errors"
	"fmt"
)

// Process exit statuses used when startup cannot continue.
const (
	ExitOK      = 0
	ExitFailure = 1
)

var (
	// ErrInvalidForceValue reports an xdg.force_integrated value outside 0/1/true/false/on/off.
	ErrInvalidForceValue = errors.New("invalid xdg.force_integrated value")
	// ErrForceParamAbsent reports a kernel command line without xdg.force_integrated.
	ErrForceParamAbsent = errors.New("xdg.force_integrated not set")
)

// ExitError asks the entry point to terminate the process with Code.
// Code 0 marks expected outcomes such as missing hardware.
type ExitError struct {
	Code   int
	Reason string
	Err    error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *ExitError) Unwrap() error { return e.Err }

// Exit builds an ExitError.
func Exit(code int, reason string, err error) *ExitError {
	return &ExitError{Code: code, Reason: reason, Err: err}
}

// ExitCode extracts the requested exit status from err. Errors that are not
// ExitErrors map to ExitFailure; a nil error maps to ExitOK.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}
