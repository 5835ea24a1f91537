// Package util provides logging and common error types.
package util

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	ErrAuthFailed       = errors.New("authentication failed")
	ErrNoTenant         = errors.New("session has no tenant")
	ErrUnsupportedMatch = errors.New("unsupported match mode")
	ErrUnknownLabel     = errors.New("unknown WAN interface label")
	ErrNoInput          = errors.New("no more input")
)

// Exit codes returned by the wancost binary
const (
	ExitOK            = 0
	ExitFatal         = 1
	ExitPartialUpdate = 2
)

// ExitError carries the process exit code for an error that ends the run.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError wraps err with an exit code
func NewExitError(code int, err error) *ExitError {
	return &ExitError{Code: code, Err: err}
}

// ExitCode maps an error to the process exit code. nil maps to ExitOK, an
// ExitError anywhere in the chain supplies its own code, everything else is
// ExitFatal.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFatal
}

// UpdateFailedError reports how many interface updates failed in a batch.
type UpdateFailedError struct {
	Failed int
	Total  int
}

func (e *UpdateFailedError) Error() string {
	return fmt.Sprintf("%d of %d WAN interface updates failed", e.Failed, e.Total)
}
