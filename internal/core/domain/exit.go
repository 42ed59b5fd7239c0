package domain

import (
	"errors"
	"strconv"
)

// ExitCoder is implemented by errors that carry the exit status of an
// external build routine (a host process or a container).
type ExitCoder interface {
	error
	ExitCode() int
}

// ExitError carries a concrete exit status through the error chain.
type ExitError struct {
	Code int
	Err  error
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return "exit status " + strconv.Itoa(e.Code)
}

// Unwrap exposes the underlying error.
func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode implements ExitCoder.
func (e *ExitError) ExitCode() int { return e.Code }

// ExitStatus extracts the exit status carried by err. When the chain
// contains no ExitCoder, failures map to 1 and nil maps to 0.
func ExitStatus(err error) int {
	if err == nil {
		return 0
	}
	var coder ExitCoder
	if errors.As(err, &coder) && coder.ExitCode() > 0 {
		return coder.ExitCode()
	}
	return 1
}
