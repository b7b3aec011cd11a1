// Package errors defines the failures a run can report.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Severity represents the severity level of an error
type Severity int

const (
	Info Severity = iota
	Warning
	Error
	Fatal
)

// String returns the string representation of the severity
func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	case Fatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// RunError is a failure of one phase of a run
type RunError struct {
	Phase    string   // "load", "augment", "save", "config"
	Code     string   // "E001", "E002", etc.
	Severity Severity // Error or Fatal for collaborator failures
	Message  string   // Human-readable message
	Path     string   // Input or output file involved, if any
	Err      error    // Underlying cause
}

// Error implements the error interface
func (e *RunError) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Code, msg)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

// Unwrap returns the underlying cause
func (e *RunError) Unwrap() error {
	return e.Err
}

// IsFatal returns true if the error is at Fatal severity
func (e *RunError) IsFatal() bool {
	return e.Severity == Fatal
}

// New creates a RunError at Error severity
func New(phase, code, message, path string, err error) *RunError {
	return &RunError{
		Phase:    phase,
		Code:     code,
		Severity: Error,
		Message:  message,
		Path:     path,
		Err:      err,
	}
}

// As finds the first RunError in err's chain.
func As(err error) (*RunError, bool) {
	var re *RunError
	if stderrors.As(err, &re) {
		return re, true
	}
	return nil, false
}
