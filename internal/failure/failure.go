// Package failure defines the error taxonomy shared by the analysis pipeline
// and its transport layer.
package failure

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is a stable identifier for a class of analysis failure.
type Kind string

const (
	// InvalidSource means the repository URL was rejected before retrieval.
	InvalidSource Kind = "INVALID_SOURCE"
	// RetrievalTimeout means the transfer exceeded its time budget.
	RetrievalTimeout Kind = "RETRIEVAL_TIMEOUT"
	// RetrievalToolMissing means the external transfer tool is not installed.
	RetrievalToolMissing Kind = "RETRIEVAL_TOOL_MISSING"
	// RetrievalFailed means the transfer exited unsuccessfully.
	RetrievalFailed Kind = "RETRIEVAL_FAILED"
	// UnexpectedFailure covers every other fault.
	UnexpectedFailure Kind = "UNEXPECTED_FAILURE"
)

// Error carries a Kind plus optional diagnostic output from the retrieval tool.
type Error struct {
	Kind       Kind
	Diagnostic string
	Err        error
}

func (e *Error) Error() string {
	switch {
	case e.Diagnostic != "" && e.Err != nil && e.Diagnostic == e.Err.Error():
		return fmt.Sprintf("%s: %s", e.Kind, e.Diagnostic)
	case e.Diagnostic != "" && e.Err != nil:
		return fmt.Sprintf("%s: %v: %s", e.Kind, e.Err, e.Diagnostic)
	case e.Diagnostic != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Diagnostic)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// New returns an *Error of the given kind wrapping err.
func New(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// WithDiagnostic returns an *Error carrying tool output.
func WithDiagnostic(kind Kind, diagnostic string, err error) *Error {
	return &Error{Kind: kind, Diagnostic: diagnostic, Err: err}
}

// KindOf reports the Kind of err. Errors outside the taxonomy are
// UnexpectedFailure; nil has no kind.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return UnexpectedFailure
}

// Is reports whether err belongs to kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// DiagnosticOf returns the tool diagnostic attached to err, if any.
func DiagnosticOf(err error) string {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Diagnostic
	}
	return ""
}

// HTTPStatus maps a Kind to the status the gateway answers with.
func HTTPStatus(kind Kind) int {
	switch kind {
	case InvalidSource, RetrievalFailed:
		return http.StatusBadRequest
	case RetrievalTimeout:
		return http.StatusGatewayTimeout
	case RetrievalToolMissing, UnexpectedFailure:
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}
