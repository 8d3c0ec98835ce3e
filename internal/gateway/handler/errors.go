package handler

import (
	"errors"

	"codeviz/internal/failure"
)

const (
	msgInvalidSource = "Provide a public GitHub HTTPS URL"
	msgToolMissing   = "git not found on PATH; install Git and restart the server"
)

// ErrorDetail maps a pipeline error to the response status and the
// human-readable detail message.
func ErrorDetail(err error) (int, string) {
	kind := failure.KindOf(err)
	status := failure.HTTPStatus(kind)
	switch kind {
	case failure.InvalidSource:
		return status, msgInvalidSource
	case failure.RetrievalTimeout:
		if d := failure.DiagnosticOf(err); d != "" {
			return status, "Git clone " + d
		}
		return status, "Git clone timed out"
	case failure.RetrievalToolMissing:
		return status, msgToolMissing
	case failure.RetrievalFailed:
		return status, "Git clone failed: " + failure.DiagnosticOf(err)
	}
	return status, "Unexpected error: " + causeText(err)
}

// causeText strips the taxonomy prefix so the client sees the underlying fault.
func causeText(err error) string {
	var fe *failure.Error
	if errors.As(err, &fe) && fe.Err != nil {
		return fe.Err.Error()
	}
	if err == nil {
		return "unknown"
	}
	return err.Error()
}
