// Package remote defines the error taxonomy shared by the outbound
// backend clients (OData service, ML matcher). Every expected failure
// mode of a remote call is classified so the fallback layer can decide
// whether to swallow it or surface it.
package remote

import (
	"errors"
	"fmt"
)

// FailureKind categorizes a remote call failure.
type FailureKind string

const (
	// KindTransport covers network-level failures: connection refused,
	// DNS, timeout, cancelled context.
	KindTransport FailureKind = "transport"

	// KindStatus covers non-2xx HTTP responses.
	KindStatus FailureKind = "status"

	// KindDecode covers malformed or unexpected payloads.
	KindDecode FailureKind = "decode"
)

// CallError is a classified failure from a single remote operation.
// An empty or zero-result payload is never a CallError; only transport
// errors, non-success statuses, and undecodable bodies are.
type CallError struct {
	// Operation is the backend operation name, e.g. "getPipelineOverview".
	Operation string

	// Kind is the failure category.
	Kind FailureKind

	// StatusCode is the HTTP status when Kind is KindStatus, else 0.
	StatusCode int

	// Message is a human-readable description, best-effort extracted
	// from the backend error payload.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *CallError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: %s (%d): %s", e.Operation, e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Operation, e.Kind, e.Message)
}

// Unwrap implements error unwrapping.
func (e *CallError) Unwrap() error {
	return e.Cause
}

// NewCallError creates a classified remote call error.
func NewCallError(operation string, kind FailureKind, statusCode int, message string, cause error) *CallError {
	return &CallError{
		Operation:  operation,
		Kind:       kind,
		StatusCode: statusCode,
		Message:    message,
		Cause:      cause,
	}
}

// IsTransport reports whether err is a transport-level failure.
func IsTransport(err error) bool {
	var callErr *CallError
	if errors.As(err, &callErr) {
		return callErr.Kind == KindTransport
	}
	return false
}

// IsStatus reports whether err is a non-success HTTP status failure.
func IsStatus(err error) bool {
	var callErr *CallError
	if errors.As(err, &callErr) {
		return callErr.Kind == KindStatus
	}
	return false
}

// IsDecode reports whether err is a malformed-payload failure.
func IsDecode(err error) bool {
	var callErr *CallError
	if errors.As(err, &callErr) {
		return callErr.Kind == KindDecode
	}
	return false
}

// UserMessage extracts the best human-readable message for surfacing a
// terminal failure to the caller. Falls back to the raw error text.
func UserMessage(err error) string {
	var callErr *CallError
	if errors.As(err, &callErr) && callErr.Message != "" {
		return callErr.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
