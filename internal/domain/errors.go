package domain

import "fmt"

// ValidationError covers missing or malformed request input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func Validation(msg string) error { return &ValidationError{Msg: msg} }

func Validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError is an id lookup miss on one of the stores.
type NotFoundError struct {
	Resource string
	ID       int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %d not found", e.Resource, e.ID)
}

func NotFound(resource string, id int) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// ConflictError rejects an operation the record's state no longer
// allows, such as re-sending an already-sent campaign.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }

func Conflict(msg string) error { return &ConflictError{Msg: msg} }

// ConfigurationError means a provider's credentials are absent. The
// endpoint degrades to an error response instead of the process
// refusing to start.
type ConfigurationError struct {
	Provider string
	Hint     string
}

func (e *ConfigurationError) Error() string {
	if e.Hint != "" {
		return e.Provider + " not configured: " + e.Hint
	}
	return e.Provider + " not configured"
}

// UpstreamError wraps a provider call that failed or returned an
// unexpected shape. Detail is passed through to the response body
// best-effort.
type UpstreamError struct {
	Provider string
	Detail   string
	Err      error
}

func (e *UpstreamError) Error() string {
	if e.Detail != "" {
		return e.Provider + " send failed: " + e.Detail
	}
	return e.Provider + " send failed"
}

func (e *UpstreamError) Unwrap() error { return e.Err }
