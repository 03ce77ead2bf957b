package core

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrSubmitInProgress = errors.New("a note submission is already in progress")
	ErrInvalidKey       = errors.New("invalid storage key")
)

// Messages shown to the user when the backend does not supply one.
const (
	MsgLoadFailed   = "Failed to load notes. Please try again later."
	MsgCreateFailed = "Failed to create note"
)

// ValidationError reports a required field that is missing or malformed.
// It is detected locally; no request is issued.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// NetworkError reports a transport failure talking to the backend.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// BackendError reports a non-success response from the backend.
// Message carries the backend's own message verbatim, when it sent one.
type BackendError struct {
	Op         string
	StatusCode int
	Message    string
	Err        error
}

func (e *BackendError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if msg == "" {
		msg = "request was not successful"
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: backend error (status %d): %s", e.Op, e.StatusCode, msg)
	}
	return fmt.Sprintf("%s: backend error: %s", e.Op, msg)
}

func (e *BackendError) Unwrap() error { return e.Err }

// LoadError is returned by Board.Load. Message is user-facing.
type LoadError struct {
	Message string
	Err     error
}

func (e *LoadError) Error() string { return e.Message }

func (e *LoadError) Unwrap() error { return e.Err }

// SubmissionError is returned by Board.Submit when the backend rejects or
// never receives the note. Message is the backend's message or a fallback.
type SubmissionError struct {
	Message string
	Err     error
}

func (e *SubmissionError) Error() string { return e.Message }

func (e *SubmissionError) Unwrap() error { return e.Err }

// StorageError reports a LocalStore failure while reading or writing likes.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// backendMessage extracts the backend-supplied message from err, if any.
func backendMessage(err error) string {
	var be *BackendError
	if errors.As(err, &be) {
		return be.Message
	}
	return ""
}
