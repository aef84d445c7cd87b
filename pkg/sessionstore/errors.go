package sessionstore

import "errors"

// Sentinel errors for session storage.
var (
	// ErrNotFound is returned when the requested key is not stored.
	ErrNotFound = errors.New("sessionstore: not found")

	// ErrMarshal is returned when the user object cannot be serialized.
	ErrMarshal = errors.New("sessionstore: failed to marshal user")

	// ErrUnmarshal is returned when the stored user cannot be deserialized.
	ErrUnmarshal = errors.New("sessionstore: failed to unmarshal user")

	// ErrReadFailed is returned when the underlying storage cannot be read.
	ErrReadFailed = errors.New("sessionstore: failed to read storage")

	// ErrWriteFailed is returned when the underlying storage cannot be written.
	ErrWriteFailed = errors.New("sessionstore: failed to write storage")
)
