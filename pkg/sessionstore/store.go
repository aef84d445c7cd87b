package sessionstore

import (
	"context"
	"encoding/json"
	"errors"
)

// Store persists exactly two logical session keys: an opaque auth token
// and a cached user object. The two are set and cleared together by the
// session manager under normal operation; the independent accessors exist
// so callers can detect and repair half-written sessions.
//
// No expiry is tracked locally. Token expiry is enforced remotely (the
// backend answers 401 for a stale token) and detected reactively by the
// request client.
type Store[U any] interface {
	// Token returns the persisted auth token.
	// Returns ErrNotFound if no token is stored.
	Token(ctx context.Context) (string, error)

	// SetToken persists the auth token.
	SetToken(ctx context.Context, token string) error

	// ClearToken removes the persisted token.
	ClearToken(ctx context.Context) error

	// User returns the cached user object.
	// Returns ErrNotFound if no user is stored.
	User(ctx context.Context) (U, error)

	// SetUser caches the user object.
	SetUser(ctx context.Context, user U) error

	// ClearUser removes the cached user.
	ClearUser(ctx context.Context) error

	// IsAuthenticated reports whether a token is present.
	IsAuthenticated(ctx context.Context) (bool, error)

	// Clear removes both keys.
	Clear(ctx context.Context) error
}

// Marshaler serializes and deserializes the cached user for storage
// backends that require a byte representation.
type Marshaler[U any] interface {
	Marshal(u U) ([]byte, error)
	Unmarshal(data []byte) (U, error)
}

type jsonMarshaler[U any] struct{}

func (jsonMarshaler[U]) Marshal(u U) ([]byte, error) {
	data, err := json.Marshal(u)
	if err != nil {
		return nil, errors.Join(ErrMarshal, err)
	}
	return data, nil
}

func (jsonMarshaler[U]) Unmarshal(data []byte) (U, error) {
	var u U
	if err := json.Unmarshal(data, &u); err != nil {
		return u, errors.Join(ErrUnmarshal, err)
	}
	return u, nil
}
