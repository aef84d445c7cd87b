package sessionstore

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

const (
	defaultPrefix = "rmg:session"
	tokenKey      = "authToken"
	userKey       = "userData"
)

// RedisOption configures the Redis store.
type RedisOption func(*redisOptions)

type redisOptions struct {
	prefix string
}

func defaultRedisOptions() *redisOptions {
	return &redisOptions{prefix: defaultPrefix}
}

// WithPrefix sets the Redis key prefix.
// Defaults to "rmg:session". Use distinct prefixes to keep several
// independent sessions in one Redis database.
func WithPrefix(prefix string) RedisOption {
	return func(o *redisOptions) {
		if prefix != "" {
			o.prefix = prefix
		}
	}
}

// Redis is a session store backed by Redis, for fleets of processes that
// share one backend session (e.g. parallel probe runs). The user object
// is serialized with the configured Marshaler (default: JSON).
type Redis[U any] struct {
	client    redis.UniversalClient
	marshaler Marshaler[U]
	opts      *redisOptions
}

// NewRedis creates a Redis-backed session store. The client lifecycle is
// owned by the caller. An optional Marshaler customizes user
// serialization; nil means JSON.
func NewRedis[U any](client redis.UniversalClient, m Marshaler[U], opts ...RedisOption) *Redis[U] {
	o := defaultRedisOptions()
	for _, opt := range opts {
		opt(o)
	}

	if m == nil {
		m = jsonMarshaler[U]{}
	}

	return &Redis[U]{
		client:    client,
		marshaler: m,
		opts:      o,
	}
}

// Token returns the persisted auth token.
func (r *Redis[U]) Token(ctx context.Context) (string, error) {
	token, err := r.client.Get(ctx, r.key(tokenKey)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", errors.Join(ErrReadFailed, err)
	}
	return token, nil
}

// SetToken persists the auth token. Sessions never expire locally; the
// backend invalidates stale tokens with a 401.
func (r *Redis[U]) SetToken(ctx context.Context, token string) error {
	if err := r.client.Set(ctx, r.key(tokenKey), token, 0).Err(); err != nil {
		return errors.Join(ErrWriteFailed, err)
	}
	return nil
}

// ClearToken removes the persisted token.
func (r *Redis[U]) ClearToken(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key(tokenKey)).Err(); err != nil {
		return errors.Join(ErrWriteFailed, err)
	}
	return nil
}

// User returns the cached user object.
func (r *Redis[U]) User(ctx context.Context) (U, error) {
	var zero U

	data, err := r.client.Get(ctx, r.key(userKey)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return zero, ErrNotFound
		}
		return zero, errors.Join(ErrReadFailed, err)
	}

	return r.marshaler.Unmarshal(data)
}

// SetUser caches the user object.
func (r *Redis[U]) SetUser(ctx context.Context, user U) error {
	data, err := r.marshaler.Marshal(user)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key(userKey), data, 0).Err(); err != nil {
		return errors.Join(ErrWriteFailed, err)
	}
	return nil
}

// ClearUser removes the cached user.
func (r *Redis[U]) ClearUser(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key(userKey)).Err(); err != nil {
		return errors.Join(ErrWriteFailed, err)
	}
	return nil
}

// IsAuthenticated reports whether a token is present.
func (r *Redis[U]) IsAuthenticated(ctx context.Context) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(tokenKey)).Result()
	if err != nil {
		return false, errors.Join(ErrReadFailed, err)
	}
	return n > 0, nil
}

// Clear removes both keys.
func (r *Redis[U]) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key(tokenKey), r.key(userKey)).Err(); err != nil {
		return errors.Join(ErrWriteFailed, err)
	}
	return nil
}

func (r *Redis[U]) key(name string) string {
	return r.opts.prefix + ":" + name
}

var _ Store[any] = (*Redis[any])(nil)
