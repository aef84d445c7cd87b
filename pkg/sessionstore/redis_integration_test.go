//go:build integration

package sessionstore_test

import (
	"context"
	"os"
	"testing"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/reportmygrievance/rmg-go/pkg/sessionstore"
)

const testRedisURL = "redis://localhost:6379/0"

func newTestRedisClient(t *testing.T) goredis.UniversalClient {
	t.Helper()

	url := os.Getenv("REDIS_URL")
	if url == "" {
		url = testRedisURL
	}

	opts, err := goredis.ParseURL(url)
	require.NoError(t, err)

	ctx := context.Background()
	client := goredis.NewClient(opts)
	require.NoError(t, client.Ping(ctx).Err(), "failed to connect to Redis")

	t.Cleanup(func() {
		_ = client.FlushDB(ctx).Err()
		_ = client.Close()
	})

	return client
}

func TestRedis_TokenLifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	client := newTestRedisClient(t)
	store := sessionstore.NewRedis[testUser](client, nil, sessionstore.WithPrefix("test-token"))

	_, err := store.Token(ctx)
	require.ErrorIs(t, err, sessionstore.ErrNotFound)

	require.NoError(t, store.SetToken(ctx, "tok-1"))

	tok, err := store.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "tok-1", tok)

	authed, err := store.IsAuthenticated(ctx)
	require.NoError(t, err)
	require.True(t, authed)

	require.NoError(t, store.ClearToken(ctx))
	_, err = store.Token(ctx)
	require.ErrorIs(t, err, sessionstore.ErrNotFound)
}

func TestRedis_UserLifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	client := newTestRedisClient(t)
	store := sessionstore.NewRedis[testUser](client, nil, sessionstore.WithPrefix("test-user"))

	_, err := store.User(ctx)
	require.ErrorIs(t, err, sessionstore.ErrNotFound)

	require.NoError(t, store.SetUser(ctx, testUser{ID: 4, Name: "dave"}))

	user, err := store.User(ctx)
	require.NoError(t, err)
	require.Equal(t, "dave", user.Name)

	require.NoError(t, store.ClearUser(ctx))
	_, err = store.User(ctx)
	require.ErrorIs(t, err, sessionstore.ErrNotFound)
}

func TestRedis_ClearRemovesBothKeys(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	client := newTestRedisClient(t)
	store := sessionstore.NewRedis[testUser](client, nil, sessionstore.WithPrefix("test-clear"))

	require.NoError(t, store.SetToken(ctx, "tok"))
	require.NoError(t, store.SetUser(ctx, testUser{ID: 1}))

	require.NoError(t, store.Clear(ctx))

	_, err := store.Token(ctx)
	require.ErrorIs(t, err, sessionstore.ErrNotFound)
	_, err = store.User(ctx)
	require.ErrorIs(t, err, sessionstore.ErrNotFound)
}

func TestRedis_PrefixesIsolateSessions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	client := newTestRedisClient(t)
	a := sessionstore.NewRedis[testUser](client, nil, sessionstore.WithPrefix("test-iso-a"))
	b := sessionstore.NewRedis[testUser](client, nil, sessionstore.WithPrefix("test-iso-b"))

	require.NoError(t, a.SetToken(ctx, "tok-a"))

	_, err := b.Token(ctx)
	require.ErrorIs(t, err, sessionstore.ErrNotFound)

	tok, err := a.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "tok-a", tok)
}
