package sessionstore_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reportmygrievance/rmg-go/pkg/sessionstore"
)

type testUser struct {
	Name string `json:"name"`
	ID   int64  `json:"id"`
}

func TestMemory_TokenLifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := sessionstore.NewMemory[testUser]()

	_, err := store.Token(ctx)
	require.ErrorIs(t, err, sessionstore.ErrNotFound)

	authed, err := store.IsAuthenticated(ctx)
	require.NoError(t, err)
	require.False(t, authed)

	require.NoError(t, store.SetToken(ctx, "tok-1"))

	tok, err := store.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "tok-1", tok)

	authed, err = store.IsAuthenticated(ctx)
	require.NoError(t, err)
	require.True(t, authed)

	require.NoError(t, store.ClearToken(ctx))
	_, err = store.Token(ctx)
	require.ErrorIs(t, err, sessionstore.ErrNotFound)
}

func TestMemory_UserLifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := sessionstore.NewMemory[testUser]()

	_, err := store.User(ctx)
	require.ErrorIs(t, err, sessionstore.ErrNotFound)

	require.NoError(t, store.SetUser(ctx, testUser{ID: 1, Name: "alice"}))

	user, err := store.User(ctx)
	require.NoError(t, err)
	require.Equal(t, "alice", user.Name)

	require.NoError(t, store.ClearUser(ctx))
	_, err = store.User(ctx)
	require.ErrorIs(t, err, sessionstore.ErrNotFound)
}

func TestMemory_ClearRemovesBothKeys(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := sessionstore.NewMemory[testUser]()
	require.NoError(t, store.SetToken(ctx, "tok"))
	require.NoError(t, store.SetUser(ctx, testUser{ID: 1}))

	require.NoError(t, store.Clear(ctx))

	_, err := store.Token(ctx)
	require.ErrorIs(t, err, sessionstore.ErrNotFound)
	_, err = store.User(ctx)
	require.ErrorIs(t, err, sessionstore.ErrNotFound)

	authed, err := store.IsAuthenticated(ctx)
	require.NoError(t, err)
	require.False(t, authed)
}

func TestMemory_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := sessionstore.NewMemory[testUser]()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = store.SetToken(ctx, "tok")
		}()
		go func() {
			defer wg.Done()
			_, _ = store.Token(ctx)
			_, _ = store.IsAuthenticated(ctx)
		}()
	}
	wg.Wait()

	tok, err := store.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "tok", tok)
}
