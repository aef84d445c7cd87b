package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	rmg "github.com/reportmygrievance/rmg-go"
)

// stubExit captures the exit code instead of terminating the test binary.
func stubExit(t *testing.T) *int {
	t.Helper()

	code := -1
	orig := exit
	exit = func(c int) { code = c }
	t.Cleanup(func() { exit = orig })
	return &code
}

func TestRequireID(t *testing.T) {
	t.Run("passes a nonzero id through", func(t *testing.T) {
		code := stubExit(t)
		require.Equal(t, int64(42), requireID(42))
		require.Equal(t, -1, *code)
	})

	t.Run("rejects a missing id", func(t *testing.T) {
		code := stubExit(t)
		requireID(0)
		require.Equal(t, 1, *code)
	})
}

func TestPrintProfile(t *testing.T) {
	t.Run("nil profile exits nonzero", func(t *testing.T) {
		code := stubExit(t)
		printProfile(nil)
		require.Equal(t, 1, *code)
	})

	t.Run("profile prints without exiting", func(t *testing.T) {
		code := stubExit(t)
		printProfile(&rmg.UserProfile{ID: 1, Email: "a@b.com"})
		require.Equal(t, -1, *code)
	})
}
