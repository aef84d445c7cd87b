package rmg_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	rmg "github.com/reportmygrievance/rmg-go"
	"github.com/reportmygrievance/rmg-go/pkg/api"
	"github.com/reportmygrievance/rmg-go/pkg/sessionstore"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := rmg.LoadConfig(context.Background())
		require.NoError(t, err)
		require.Equal(t, "http://localhost:8000/api/", cfg.BaseURL)
		require.Equal(t, 10*time.Second, cfg.Timeout)
		require.Equal(t, "rmg-go", cfg.UserAgent)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("RMG_API_BASE_URL", "https://rmg.example.com/api/")
		t.Setenv("RMG_API_TIMEOUT", "30s")
		t.Setenv("RMG_SESSION_FILE", "/tmp/rmg-session.json")

		cfg, err := rmg.LoadConfig(context.Background())
		require.NoError(t, err)
		require.Equal(t, "https://rmg.example.com/api/", cfg.BaseURL)
		require.Equal(t, 30*time.Second, cfg.Timeout)
		require.Equal(t, "/tmp/rmg-session.json", cfg.SessionFile)
	})

	t.Run("config file values apply over defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rmg.yaml")
		require.NoError(t, os.WriteFile(path, []byte(
			"base_url: https://file.example.com/api/\n"+
				"timeout: 25s\n"+
				"user_agent: rmg-file\n"), 0o600))
		t.Setenv(rmg.ConfigFileEnv, path)

		cfg, err := rmg.LoadConfig(context.Background())
		require.NoError(t, err)
		require.Equal(t, "https://file.example.com/api/", cfg.BaseURL)
		require.Equal(t, 25*time.Second, cfg.Timeout)
		require.Equal(t, "rmg-file", cfg.UserAgent)
	})

	t.Run("environment overrides the config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rmg.yaml")
		require.NoError(t, os.WriteFile(path, []byte(
			"base_url: https://file.example.com/api/\n"+
				"timeout: 25s\n"), 0o600))
		t.Setenv(rmg.ConfigFileEnv, path)
		t.Setenv("RMG_API_BASE_URL", "https://env.example.com/api/")

		cfg, err := rmg.LoadConfig(context.Background())
		require.NoError(t, err)
		require.Equal(t, "https://env.example.com/api/", cfg.BaseURL)
		// The file value stands where the environment is silent.
		require.Equal(t, 25*time.Second, cfg.Timeout)
	})

	t.Run("missing config file errors", func(t *testing.T) {
		t.Setenv(rmg.ConfigFileEnv, filepath.Join(t.TempDir(), "absent.yaml"))

		_, err := rmg.LoadConfig(context.Background())
		require.ErrorIs(t, err, rmg.ErrConfigFile)
	})

	t.Run("invalid timeout in config file errors", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rmg.yaml")
		require.NoError(t, os.WriteFile(path, []byte("timeout: soon\n"), 0o600))
		t.Setenv(rmg.ConfigFileEnv, path)

		_, err := rmg.LoadConfig(context.Background())
		require.ErrorIs(t, err, rmg.ErrConfigFile)
	})
}

func TestNew_EndToEndLoginFlow(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/users/login/":
			json.NewEncoder(w).Encode(api.AuthResponse{
				User:  api.UserProfile{ID: 1, Email: "a@b.com"},
				Token: "tok-e2e",
			})
		case "/api/incidents/":
			require.Equal(t, "Token tok-e2e", r.Header.Get("Authorization"))
			w.Write([]byte(`[{"id": 1, "incident_id": "RMG100012026", "status": "OPEN"}]`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	t.Cleanup(srv.Close)

	path := filepath.Join(t.TempDir(), "session.json")
	client, err := rmg.New(rmg.Config{
		BaseURL:     srv.URL + "/api/",
		Timeout:     5 * time.Second,
		SessionFile: path,
		UserAgent:   "rmg-go-test",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()

	st := client.Session.Init(ctx)
	require.False(t, st.Authenticated)

	res := client.Session.Login(ctx, rmg.Credentials{Email: "a@b.com", Password: "x"})
	require.True(t, res.OK())

	// The session file now exists and carries the token.
	_, err = os.Stat(path)
	require.NoError(t, err)

	incidents := client.Incidents.List(ctx)
	require.True(t, incidents.OK())
	require.Len(t, incidents.Data, 1)
}

func TestNew_WithStoreOverride(t *testing.T) {
	t.Parallel()

	store := sessionstore.NewMemory[api.UserProfile]()
	client, err := rmg.New(rmg.Config{BaseURL: "http://localhost:8000/api/"}, rmg.WithStore(store))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	require.NotNil(t, client.Session)
	require.NotNil(t, client.Incidents)
	require.NotNil(t, client.Utils)
	require.NotNil(t, client.API())
}
