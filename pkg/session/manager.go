package session

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/reportmygrievance/rmg-go/pkg/api"
	"github.com/reportmygrievance/rmg-go/pkg/logger"
	"github.com/reportmygrievance/rmg-go/pkg/sessionstore"
)

// Store is the session persistence the manager writes through to.
type Store = sessionstore.Store[api.UserProfile]

// State is a snapshot of the authentication state machine.
type State struct {
	// User is the current profile, nil when unauthenticated.
	User *api.UserProfile
	// Loading is true while initialization or an auth mutation is in flight.
	Loading bool
	// Authenticated reports whether a validated session is active.
	Authenticated bool
}

// Manager owns the process-wide session lifecycle: it mediates between
// callers, the session store, and the auth facade, keeping in-memory
// state, persisted storage, and the backend in sync.
//
// A Manager is an explicitly constructed instance passed by reference to
// whatever needs it; its lifecycle (Init through Logout) belongs to the
// application entry point. Within one operation, the store write happens
// before the in-memory update, which happens before the caller observes
// the result. Across racing operations a generation counter ensures a
// stale in-flight response cannot overwrite state applied by a later call.
type Manager struct {
	auth  *api.AuthService
	store Store
	log   *slog.Logger

	sf singleflight.Group

	mu            sync.RWMutex
	user          *api.UserProfile
	gen           uint64
	loading       bool
	authenticated bool
}

// Option configures the Manager.
type Option func(*Manager)

// WithLogger sets the manager logger.
// Defaults to a no-op logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

// NewManager creates a session manager. The returned manager starts in
// the loading state; call Init to resolve the persisted session.
func NewManager(auth *api.AuthService, store Store, opts ...Option) *Manager {
	m := &Manager{
		auth:    auth,
		store:   store,
		log:     logger.NewNope(),
		loading: true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns a snapshot of the current authentication state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()

	st := State{
		Loading:       m.loading,
		Authenticated: m.authenticated,
	}
	if m.user != nil {
		u := *m.user
		st.User = &u
	}
	return st
}

// IsAuthenticated reports whether a validated session is active.
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.authenticated
}

// User returns a copy of the current profile, or nil when unauthenticated.
func (m *Manager) User() *api.UserProfile {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// Init resolves the persisted session once: with no stored token and user
// it settles into the unauthenticated state; with both present it
// validates the token against the backend and keeps the refreshed profile
// on success, or clears storage on any failure. Concurrent calls share a
// single resolution.
func (m *Manager) Init(ctx context.Context) State {
	st, _, _ := m.sf.Do("init", func() (any, error) {
		return m.initialize(ctx), nil
	})
	return st.(State)
}

func (m *Manager) initialize(ctx context.Context) State {
	token, terr := m.store.Token(ctx)
	_, uerr := m.store.User(ctx)

	if terr != nil || uerr != nil || token == "" {
		// A half-written session is as good as none; clean it up.
		if terr == nil || uerr == nil {
			_ = m.store.Clear(ctx)
		}
		m.setLoading(false)
		return m.State()
	}

	res := guard("Profile fetch", m.log, func() api.Result[api.UserProfile] {
		return m.auth.GetProfile(ctx)
	})
	if !res.OK() {
		m.log.InfoContext(ctx, "persisted session rejected, signing out",
			slog.String("error", res.Err.Summary()))
		m.mu.Lock()
		_ = m.store.Clear(ctx)
		m.user = nil
		m.authenticated = false
		m.gen++
		m.mu.Unlock()
		m.setLoading(false)
		return m.State()
	}

	refreshed := res.Data

	m.mu.Lock()
	_ = m.store.SetUser(ctx, refreshed)
	m.user = &refreshed
	m.authenticated = true
	m.gen++
	m.mu.Unlock()

	m.log.InfoContext(ctx, "session restored", slog.String("email", refreshed.Email))
	m.setLoading(false)
	return m.State()
}

// Login authenticates with the backend. On success the token and profile
// are written through to the store before the in-memory state flips to
// authenticated; on failure nothing is written and the prior state stands.
func (m *Manager) Login(ctx context.Context, creds api.Credentials) api.Result[api.UserProfile] {
	m.setLoading(true)
	defer m.setLoading(false)

	gen := m.generation()

	res := guard("Login", m.log, func() api.Result[api.AuthResponse] {
		return m.auth.Login(ctx, creds)
	})
	if !res.OK() {
		return api.Failure[api.UserProfile](res.Err)
	}

	return m.establish(ctx, gen, "Login", res.Data)
}

// Register creates an account and starts its session, with the same
// write-through semantics as Login.
func (m *Manager) Register(ctx context.Context, reg api.Registration) api.Result[api.UserProfile] {
	m.setLoading(true)
	defer m.setLoading(false)

	gen := m.generation()

	res := guard("Registration", m.log, func() api.Result[api.AuthResponse] {
		return m.auth.Register(ctx, reg)
	})
	if !res.OK() {
		return api.Failure[api.UserProfile](res.Err)
	}

	return m.establish(ctx, gen, "Registration", res.Data)
}

// Logout revokes the session server-side on a best-effort basis and
// unconditionally clears the store and in-memory state. The user ends up
// signed out whether or not the backend acknowledged.
func (m *Manager) Logout(ctx context.Context) {
	m.setLoading(true)
	defer m.setLoading(false)

	res := guard("Logout", m.log, func() api.Result[struct{}] {
		return m.auth.Logout(ctx)
	})
	if !res.OK() {
		m.log.WarnContext(ctx, "server-side logout failed, clearing local session anyway",
			slog.String("error", res.Err.Summary()))
	}

	m.mu.Lock()
	_ = m.store.Clear(ctx)
	m.user = nil
	m.authenticated = false
	m.gen++
	m.mu.Unlock()
}

// UpdateProfile applies a profile edit. On success the refreshed profile
// replaces both the persisted and the in-memory copy; on failure state is
// untouched. Does not toggle the loading flag.
func (m *Manager) UpdateProfile(ctx context.Context, upd api.ProfileUpdate) api.Result[api.UserProfile] {
	gen := m.generation()

	res := guard("Profile update", m.log, func() api.Result[api.UserProfile] {
		return m.auth.UpdateProfile(ctx, upd)
	})
	if !res.OK() {
		return res
	}

	refreshed := res.Data

	m.mu.Lock()
	if m.gen == gen {
		if err := m.store.SetUser(ctx, refreshed); err != nil {
			m.mu.Unlock()
			m.log.ErrorContext(ctx, "failed to persist updated profile", slog.String("error", err.Error()))
			return api.Failure[api.UserProfile](&api.ErrorPayload{Message: "Profile update failed"})
		}
		m.user = &refreshed
		m.gen++
	} else {
		m.log.DebugContext(ctx, "discarding stale profile update")
	}
	m.mu.Unlock()

	return api.Success(refreshed)
}

// RequestPasswordReset passes straight through to the facade. Session
// state is untouched regardless of outcome; a user does not have to be
// signed in to request a reset.
func (m *Manager) RequestPasswordReset(ctx context.Context, req api.PasswordResetRequest) api.Result[api.PasswordResetResponse] {
	return guard("Password reset request", m.log, func() api.Result[api.PasswordResetResponse] {
		return m.auth.RequestPasswordReset(ctx, req)
	})
}

// SessionInvalidated resets in-memory state after the request client
// detected a rejected token. Persisted storage has already been cleared
// by the client; wire this to api.Client.OnSessionInvalidated.
func (m *Manager) SessionInvalidated(ctx context.Context) {
	m.mu.Lock()
	m.user = nil
	m.authenticated = false
	m.gen++
	m.mu.Unlock()

	m.log.WarnContext(ctx, "session invalidated by backend")
}

// establish writes the new session through to the store and then flips
// the in-memory state, unless a later operation already applied.
func (m *Manager) establish(ctx context.Context, gen uint64, op string, auth api.AuthResponse) api.Result[api.UserProfile] {
	user := auth.User

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.gen != gen {
		m.log.DebugContext(ctx, "discarding stale auth response", slog.String("operation", op))
		return api.Failure[api.UserProfile](&api.ErrorPayload{
			Message: op + " superseded by a newer session change",
		})
	}

	err := m.store.SetToken(ctx, auth.Token)
	if err == nil {
		err = m.store.SetUser(ctx, user)
	}
	if err != nil {
		// Never leave a token without its user; the pair is atomic.
		_ = m.store.Clear(ctx)
		m.log.ErrorContext(ctx, "failed to persist session", slog.String("error", err.Error()))
		return api.Failure[api.UserProfile](&api.ErrorPayload{Message: op + " failed"})
	}

	m.user = &user
	m.authenticated = true
	m.gen++

	m.log.InfoContext(ctx, "session established",
		slog.String("operation", op),
		slog.String("email", user.Email),
	)
	return api.Success(user)
}

func (m *Manager) setLoading(v bool) {
	m.mu.Lock()
	m.loading = v
	m.mu.Unlock()
}

func (m *Manager) generation() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.gen
}

// guard runs a facade call and converts a panic into a generic failure so
// a misbehaving facade can never take the caller down.
func guard[T any](op string, log *slog.Logger, fn func() api.Result[T]) (res api.Result[T]) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("facade panicked", slog.String("operation", op), slog.Any("panic", r))
			res = api.Failure[T](&api.ErrorPayload{Message: op + " failed"})
		}
	}()
	return fn()
}
