package rmg

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	goredis "github.com/redis/go-redis/v9"

	"github.com/reportmygrievance/rmg-go/pkg/api"
	"github.com/reportmygrievance/rmg-go/pkg/logger"
	"github.com/reportmygrievance/rmg-go/pkg/session"
	"github.com/reportmygrievance/rmg-go/pkg/sessionstore"
)

// ErrNoSessionPath is returned when neither a session file path, a Redis
// URL, nor an explicit store is available.
var ErrNoSessionPath = errors.New("rmg: cannot determine session storage location")

// Client bundles the configured SDK stack. Construct one per process
// with New, call Session.Init once, and pass the client by reference to
// whatever needs it.
type Client struct {
	// Session owns the authentication lifecycle.
	Session *session.Manager

	// Incidents exposes the incident endpoints.
	Incidents *api.IncidentsService

	// Utils exposes pincode lookup and other helpers.
	Utils *api.UtilsService

	api   *api.Client
	redis goredis.UniversalClient
}

// New wires the SDK together: session store, request client, endpoint
// facades, and session manager, with the manager subscribed to the
// client's session-invalidated signal.
func New(cfg Config, opts ...Option) (*Client, error) {
	o := defaultClientOptions()
	for _, opt := range opts {
		opt(o)
	}

	c := &Client{}

	store := o.store
	if store == nil {
		var err error
		store, err = c.openStore(cfg)
		if err != nil {
			return nil, err
		}
	}

	clientOpts := []api.ClientOption{
		api.WithBaseURL(cfg.BaseURL),
		api.WithTimeout(cfg.Timeout),
		api.WithSessionSource(store),
		api.WithLogger(o.log),
		api.WithUserAgent(cfg.UserAgent),
	}
	if o.httpClient != nil {
		clientOpts = append(clientOpts, api.WithHTTPClient(o.httpClient))
	}
	c.api = api.NewClient(clientOpts...)

	auth := api.NewAuthService(c.api)
	c.Incidents = api.NewIncidentsService(c.api)
	c.Utils = api.NewUtilsService(c.api)

	c.Session = session.NewManager(auth, store, session.WithLogger(o.log))
	c.api.OnSessionInvalidated(c.Session.SessionInvalidated)

	return c, nil
}

// API returns the underlying request client for advanced use, such as
// probing endpoints the facades do not cover.
func (c *Client) API() *api.Client {
	return c.api
}

// Close releases resources owned by the client.
func (c *Client) Close() error {
	if c.redis != nil {
		return c.redis.Close()
	}
	return nil
}

// openStore picks the session backend from configuration: Redis when a
// URL is set, otherwise a JSON file under the user config directory.
func (c *Client) openStore(cfg Config) (session.Store, error) {
	if cfg.RedisURL != "" {
		ropts, err := goredis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		c.redis = goredis.NewClient(ropts)
		return sessionstore.NewRedis[api.UserProfile](c.redis, nil), nil
	}

	path := cfg.SessionFile
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, errors.Join(ErrNoSessionPath, err)
		}
		path = filepath.Join(dir, "rmg", "session.json")
	}
	return sessionstore.NewFile[api.UserProfile](path), nil
}

// clientOptions collects construction options.
type clientOptions struct {
	log        *slog.Logger
	httpClient *http.Client
	store      session.Store
}

func defaultClientOptions() *clientOptions {
	return &clientOptions{
		log: logger.NewNope(),
	}
}

// Option configures New.
type Option func(*clientOptions)

// WithLogger sets the logger shared by the request client and the
// session manager. Defaults to a no-op logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *clientOptions) {
		if l != nil {
			o.log = l
		}
	}
}

// WithHTTPClient sets a custom HTTP client, useful for tests and custom
// transports.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = hc
	}
}

// WithStore overrides the configured session store.
func WithStore(s session.Store) Option {
	return func(o *clientOptions) {
		o.store = s
	}
}
