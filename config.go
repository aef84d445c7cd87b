package rmg

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/sethvargo/go-envconfig"
	"gopkg.in/yaml.v3"
)

// ConfigFileEnv names the environment variable pointing at an optional
// YAML config file. Precedence: environment variables over file values
// over built-in defaults.
const ConfigFileEnv = "RMG_CONFIG_FILE"

// ErrConfigFile is returned when the config file cannot be read or parsed.
var ErrConfigFile = errors.New("rmg: cannot load config file")

// Config holds SDK configuration, loadable from the environment and an
// optional YAML file. The overwrite option lets a set environment
// variable win over a file value, while defaults only fill fields
// nothing else set.
type Config struct {
	// BaseURL is the backend API root, with a trailing slash.
	BaseURL string `env:"RMG_API_BASE_URL, overwrite, default=http://localhost:8000/api/"`

	// Timeout bounds every request end to end.
	Timeout time.Duration `env:"RMG_API_TIMEOUT, overwrite, default=10s"`

	// SessionFile is the path of the file-backed session store.
	// Empty means a per-user default under the OS config directory.
	SessionFile string `env:"RMG_SESSION_FILE, overwrite"`

	// RedisURL switches session persistence to Redis when set
	// (redis:// or rediss:// URL).
	RedisURL string `env:"RMG_REDIS_URL, overwrite"`

	// UserAgent is sent on every request.
	UserAgent string `env:"RMG_USER_AGENT, overwrite, default=rmg-go"`
}

// fileConfig is the YAML config file shape. Timeout is a duration string
// ("30s") so the file reads the same as the environment variable.
type fileConfig struct {
	BaseURL     string `yaml:"base_url"`
	Timeout     string `yaml:"timeout"`
	SessionFile string `yaml:"session_file"`
	RedisURL    string `yaml:"redis_url"`
	UserAgent   string `yaml:"user_agent"`
}

// LoadConfig reads configuration from the optional YAML file named by
// RMG_CONFIG_FILE, then from environment variables. A set environment
// variable overrides the file; defaults apply only to fields neither
// source provided.
func LoadConfig(ctx context.Context) (Config, error) {
	var cfg Config

	if path := os.Getenv(ConfigFileEnv); path != "" {
		if err := loadConfigFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := envconfig.Process(ctx, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Join(ErrConfigFile, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return errors.Join(ErrConfigFile, err)
	}

	cfg.BaseURL = fc.BaseURL
	cfg.SessionFile = fc.SessionFile
	cfg.RedisURL = fc.RedisURL
	cfg.UserAgent = fc.UserAgent

	if fc.Timeout != "" {
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return errors.Join(ErrConfigFile, err)
		}
		cfg.Timeout = d
	}
	return nil
}
