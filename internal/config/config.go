package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// FileEnv names the environment variable pointing at an optional config file.
const FileEnv = "BROCHURE_CONFIG"

// Config captures the runtime configuration for the application.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Logging  LoggingConfig
	Session  SessionConfig
	Theme    ThemeConfig
}

// ServerConfig configures the HTTP server runtime behavior.
type ServerConfig struct {
	Addr string
}

// DatabaseConfig contains the database connection settings. The database only
// backs the session store; without one sessions live in memory.
type DatabaseConfig struct {
	URL             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	UseMemory       bool
}

// LoggingConfig controls the global logger.
type LoggingConfig struct {
	Level string
}

// SessionConfig controls the cookie session carrying theme preferences.
type SessionConfig struct {
	Lifetime        time.Duration
	CookieName      string
	CookieDomain    string
	CookieSecure    bool
	CleanupInterval time.Duration
}

// ThemeConfig locates the theme descriptor and the page content. URLs win
// over paths; with neither set the embedded documents are used.
type ThemeConfig struct {
	URL         string
	Path        string
	ContentURL  string
	ContentPath string
	Transition  time.Duration
}

var envBindings = map[string][]string{
	"server.addr":                 {"SERVER_ADDR", "ADDR"},
	"database.url":                {"DATABASE_URL", "DB_URL"},
	"database.max_idle_conns":     {"DATABASE_MAX_IDLE_CONNS"},
	"database.max_open_conns":     {"DATABASE_MAX_OPEN_CONNS"},
	"database.conn_max_lifetime":  {"DATABASE_CONN_MAX_LIFETIME"},
	"database.conn_max_idle_time": {"DATABASE_CONN_MAX_IDLE_TIME"},
	"database.use_memory":         {"DATABASE_USE_MEMORY"},
	"logging.level":               {"LOG_LEVEL"},
	"session.lifetime":            {"SESSION_LIFETIME"},
	"session.cookie_name":         {"SESSION_COOKIE_NAME"},
	"session.cookie_domain":       {"SESSION_COOKIE_DOMAIN"},
	"session.cookie_secure":       {"SESSION_COOKIE_SECURE"},
	"session.cleanup_interval":    {"SESSION_CLEANUP_INTERVAL"},
	"theme.url":                   {"THEME_URL"},
	"theme.path":                  {"THEME_PATH"},
	"theme.content_url":           {"CONTENT_URL"},
	"theme.content_path":          {"CONTENT_PATH"},
	"theme.transition":            {"THEME_TRANSITION"},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("logging.level", "info")
	v.SetDefault("session.lifetime", 30*24*time.Hour)
	v.SetDefault("session.cookie_name", "brochure_session")
	v.SetDefault("session.cookie_secure", true)
	v.SetDefault("session.cleanup_interval", 10*time.Minute)
	v.SetDefault("theme.transition", 300*time.Millisecond)
}

// Load builds a Config from defaults, the optional file named by
// BROCHURE_CONFIG and the environment, in increasing precedence.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)
	for key, envs := range envBindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	if path := strings.TrimSpace(os.Getenv(FileEnv)); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	cfg := Config{
		Server: ServerConfig{
			Addr: strings.TrimSpace(v.GetString("server.addr")),
		},
		Database: DatabaseConfig{
			URL:             strings.TrimSpace(v.GetString("database.url")),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			ConnMaxLifetime: v.GetDuration("database.conn_max_lifetime"),
			ConnMaxIdleTime: v.GetDuration("database.conn_max_idle_time"),
			UseMemory:       v.GetBool("database.use_memory"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("logging.level"),
		},
		Session: SessionConfig{
			Lifetime:        v.GetDuration("session.lifetime"),
			CookieName:      v.GetString("session.cookie_name"),
			CookieDomain:    v.GetString("session.cookie_domain"),
			CookieSecure:    v.GetBool("session.cookie_secure"),
			CleanupInterval: v.GetDuration("session.cleanup_interval"),
		},
		Theme: ThemeConfig{
			URL:         strings.TrimSpace(v.GetString("theme.url")),
			Path:        strings.TrimSpace(v.GetString("theme.path")),
			ContentURL:  strings.TrimSpace(v.GetString("theme.content_url")),
			ContentPath: strings.TrimSpace(v.GetString("theme.content_path")),
			Transition:  v.GetDuration("theme.transition"),
		},
	}

	if cfg.Server.Addr == "" {
		return Config{}, fmt.Errorf("server address must not be empty")
	}
	if cfg.Session.Lifetime <= 0 {
		return Config{}, fmt.Errorf("session lifetime must be positive")
	}
	if cfg.Theme.Transition < 0 {
		return Config{}, fmt.Errorf("theme transition must not be negative")
	}

	return cfg, nil
}
