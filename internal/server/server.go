package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/gormstore"
	"github.com/alexedwards/scs/v2"
	"gorm.io/gorm"

	"brochure/internal/handlers"
	applog "brochure/internal/log"
	"brochure/internal/resource"
	"brochure/internal/theme"
)

// Config captures the runtime configuration for the HTTP server.
type Config struct {
	Addr     string
	Session  SessionConfig
	Database *gorm.DB
	Theme    ThemeConfig
}

// SessionConfig controls session behavior for the HTTP server.
type SessionConfig struct {
	Lifetime        time.Duration
	CookieName      string
	CookieDomain    string
	CookieSecure    bool
	CleanupInterval time.Duration
}

// ThemeConfig wires the theme descriptor and the page content.
type ThemeConfig struct {
	Loader     theme.Loader
	Content    resource.Source
	Transition time.Duration // zero disables the transition class
}

// Server wraps an http.Server and exposes helpers for bootstrapping a
// production-ready web service.
type Server struct {
	config       Config
	httpServer   *http.Server
	sessionStore *gormstore.GORMStore
}

// New builds a new Server using the provided configuration. Sessions are
// stored in the database when one is configured and in memory otherwise.
func New(cfg Config) (*Server, error) {
	applog.Debug(context.Background(), "initializing server",
		"addr", cfg.Addr,
		"sessionLifetime", cfg.Session.Lifetime.String(),
		"sessionCookie", cfg.Session.CookieName,
	)

	sessionCfg := cfg.Session
	if sessionCfg.Lifetime <= 0 {
		applog.Debug(context.Background(), "session lifetime not provided, using default")
		sessionCfg.Lifetime = 30 * 24 * time.Hour
	}
	if strings.TrimSpace(sessionCfg.CookieName) == "" {
		applog.Debug(context.Background(), "session cookie name not provided, using default")
		sessionCfg.CookieName = "brochure_session"
	}

	sessionManager := scs.New()
	sessionManager.Lifetime = sessionCfg.Lifetime
	sessionManager.Cookie.Name = sessionCfg.CookieName
	sessionManager.Cookie.Domain = sessionCfg.CookieDomain
	sessionManager.Cookie.HttpOnly = true
	sessionManager.Cookie.Persist = true
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode
	sessionManager.Cookie.Secure = sessionCfg.CookieSecure

	var store *gormstore.GORMStore
	if cfg.Database != nil {
		var err error
		store, err = gormstore.NewWithCleanupInterval(cfg.Database, sessionCfg.CleanupInterval)
		if err != nil {
			return nil, fmt.Errorf("session store: %w", err)
		}
		sessionManager.Store = store
		applog.Debug(context.Background(), "session store backed by database", "cleanupInterval", sessionCfg.CleanupInterval.String())
	} else {
		applog.Debug(context.Background(), "database not configured; sessions kept in memory")
	}

	applog.Debug(context.Background(), "session manager configured",
		"cookieName", sessionCfg.CookieName,
		"cookieDomain", sessionCfg.CookieDomain,
		"cookieSecure", sessionCfg.CookieSecure,
	)

	transition := cfg.Theme.Transition
	if transition < 0 {
		transition = 0
	}
	handlers.Configure(handlers.Dependencies{
		Sessions:   sessionManager,
		Theme:      cfg.Theme.Loader,
		Content:    cfg.Theme.Content,
		Transition: transition,
	})

	applog.Debug(context.Background(), "handler dependencies configured")

	handler := handlers.ColorSchemeHint(sessionManager.LoadAndSave(newRouter()))

	applog.Debug(context.Background(), "http handler chain prepared")

	return &Server{
		config:       cfg,
		sessionStore: store,
		httpServer: &http.Server{
			Addr:              cfg.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}, nil
}

// Start begins serving HTTP traffic using the underlying http.Server.
func (s *Server) Start() error {
	applog.Debug(context.Background(), "server starting listener", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop gracefully shuts down the HTTP server with a timeout and stops the
// session cleanup.
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	applog.Debug(ctx, "server initiating graceful shutdown")
	err := s.httpServer.Shutdown(ctx)
	if s.sessionStore != nil {
		s.sessionStore.StopCleanup()
	}
	return err
}

// Handler exposes the configured HTTP handler, enabling integration tests.
func (s *Server) Handler() http.Handler {
	applog.Debug(context.Background(), "server handler requested")
	return s.httpServer.Handler
}
