package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"gorm.io/gorm"

	"brochure/internal/config"
	"brochure/internal/db"
	"brochure/internal/db/memory"
	applog "brochure/internal/log"
	"brochure/internal/resource"
	"brochure/internal/server"
	"brochure/internal/theme"
	"brochure/web"
)

type serverLifecycle interface {
	Start() error
	Stop() error
}

var (
	loadConfigFunc        = config.Load
	setLogLevelFunc       = applog.SetLevel
	newMemoryDatabaseFunc = memory.New
	configureDatabase     = db.Configure
	newServerFunc         = func(cfg server.Config) (serverLifecycle, error) { return server.New(cfg) }
	subscribeShutdownSig  = func() (<-chan os.Signal, func()) {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT)
		return ch, func() { signal.Stop(ch) }
	}
)

func main() {
	os.Exit(run(context.Background()))
}

func run(ctx context.Context) int {
	cfg, err := loadConfigFunc()
	if err != nil {
		applog.Error(ctx, "failed to load configuration", "error", err)
		return 1
	}
	if err := setLogLevelFunc(cfg.Logging.Level); err != nil {
		applog.Error(ctx, "invalid log level", "level", cfg.Logging.Level, "error", err)
		return 1
	}

	database, err := openDatabase(ctx, cfg.Database)
	if err != nil {
		applog.Error(ctx, "failed to configure database", "error", err)
		return 1
	}

	srv, err := newServerFunc(server.Config{
		Addr: cfg.Server.Addr,
		Session: server.SessionConfig{
			Lifetime:        cfg.Session.Lifetime,
			CookieName:      cfg.Session.CookieName,
			CookieDomain:    cfg.Session.CookieDomain,
			CookieSecure:    cfg.Session.CookieSecure,
			CleanupInterval: cfg.Session.CleanupInterval,
		},
		Database: database,
		Theme: server.ThemeConfig{
			Loader:     theme.NewLoader(resource.Locate(cfg.Theme.URL, cfg.Theme.Path, web.Content, web.ThemePath)),
			Content:    resource.Locate(cfg.Theme.ContentURL, cfg.Theme.ContentPath, web.Content, web.ContentPath),
			Transition: cfg.Theme.Transition,
		},
	})
	if err != nil {
		applog.Error(ctx, "failed to build server", "error", err)
		return 1
	}

	sigCh, stopSignals := subscribeShutdownSig()
	defer stopSignals()

	errCh := make(chan error, 1)
	go func() {
		applog.Info(ctx, "starting http server", "addr", cfg.Server.Addr)
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			applog.Error(ctx, "server encountered an error", "error", err)
			return 1
		}
		return 0
	case sig := <-sigCh:
		applog.Info(ctx, "shutting down http server", "signal", sig.String())
	}

	if err := srv.Stop(); err != nil {
		applog.Error(ctx, "graceful shutdown failed", "error", err)
		return 1
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		applog.Error(ctx, "server encountered an error", "error", err)
		return 1
	}
	return 0
}

// openDatabase returns the session database: the configured URL, an
// in-memory database, or none at all.
func openDatabase(ctx context.Context, cfg config.DatabaseConfig) (*gorm.DB, error) {
	switch {
	case cfg.UseMemory:
		applog.Info(ctx, "using in-memory database")
		return newMemoryDatabaseFunc(ctx)
	case cfg.URL != "":
		return configureDatabase(cfg)
	default:
		applog.Info(ctx, "no database configured; sessions kept in memory")
		return nil, nil
	}
}
