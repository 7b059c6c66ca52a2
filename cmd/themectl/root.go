package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"brochure/internal/config"
	"brochure/internal/db"
	applog "brochure/internal/log"
	"brochure/internal/resource"
	"brochure/internal/session"
	"brochure/internal/theme"
	"brochure/web"
)

type rootFlags struct {
	dbPath    string
	profile   string
	themeURL  string
	themePath string
	scheme    string
	verbose   bool
}

var termIsTerminal = func(fd int) bool {
	return term.IsTerminal(fd)
}

func isTerminal(writer any) bool {
	if file, ok := writer.(*os.File); ok {
		return termIsTerminal(int(file.Fd()))
	}
	return false
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "themectl",
		Short:         "Inspect and switch the site theme from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := "warn"
			if flags.verbose {
				level = "debug"
			}
			applog.SetOutput(cmd.ErrOrStderr())
			return applog.SetLevel(level)
		},
	}

	cmd.PersistentFlags().StringVar(&flags.dbPath, "db", "", "Preferences database file (default: user config dir)")
	cmd.PersistentFlags().StringVar(&flags.profile, "profile", "", "Preference profile name")
	cmd.PersistentFlags().StringVar(&flags.themeURL, "theme-url", "", "Theme descriptor URL (default: $THEME_URL)")
	cmd.PersistentFlags().StringVar(&flags.themePath, "theme", "", "Theme descriptor file (default: $THEME_PATH or the embedded descriptor)")
	cmd.PersistentFlags().StringVar(&flags.scheme, "scheme", "", "System color scheme to assume: light or dark")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(newCSSCmd(flags))
	cmd.AddCommand(newPresetsCmd(flags))
	cmd.AddCommand(newPreviewCmd(flags))
	cmd.AddCommand(newUseCmd(flags))
	cmd.AddCommand(newSystemCmd(flags))
	cmd.AddCommand(newPickCmd(flags))

	return cmd
}

func defaultDBPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "brochure", "themectl.db"), nil
}

// themeSource resolves the descriptor location from flags, then the
// environment, then the embedded default.
func themeSource(flags *rootFlags) resource.Source {
	url, path := flags.themeURL, flags.themePath
	if url == "" && path == "" {
		if cfg, err := config.Load(); err == nil {
			url, path = cfg.Theme.URL, cfg.Theme.Path
		}
	}
	return resource.Locate(url, path, web.Content, web.ThemePath)
}

// openStore opens the preferences database and returns an initialized store.
// The returned close function releases both.
func openStore(ctx context.Context, flags *rootFlags) (*theme.Store, func(), error) {
	path := strings.TrimSpace(flags.dbPath)
	if path == "" {
		var err error
		if path, err = defaultDBPath(); err != nil {
			return nil, nil, fmt.Errorf("determine preferences path: %w", err)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create preferences directory: %w", err)
	}

	database, err := db.Configure(config.DatabaseConfig{URL: "sqlite://" + path, MaxOpenConns: 1})
	if err != nil {
		return nil, nil, fmt.Errorf("open preferences %s: %w", path, err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		return nil, nil, err
	}

	scheme := theme.NewSchemeBroadcaster()
	if flags.scheme != "" {
		parsed, ok := theme.ParseScheme(flags.scheme)
		if !ok {
			sqlDB.Close()
			return nil, nil, fmt.Errorf("unknown scheme %q: want light or dark", flags.scheme)
		}
		scheme = theme.NewStaticScheme(parsed)
	}

	prefs := session.NewProfilePreferences(database, flags.profile)
	store := theme.NewStore(theme.NewLoader(themeSource(flags)), prefs, theme.WithSchemeSource(scheme))
	closeFn := func() {
		store.Close()
		sqlDB.Close()
	}
	if err := store.Initialize(ctx); err != nil {
		closeFn()
		return nil, nil, err
	}
	return store, closeFn, nil
}
