package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"

	"brochure/internal/resource"
	"brochure/internal/session"
	"brochure/internal/theme"
)

const sessionSwitchedKey = "theme:switched"

// Dependencies are the shared collaborators of the HTTP handlers.
type Dependencies struct {
	Sessions   *scs.SessionManager
	Theme      theme.Loader
	Content    resource.Source
	Transition time.Duration
}

var (
	sessionManager  *scs.SessionManager
	themeLoader     theme.Loader
	contentSource   resource.Source
	transitionDelay = theme.DefaultTransitionWindow
)

// Configure installs the shared dependencies used by the HTTP handlers.
func Configure(deps Dependencies) {
	sessionManager = deps.Sessions
	themeLoader = deps.Theme
	contentSource = deps.Content
	transitionDelay = deps.Transition
}

// preferences returns the per-visitor preference storage. Without a session
// manager preferences last only for the request.
func preferences() theme.Preferences {
	if sessionManager == nil {
		return theme.NewMemoryPreferences()
	}
	return session.NewPreferences(sessionManager)
}

// openStore builds and initializes a theme store for one request. The store
// is returned even when initialization fails so the page can render
// unstyled; callers must Close it.
func openStore(r *http.Request) (*theme.Store, error) {
	ctx := r.Context()
	scheme := theme.NewSchemeBroadcaster()
	if hint, ok := schemeFromContext(ctx); ok {
		scheme = theme.NewStaticScheme(hint)
	}
	store := theme.NewStore(themeLoader, preferences(),
		theme.WithStyleRoot(theme.NewStyleRoot(theme.WithTransitionWindow(transitionDelay))),
		theme.WithSchemeSource(scheme),
	)
	return store, store.Initialize(ctx)
}

func markSwitched(ctx context.Context) {
	if sessionManager == nil {
		return
	}
	sessionManager.Put(ctx, sessionSwitchedKey, true)
}

// popSwitched reports whether the previous request switched the preset.
func popSwitched(ctx context.Context) bool {
	if sessionManager == nil {
		return false
	}
	return sessionManager.PopBool(ctx, sessionSwitchedKey)
}
