package handlers

import (
	"net/http"

	"brochure/internal/content"
	applog "brochure/internal/log"
	"brochure/internal/views/pages"
)

// Home renders the brochure page with the visitor's theme applied. A theme
// or content failure degrades the page instead of failing the request.
func Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	ctx := r.Context()

	store, err := openStore(r)
	defer store.Close()
	if err != nil {
		applog.Error(ctx, "rendering home without theme", "error", err)
	}

	var home *content.Home
	if contentSource == nil {
		applog.Debug(ctx, "content source not configured; rendering shell")
	} else if home, err = content.Load(ctx, contentSource); err != nil {
		applog.Error(ctx, "rendering home without content", "error", err)
		home = nil
	}

	data := pages.NewHomeData(store, home, transitionDelay)
	data.Page.Transitioning = data.Page.Transitioning && popSwitched(ctx)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := pages.Home(data).Render(ctx, w); err != nil {
		applog.Error(ctx, "failed to render home", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
