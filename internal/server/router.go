package server

import (
	"context"
	"io/fs"
	"net/http"

	"brochure/internal/handlers"
	applog "brochure/internal/log"
	"brochure/web"
)

func newRouter() http.Handler {
	mux := http.NewServeMux()
	applog.Debug(context.Background(), "registering http routes")
	mux.HandleFunc("/healthz", handlers.Health)
	applog.Debug(context.Background(), "route registered", "path", "/healthz")
	mux.HandleFunc("/theme.css", handlers.ThemeCSS)
	applog.Debug(context.Background(), "route registered", "path", "/theme.css")
	mux.HandleFunc("/theme/presets", handlers.Presets)
	applog.Debug(context.Background(), "route registered", "path", "/theme/presets")
	mux.HandleFunc("/preferences/theme", handlers.UpdatePreferences)
	mux.HandleFunc("/preferences/theme/toggle", handlers.ToggleTheme)
	mux.HandleFunc("/preferences/system", handlers.UpdateSystemPreference)
	applog.Debug(context.Background(), "route registered", "path", "/preferences/")
	mux.HandleFunc("/", handlers.Home)
	applog.Debug(context.Background(), "route registered", "path", "/")
	if documents, err := fs.Sub(web.Content, "content"); err != nil {
		applog.Error(context.Background(), "embedded content unavailable", "error", err)
	} else {
		mux.Handle("/content/", http.StripPrefix("/content/", http.FileServer(http.FS(documents))))
		applog.Debug(context.Background(), "route registered", "path", "/content/", "static", true)
	}
	return mux
}
