package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"brochure/internal/content"
	applog "brochure/internal/log"
)

const (
	healthOK       = "ok"
	healthDegraded = "degraded"
)

type healthResponse struct {
	Status  string            `json:"status"`
	Time    time.Time         `json:"time"`
	Theme   string            `json:"theme"`
	Presets int               `json:"presets"`
	Content string            `json:"content"`
	Errors  map[string]string `json:"errors,omitempty"`
}

var errNotConfigured = errors.New("not configured")

// Health reports whether the theme descriptor and the page content currently
// load. The site keeps serving unstyled or empty pages when they don't, so a
// failing document marks the response degraded rather than failing it.
func Health(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	applog.Debug(ctx, "health check requested", "method", r.Method)
	resp := healthResponse{
		Status:  healthOK,
		Time:    time.Now().UTC(),
		Theme:   healthOK,
		Content: healthOK,
	}
	fail := func(part string, err error) {
		resp.Status = healthDegraded
		if resp.Errors == nil {
			resp.Errors = map[string]string{}
		}
		resp.Errors[part] = err.Error()
		applog.Warn(ctx, "health check degraded", "part", part, "error", err)
	}

	if themeLoader == nil {
		resp.Theme = healthDegraded
		fail("theme", errNotConfigured)
	} else if desc, err := themeLoader.Load(ctx); err != nil {
		resp.Theme = healthDegraded
		fail("theme", err)
	} else {
		resp.Presets = len(desc.PresetNames())
	}

	if contentSource == nil {
		resp.Content = healthDegraded
		fail("content", errNotConfigured)
	} else if _, err := content.Load(ctx, contentSource); err != nil {
		resp.Content = healthDegraded
		fail("content", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		applog.Error(ctx, "failed to encode health response", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	applog.Debug(ctx, "health check responded", "status", resp.Status)
}
