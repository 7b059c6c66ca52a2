package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	applog "brochure/internal/log"
	"brochure/internal/theme"
)

type themeResponse struct {
	Presets      []string `json:"presets"`
	Active       string   `json:"active"`
	IsDarkMode   bool     `json:"isDarkMode"`
	PreferSystem bool     `json:"preferSystem"`
	Version      uint64   `json:"version"`
}

func newThemeResponse(store *theme.Store) themeResponse {
	presets := store.Presets()
	if presets == nil {
		presets = []string{}
	}
	return themeResponse{
		Presets:      presets,
		Active:       store.ActivePreset(),
		IsDarkMode:   store.IsDarkMode(),
		PreferSystem: store.PreferSystem(),
		Version:      store.Version(),
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		applog.Error(r.Context(), "failed to encode theme response", "error", err)
	}
}

// ThemeCSS serves the visitor's style surface as a stylesheet.
func ThemeCSS(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	store, err := openStore(r)
	defer store.Close()
	if err != nil {
		http.Error(w, "theme unavailable", http.StatusServiceUnavailable)
		return
	}

	snapshot := store.Root().Snapshot()
	etag := strconv.Quote(snapshot.Fingerprint())
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("X-Theme-Preset", store.ActivePreset())
	w.Header().Set("X-Theme-Version", strconv.FormatUint(snapshot.Version, 10))
	if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	if r.Method == http.MethodHead {
		return
	}
	if _, err := w.Write([]byte(snapshot.CSS())); err != nil {
		applog.Error(r.Context(), "failed to write theme stylesheet", "error", err)
	}
}

// Presets reports the selectable presets and the visitor's active one.
func Presets(w http.ResponseWriter, r *http.Request) {
	store, err := openStore(r)
	defer store.Close()
	if err != nil {
		http.Error(w, "theme unavailable", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, r, http.StatusOK, newThemeResponse(store))
}

// UpdatePreferences switches the visitor to the posted preset.
func UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	mutateTheme(w, r, func(store *theme.Store) error {
		preset := strings.TrimSpace(r.FormValue("preset"))
		if preset == "" {
			return &theme.UnknownPresetError{Name: preset}
		}
		return store.SetPreset(r.Context(), preset)
	})
}

// ToggleTheme switches between the light and dark variant of the active preset.
func ToggleTheme(w http.ResponseWriter, r *http.Request) {
	mutateTheme(w, r, func(store *theme.Store) error {
		return store.Toggle(r.Context())
	})
}

// UpdateSystemPreference opts the visitor in or out of following the OS
// color scheme.
func UpdateSystemPreference(w http.ResponseWriter, r *http.Request) {
	mutateTheme(w, r, func(store *theme.Store) error {
		enabled, err := strconv.ParseBool(strings.TrimSpace(r.FormValue("enabled")))
		if err != nil {
			return errInvalidFlag
		}
		return store.SetPreferSystem(r.Context(), enabled)
	})
}

var errInvalidFlag = errors.New("enabled must be true or false")

func mutateTheme(w http.ResponseWriter, r *http.Request, mutate func(*theme.Store) error) {
	if r.Method != http.MethodPost {
		applog.Debug(r.Context(), "theme update with unsupported method", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		applog.Error(r.Context(), "failed to parse theme form", "error", err)
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	store, err := openStore(r)
	defer store.Close()
	if err != nil {
		http.Error(w, "theme unavailable", http.StatusServiceUnavailable)
		return
	}

	before := store.Version()
	if err := mutate(store); err != nil {
		var unknown *theme.UnknownPresetError
		switch {
		case errors.As(err, &unknown), errors.Is(err, errInvalidFlag):
			applog.Debug(r.Context(), "rejected theme update", "error", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			applog.Error(r.Context(), "failed to update theme", "error", err)
			http.Error(w, "failed to update theme", http.StatusInternalServerError)
		}
		return
	}
	if store.Version() != before {
		markSwitched(r.Context())
	}

	switch {
	case wantsJSON(r):
		writeJSON(w, r, http.StatusOK, newThemeResponse(store))
	case isHTMX(r):
		w.Header().Set("HX-Refresh", "true")
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}
