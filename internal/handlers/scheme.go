package handlers

import (
	"context"
	"net/http"

	applog "brochure/internal/log"
	"brochure/internal/theme"
)

// SchemeHintHeader is the client hint carrying the OS color scheme.
const SchemeHintHeader = "Sec-CH-Prefers-Color-Scheme"

type schemeKey struct{}

// ColorSchemeHint asks browsers for the color-scheme client hint and records
// it on the request context.
func ColorSchemeHint(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Accept-CH", SchemeHintHeader)
		w.Header().Add("Vary", SchemeHintHeader)
		if scheme, ok := theme.ParseScheme(r.Header.Get(SchemeHintHeader)); ok {
			applog.Debug(r.Context(), "color scheme hint received", "scheme", string(scheme))
			r = r.WithContext(context.WithValue(r.Context(), schemeKey{}, scheme))
		}
		next.ServeHTTP(w, r)
	})
}

func schemeFromContext(ctx context.Context) (theme.Scheme, bool) {
	scheme, ok := ctx.Value(schemeKey{}).(theme.Scheme)
	return scheme, ok
}
