package middleware

import (
	"context"
	"net/http"

	"golang.org/x/text/language"
)

type localeContextKey struct{}

// LocaleKey is the context key under which the resolved locale is stored.
var LocaleKey = localeContextKey{}

var supported = []language.Tag{
	language.English,    // en: default
	language.Indonesian, // id
}

var matcher = language.NewMatcher(supported)

// I18N resolves the request locale from the X-Locale header or
// Accept-Language and stores it in the request context. Unknown or missing
// preferences fall back to defaultLocale.
func I18N(defaultLocale string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale := detectLocale(r, defaultLocale)
			ctx := context.WithValue(r.Context(), LocaleKey, locale)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func detectLocale(r *http.Request, fallback string) string {
	preferred := r.Header.Get("X-Locale")
	accept := r.Header.Get("Accept-Language")
	if preferred == "" && accept == "" {
		if fallback != "" {
			return fallback
		}
		return "en"
	}
	tag, _ := language.MatchStrings(matcher, preferred, accept)
	base, _ := tag.Base()
	return base.String()
}

// LocaleFromContext returns the locale resolved for the request.
func LocaleFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(LocaleKey).(string); ok {
		return v
	}
	return "en"
}
