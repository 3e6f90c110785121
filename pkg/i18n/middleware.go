package i18n

import (
	"context"
	"log/slog"
	"net/http"
)

// maxAcceptLanguageLength bounds the header parsed per request.
const maxAcceptLanguageLength = 4096

type localeKey struct{}

// WithLocale stores lang in ctx.
func WithLocale(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, localeKey{}, lang)
}

// Locale returns the language stored in ctx, or DefaultLanguage.
func Locale(ctx context.Context) string {
	if lang, ok := ctx.Value(localeKey{}).(string); ok && lang != "" {
		return lang
	}
	return DefaultLanguage
}

// Middleware stores the negotiated request language in the context.
// A "lang" query parameter naming a loaded language wins over Accept-Language.
func Middleware(t *Translator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := t.Match(r.Header.Get("Accept-Language"))
			if q := r.URL.Query().Get("lang"); q != "" {
				if _, ok := t.catalog[q]; ok {
					lang = q
				}
			}
			w.Header().Set("Content-Language", lang)
			next.ServeHTTP(w, r.WithContext(WithLocale(r.Context(), lang)))
		})
	}
}

// LoggerExtractor adds the request language to log records.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if lang, ok := ctx.Value(localeKey{}).(string); ok && lang != "" {
			return slog.String("lang", lang), true
		}
		return slog.Attr{}, false
	}
}
