package signup

import (
	"context"
	"embed"
	"sync"

	"github.com/dmitrymomot/signupkit/pkg/i18n"
)

//go:embed translations/*.yaml
var translationsFS embed.FS

var defaultTranslator = sync.OnceValues(func() (*i18n.Translator, error) {
	catalog, err := i18n.LoadFS(translationsFS, "translations")
	if err != nil {
		return nil, err
	}
	return i18n.NewTranslator(catalog)
})

// DefaultTranslator returns the translator for the bundled error messages.
// It panics if the embedded files are broken.
func DefaultTranslator() *i18n.Translator {
	t, err := defaultTranslator()
	if err != nil {
		panic(err)
	}
	return t
}

// translateError replaces an error key with its message in the request
// language. Anything without a catalog entry is returned as is.
func translateError(t *i18n.Translator) func(context.Context, string) string {
	return func(ctx context.Context, msg string) string {
		if out, ok := t.Lookup(i18n.Locale(ctx), "errors."+msg); ok {
			return out
		}
		return msg
	}
}
