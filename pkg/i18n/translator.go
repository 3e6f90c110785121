package i18n

import (
	"context"
	"log/slog"
	"regexp"
	"slices"

	"golang.org/x/text/language"

	"github.com/dmitrymomot/signupkit/pkg/logger"
)

// DefaultLanguage is used when nothing better matches.
const DefaultLanguage = "en"

// Translator looks up message keys in a Catalog. It is safe for concurrent use.
type Translator struct {
	catalog       Catalog
	defaultLang   string
	fallbackToKey bool
	logMissing    bool
	logger        *slog.Logger

	tags    []language.Tag
	matcher language.Matcher
}

// Option configures a Translator.
type Option func(*Translator)

// WithDefaultLanguage sets the language used for unmatched requests and missing keys.
func WithDefaultLanguage(lang string) Option {
	return func(t *Translator) {
		if lang != "" {
			t.defaultLang = lang
		}
	}
}

// WithFallbackToKey controls whether T returns the key when nothing matches.
// Default is true; otherwise an empty string is returned.
func WithFallbackToKey(fallback bool) Option {
	return func(t *Translator) { t.fallbackToKey = fallback }
}

// WithMissingTranslationsLogging logs missing keys at debug level.
func WithMissingTranslationsLogging(log bool) Option {
	return func(t *Translator) { t.logMissing = log }
}

func WithLogger(l *slog.Logger) Option {
	return func(t *Translator) {
		if l != nil {
			t.logger = l
		}
	}
}

// NewTranslator creates a translator over c.
func NewTranslator(c Catalog, opts ...Option) (*Translator, error) {
	if len(c) == 0 {
		return nil, ErrNoTranslations
	}
	t := &Translator{
		catalog:       c,
		defaultLang:   DefaultLanguage,
		fallbackToKey: true,
		logger:        logger.Discard(),
	}
	for _, opt := range opts {
		opt(t)
	}

	def, err := language.Parse(t.defaultLang)
	if err != nil {
		return nil, ErrInvalidLanguage
	}
	t.defaultLang = def.String()

	// The matcher prefers its first tag on a tie, so the default goes first.
	t.tags = []language.Tag{def}
	for _, lang := range t.Languages() {
		if lang != t.defaultLang {
			t.tags = append(t.tags, language.Make(lang))
		}
	}
	t.matcher = language.NewMatcher(t.tags)
	return t, nil
}

// Languages returns the loaded language tags, sorted.
func (t *Translator) Languages() []string {
	langs := make([]string, 0, len(t.catalog))
	for lang := range t.catalog {
		langs = append(langs, lang)
	}
	slices.Sort(langs)
	return langs
}

// Match picks the best supported language for an Accept-Language header value.
func (t *Translator) Match(acceptLanguage string) string {
	if len(acceptLanguage) > maxAcceptLanguageLength {
		acceptLanguage = acceptLanguage[:maxAcceptLanguageLength]
	}
	prefs, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(prefs) == 0 {
		return t.defaultLang
	}
	_, idx, conf := t.matcher.Match(prefs...)
	if conf == language.No {
		return t.defaultLang
	}
	return t.tags[idx].String()
}

// T translates key into lang, filling %{name} placeholders from args given as
// name/value pairs. Keys missing in lang are looked up in the default language.
func (t *Translator) T(lang, key string, args ...string) string {
	msg, ok := t.lookup(lang, key)
	if !ok {
		if t.logMissing {
			t.logger.Debug("translation not found", slog.String("lang", lang), slog.String("key", key))
		}
		if !t.fallbackToKey {
			return ""
		}
		msg = key
	}
	return substitute(msg, args)
}

// Lookup returns the message for key in lang or the default language.
func (t *Translator) Lookup(lang, key string) (string, bool) {
	return t.lookup(lang, key)
}

// Ctx translates key into the language stored in ctx by Middleware.
func (t *Translator) Ctx(ctx context.Context, key string, args ...string) string {
	return t.T(Locale(ctx), key, args...)
}

func (t *Translator) lookup(lang, key string) (string, bool) {
	if msg, ok := t.catalog[lang][key]; ok {
		return msg, true
	}
	msg, ok := t.catalog[t.defaultLang][key]
	return msg, ok
}

var placeholder = regexp.MustCompile(`%\{([^}]+)\}`)

// Unknown placeholders are kept as written.
func substitute(tmpl string, args []string) string {
	if len(args) < 2 {
		return tmpl
	}
	params := make(map[string]string, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		params[args[i]] = args[i+1]
	}
	return placeholder.ReplaceAllStringFunc(tmpl, func(m string) string {
		if v, ok := params[m[2:len(m)-1]]; ok {
			return v
		}
		return m
	})
}
