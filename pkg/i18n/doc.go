// Package i18n translates message keys loaded from YAML files.
//
// Translation files are keyed by language at the top level. Nested maps are
// flattened into dot-separated keys:
//
//	en:
//	  errors:
//	    too_many_requests: "Too many attempts. Try again in a minute."
//
// Placeholders use the %{name} form and are filled from key/value pairs:
//
//	tr.T("en", "welcome", "name", "Jane")
//
// Middleware negotiates the request language from Accept-Language and stores
// it in the context, where Translator.Ctx picks it up.
package i18n
