package i18n

import "errors"

var (
	ErrNoTranslations   = errors.New("i18n: no translations loaded")
	ErrInvalidYAML      = errors.New("i18n: invalid translation file")
	ErrInvalidLanguage  = errors.New("i18n: invalid language tag")
	ErrReadTranslations = errors.New("i18n: failed to read translations")
)
