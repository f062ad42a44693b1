package i18n

import (
	"errors"
	"strings"
)

var (
	// ErrMissingTranslator is reported to MissingTranslationHandler when no
	// translator was configured.
	ErrMissingTranslator = errors.New("i18n: translator not configured")
	// ErrMissingTranslation is returned by Catalog when no message exists for
	// the key in the requested locale or any of its fallbacks.
	ErrMissingTranslation = errors.New("i18n: missing translation")
)

// Translator resolves a message key for a locale. Args are optional format
// arguments.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// TranslatorFunc adapts a function to the Translator interface.
type TranslatorFunc func(locale, key string, args ...any) (string, error)

func (fn TranslatorFunc) Translate(locale, key string, args ...any) (string, error) {
	return fn(locale, key, args...)
}

// MissingTranslationHandler decides the text used when a key cannot be
// translated. Fallback is the untranslated message.
type MissingTranslationHandler func(locale, key, fallback string, err error) string

// KeepFallback is the default MissingTranslationHandler: it keeps the
// untranslated message, or the key when the message is empty.
func KeepFallback(_ string, key, fallback string, _ error) string {
	if strings.TrimSpace(fallback) != "" {
		return fallback
	}
	return key
}

// Translate resolves key through t, routing failures through onMissing.
func Translate(locale, key, fallback string, t Translator, onMissing MissingTranslationHandler) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return fallback
	}
	if onMissing == nil {
		onMissing = KeepFallback
	}
	if t == nil {
		return onMissing(locale, key, fallback, ErrMissingTranslator)
	}

	result, err := t.Translate(locale, key)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}
	return onMissing(locale, key, fallback, err)
}

// Chain returns a Translator that asks each translator in order and keeps the
// first non-empty result. Nil entries are skipped.
func Chain(translators ...Translator) Translator {
	list := make([]Translator, 0, len(translators))
	for _, t := range translators {
		if t != nil {
			list = append(list, t)
		}
	}
	return TranslatorFunc(func(locale, key string, args ...any) (string, error) {
		if len(list) == 0 {
			return "", ErrMissingTranslator
		}
		err := ErrMissingTranslation
		for _, t := range list {
			result, terr := t.Translate(locale, key, args...)
			if terr == nil && strings.TrimSpace(result) != "" {
				return result, nil
			}
			if terr != nil {
				err = terr
			}
		}
		return "", err
	})
}
