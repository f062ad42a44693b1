package i18n

import (
	"github.com/goliatone/go-formcheck/pkg/validation"
)

// LocalizeOption customises Localize.
type LocalizeOption func(*localizeOptions)

type localizeOptions struct {
	onMissing MissingTranslationHandler
}

// WithOnMissing routes untranslatable keys through fn instead of keeping the
// original message.
func WithOnMissing(fn MissingTranslationHandler) LocalizeOption {
	return func(o *localizeOptions) {
		o.onMissing = fn
	}
}

// Localize returns a copy of rules whose check messages are replaced by the
// translation of their MessageKey in locale. Checks without a key keep their
// message. The input rules are never modified.
func Localize(rules []validation.Rule, locale string, t Translator, opts ...LocalizeOption) []validation.Rule {
	if rules == nil {
		return nil
	}
	options := localizeOptions{onMissing: KeepFallback}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	out := make([]validation.Rule, len(rules))
	for i, rule := range rules {
		copied := rule
		copied.Checks = localizeChecks(rule.Checks, locale, t, options.onMissing)
		if rule.RowChecks != nil {
			copied.RowChecks = make(map[string][]validation.Check, len(rule.RowChecks))
			for key, checks := range rule.RowChecks {
				copied.RowChecks[key] = localizeChecks(checks, locale, t, options.onMissing)
			}
		}
		out[i] = copied
	}
	return out
}

func localizeChecks(checks []validation.Check, locale string, t Translator, onMissing MissingTranslationHandler) []validation.Check {
	if checks == nil {
		return nil
	}
	out := make([]validation.Check, len(checks))
	for i, check := range checks {
		if check.MessageKey != "" {
			check.Message = Translate(locale, check.MessageKey, check.Message, t, onMissing)
		}
		if check.Args != nil {
			check.Args = append([]any(nil), check.Args...)
		}
		out[i] = check
	}
	return out
}
