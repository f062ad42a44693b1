package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formcheck/pkg/i18n"
	"github.com/goliatone/go-formcheck/pkg/inventory"
	"github.com/goliatone/go-formcheck/pkg/render"
	"github.com/goliatone/go-formcheck/pkg/ruleset"
	"github.com/goliatone/go-formcheck/pkg/validation"
)

// ErrFormNotFound is returned when a request names a form the store does not
// hold.
var ErrFormNotFound = errors.New("orchestrator: form not found")

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithStore replaces the built-in inventory forms.
func WithStore(store *ruleset.Store) Option {
	return func(o *Orchestrator) {
		if store != nil {
			o.store = store
		}
	}
}

// WithTranslator localises messages carrying a message key. Passing nil
// disables translation.
func WithTranslator(t i18n.Translator) Option {
	return func(o *Orchestrator) {
		o.translator = t
		o.translatorSet = true
	}
}

// WithDefaultLocale sets the locale used when a request omits one.
func WithDefaultLocale(locale string) Option {
	return func(o *Orchestrator) {
		if locale = strings.TrimSpace(locale); locale != "" {
			o.defaultLocale = locale
		}
	}
}

// WithLogger injects a zap logger.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithTransformers registers transformers applied in order before
// validation.
func WithTransformers(transformers ...Transformer) Option {
	return func(o *Orchestrator) {
		for _, t := range transformers {
			if t != nil {
				o.transformers = append(o.transformers, t)
			}
		}
	}
}

// Orchestrator resolves a form, localises its rules and validates snapshots
// against them. It holds no per-request state and is safe for concurrent
// use.
type Orchestrator struct {
	store         *ruleset.Store
	translator    i18n.Translator
	translatorSet bool
	defaultLocale string
	logger        *zap.SugaredLogger
	transformers  []Transformer
}

// New constructs an Orchestrator. Without options it validates the built-in
// inventory forms with the bundled message catalog.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultLocale: inventory.DefaultLocale,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	if o.store == nil {
		o.store = inventory.Store()
	}
	if !o.translatorSet {
		o.translator = inventory.Catalog()
	}
	if o.logger == nil {
		o.logger = zap.NewNop().Sugar()
	}
	return o
}

// Request describes one validation call.
type Request struct {
	FormID string
	Values validation.Values
	// Locale selects message translations; empty means the default locale.
	Locale string
	// ServerErrors optionally carries a backend error payload to merge into
	// the result. Client-side messages win for keys reported by both.
	ServerErrors map[string][]string
}

// Result is the outcome of a validation call.
type Result struct {
	FormID string              `json:"form"`
	Valid  bool                `json:"valid"`
	Errors validation.ErrorMap `json:"errors"`
	// Fields lists Errors in display order.
	Fields []render.FieldError `json:"fields,omitempty"`
	// FormErrors holds server messages that map to no field.
	FormErrors []string `json:"formErrors,omitempty"`
}

// Forms lists the form ids the orchestrator can validate.
func (o *Orchestrator) Forms() []string {
	return o.store.Forms()
}

// Form returns the form registered under id.
func (o *Orchestrator) Form(id string) (ruleset.Form, bool) {
	return o.store.Form(id)
}

// Rules returns the rules of formID with messages localised for locale.
func (o *Orchestrator) Rules(formID, locale string) ([]validation.Rule, error) {
	form, ok := o.store.Form(formID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrFormNotFound, formID)
	}
	if o.translator == nil {
		return form.Rules, nil
	}
	return i18n.Localize(form.Rules, o.locale(locale), o.translator), nil
}

// Validate runs the form's rules against req.Values. Validation failures are
// reported in Result; errors are reserved for unknown forms, transformer
// failures and malformed rules (*validation.RuleError).
func (o *Orchestrator) Validate(ctx context.Context, req Request) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	formID := strings.TrimSpace(req.FormID)
	if formID == "" {
		return Result{}, errors.New("orchestrator: form id is required")
	}
	rules, err := o.Rules(formID, req.Locale)
	if err != nil {
		return Result{}, err
	}

	values := req.Values
	for _, t := range o.transformers {
		values, err = t.Transform(ctx, formID, values)
		if err != nil {
			return Result{}, fmt.Errorf("orchestrator: transform %q: %w", formID, err)
		}
	}

	errs, err := validation.ValidateFormSafe(values, rules)
	if err != nil {
		o.logger.Errorw("malformed rule set", "form", formID, "error", err)
		return Result{}, fmt.Errorf("orchestrator: form %q: %w", formID, err)
	}

	result := Result{FormID: formID}
	if len(req.ServerErrors) > 0 {
		mapping := render.MapErrorPayload(rules, req.ServerErrors)
		errs = errs.Merge(mapping.ErrorMap())
		result.FormErrors = mapping.Form
	}
	result.Errors = errs
	result.Valid = errs.Empty() && len(result.FormErrors) == 0
	result.Fields = render.Inline(rules, errs)

	o.logger.Debugw("form validated",
		"form", formID,
		"locale", o.locale(req.Locale),
		"valid", result.Valid,
		"errors", len(errs),
	)
	return result, nil
}

func (o *Orchestrator) locale(requested string) string {
	if requested = strings.TrimSpace(requested); requested != "" {
		return requested
	}
	return o.defaultLocale
}
