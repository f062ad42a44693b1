package formcheck

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/goliatone/go-formcheck/pkg/orchestrator"
)

const (
	defaultRoutePath    = "/api/forms"
	defaultMaxBodyBytes = 1 << 20
)

// GuardFunc rejects a request before it reaches the validator. Returning an
// error that implements HTTPError selects the response status; any other
// error yields 403.
type GuardFunc func(r *http.Request) error

// Event reports one validation handled by the component.
type Event struct {
	FormID   string
	Locale   string
	Result   orchestrator.Result
	Err      error
	Duration time.Duration
}

// Observer receives an Event after every validate request naming a known
// form. Requests for unknown forms are not reported.
type Observer func(Event)

// Validator is the subset of *orchestrator.Orchestrator the handler needs.
type Validator interface {
	Forms() []string
	Validate(ctx context.Context, req orchestrator.Request) (orchestrator.Result, error)
}

type Options struct {
	RoutePath    string
	MaxBodyBytes int64
	Guard        GuardFunc
	Observer     Observer
	Validator    Validator
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:    defaultRoutePath,
		MaxBodyBytes: defaultMaxBodyBytes,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = defaultRoutePath
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBodyBytes
	}
	if opts.Validator == nil {
		opts.Validator = defaultValidator()
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithMaxBodyBytes(limit int64) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxBodyBytes = limit
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithObserver(observer Observer) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Observer = observer
	}
}

// WithValidator replaces the default orchestrator, which serves the built-in
// inventory forms.
func WithValidator(v Validator) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Validator = v
	}
}

var (
	defaultValidatorOnce sync.Once
	defaultValidatorVal  *orchestrator.Orchestrator
)

func defaultValidator() Validator {
	defaultValidatorOnce.Do(func() {
		defaultValidatorVal = orchestrator.New()
	})
	return defaultValidatorVal
}
