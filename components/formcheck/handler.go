package formcheck

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-formcheck/pkg/orchestrator"
	"github.com/goliatone/go-formcheck/pkg/validation"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

type validateRequest struct {
	Values       validation.Values   `json:"values"`
	Locale       string              `json:"locale"`
	ServerErrors map[string][]string `json:"serverErrors,omitempty"`
}

type formsResponse struct {
	Data []string `json:"data"`
}

type errorResponse struct {
	Error string `json:"error"`
	// Key names the field being evaluated when a rule could not be applied.
	Key string `json:"key,omitempty"`
}

// ListHandler serves the ids of the forms the validator knows.
func ListHandler(fns ...OptionFn) http.Handler {
	return ListHandlerWithOptions(NewOptions(fns...))
}

func ListHandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				writeGuardError(w, err)
				return
			}
		}

		forms := opts.Validator.Forms()
		if forms == nil {
			forms = []string{}
		}
		if r.Method == http.MethodHead {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			return
		}
		writeJSON(w, http.StatusOK, formsResponse{Data: forms})
	})
}

// ValidateHandler validates a posted snapshot against the form named by the
// "form" path parameter.
func ValidateHandler(fns ...OptionFn) http.Handler {
	return ValidateHandlerWithOptions(NewOptions(fns...))
}

func ValidateHandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				writeGuardError(w, err)
				return
			}
		}

		formID := formParam(r)
		if formID == "" {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "form id is required"})
			return
		}

		var body validateRequest
		dec := json.NewDecoder(io.LimitReader(r.Body, opts.MaxBodyBytes))
		dec.UseNumber()
		if err := dec.Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
			return
		}

		started := time.Now()
		result, err := opts.Validator.Validate(r.Context(), orchestrator.Request{
			FormID:       formID,
			Values:       body.Values,
			Locale:       body.Locale,
			ServerErrors: body.ServerErrors,
		})
		// Unknown ids come from the URL and are not reported.
		if opts.Observer != nil && !errors.Is(err, orchestrator.ErrFormNotFound) {
			opts.Observer(Event{
				FormID:   formID,
				Locale:   body.Locale,
				Result:   result,
				Err:      err,
				Duration: time.Since(started),
			})
		}
		if err != nil {
			resp := errorResponse{Error: err.Error()}
			var ruleErr *validation.RuleError
			if errors.As(err, &ruleErr) {
				resp.Key = ruleErr.Key
			}
			writeJSON(w, statusFor(err), resp)
			return
		}
		if result.Errors == nil {
			result.Errors = validation.ErrorMap{}
		}
		writeJSON(w, http.StatusOK, result)
	})
}

func statusFor(err error) int {
	var httpErr HTTPError
	switch {
	case errors.Is(err, orchestrator.ErrFormNotFound):
		return http.StatusNotFound
	case errors.Is(err, validation.ErrMalformedRule):
		return http.StatusUnprocessableEntity
	case errors.As(err, &httpErr) && httpErr != nil:
		return httpErr.StatusCode()
	default:
		return http.StatusInternalServerError
	}
}

// formParam reads the form id from chi route params, then from the
// net/http pattern wildcard, then from the request path itself.
func formParam(r *http.Request) string {
	if id := strings.TrimSpace(chi.URLParam(r, "form")); id != "" {
		return id
	}
	if id := strings.TrimSpace(r.PathValue("form")); id != "" {
		return id
	}
	segments := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if n := len(segments); n >= 2 && segments[n-1] == "validate" {
		return strings.TrimSpace(segments[n-2])
	}
	return ""
}

func writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(payload)
}

func writeGuardError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	if err == nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
}
