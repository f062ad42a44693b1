package formcheck

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-formcheck/pkg/openapi"
	"github.com/goliatone/go-formcheck/pkg/orchestrator"
	"github.com/goliatone/go-formcheck/pkg/ruleset"
	"github.com/goliatone/go-formcheck/pkg/validation"
)

// Values is the form snapshot handed to the engine.
type Values = validation.Values

// Rule binds checks to a form field.
type Rule = validation.Rule

// Check is one entry of an ordered validation list.
type Check = validation.Check

// ErrorMap maps error keys to the first failing message.
type ErrorMap = validation.ErrorMap

// Request describes one orchestrated validation call.
type Request = orchestrator.Request

// Result is the outcome of an orchestrated validation call.
type Result = orchestrator.Result

// ErrFormNotFound is returned for unknown form ids.
var ErrFormNotFound = orchestrator.ErrFormNotFound

// New exposes the orchestrator constructor from the top-level module.
func New(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Validate validates a snapshot against a form using a default orchestrator
// extended by options.
func Validate(ctx context.Context, req Request, options ...orchestrator.Option) (Result, error) {
	return orchestrator.New(options...).Validate(ctx, req)
}

// ValidateForm validates values against rules directly.
func ValidateForm(values Values, rules []Rule) ErrorMap {
	return validation.ValidateForm(values, rules)
}

// ValidateField returns the first failing message of checks for value.
func ValidateField(value any, checks []Check) (string, bool) {
	return validation.ValidateField(value, checks)
}

// LoadRules loads rule documents from fsys.
func LoadRules(fsys fs.FS, options ...ruleset.Option) (*ruleset.Store, error) {
	return ruleset.LoadFS(fsys, options...)
}

// DeriveRules loads an OpenAPI document from location and compiles rules for
// the request body of operationID.
func DeriveRules(ctx context.Context, location, operationID string, loaderOptions ...openapi.LoaderOption) ([]Rule, error) {
	raw, err := openapi.Load(ctx, location, loaderOptions...)
	if err != nil {
		return nil, err
	}
	specs, err := openapi.Derive(ctx, raw, operationID)
	if err != nil {
		return nil, err
	}
	return validation.Compile(nil, specs)
}
