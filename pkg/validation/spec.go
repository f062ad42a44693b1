package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// CheckSpec is the serialisable form of a Check.
type CheckSpec struct {
	Name       string `json:"name" yaml:"name"`
	Message    string `json:"message" yaml:"message"`
	MessageKey string `json:"messageKey,omitempty" yaml:"messageKey,omitempty"`
	Args       []any  `json:"args,omitempty" yaml:"args,omitempty"`
	// Optional skips the check when the value is absent (nil or "").
	Optional bool `json:"optional,omitempty" yaml:"optional,omitempty"`
}

// RuleSpec is the serialisable form of a Rule. Kind may be omitted: specs
// with Rows compile to row rules, everything else to scalar rules.
type RuleSpec struct {
	Field  string                 `json:"field" yaml:"field"`
	Kind   RuleKind               `json:"kind,omitempty" yaml:"kind,omitempty"`
	Checks []CheckSpec            `json:"checks,omitempty" yaml:"checks,omitempty"`
	Rows   map[string][]CheckSpec `json:"rows,omitempty" yaml:"rows,omitempty"`
}

// Compile resolves specs against reg, preserving their order. A nil registry
// falls back to DefaultRegistry.
func Compile(reg *Registry, specs []RuleSpec) ([]Rule, error) {
	if reg == nil {
		reg = DefaultRegistry()
	}
	rules := make([]Rule, 0, len(specs))
	for idx, spec := range specs {
		rule, err := CompileRule(reg, spec)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", idx, err)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// CompileRule resolves a single RuleSpec.
func CompileRule(reg *Registry, spec RuleSpec) (Rule, error) {
	if reg == nil {
		reg = DefaultRegistry()
	}
	field := strings.TrimSpace(spec.Field)
	if field == "" {
		return Rule{}, fmt.Errorf("%w: field is required", ErrInvalidRule)
	}

	kind := spec.Kind
	if kind == "" {
		kind = RuleKindScalar
		if len(spec.Rows) > 0 {
			kind = RuleKindRows
		}
	}

	switch kind {
	case RuleKindScalar:
		if len(spec.Rows) > 0 {
			return Rule{}, fmt.Errorf("%w: scalar field %q declares row checks", ErrInvalidRule, field)
		}
		checks, err := compileChecks(reg, spec.Checks)
		if err != nil {
			return Rule{}, fmt.Errorf("field %q: %w", field, err)
		}
		return ScalarRule(field, checks...), nil
	case RuleKindRows:
		if len(spec.Checks) > 0 {
			return Rule{}, fmt.Errorf("%w: row field %q declares scalar checks", ErrInvalidRule, field)
		}
		perRow := make(map[string][]Check, len(spec.Rows))
		for rowField, specs := range spec.Rows {
			name := strings.TrimSpace(rowField)
			if name == "" {
				return Rule{}, fmt.Errorf("%w: row field %q declares an empty column", ErrInvalidRule, field)
			}
			checks, err := compileChecks(reg, specs)
			if err != nil {
				return Rule{}, fmt.Errorf("field %q: %w", RowKey(field, 0, name), err)
			}
			perRow[name] = checks
		}
		return RowRule(field, perRow), nil
	default:
		return Rule{}, fmt.Errorf("%w: field %q has unknown kind %q", ErrInvalidRule, field, kind)
	}
}

func compileChecks(reg *Registry, specs []CheckSpec) ([]Check, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	checks := make([]Check, 0, len(specs))
	for _, spec := range specs {
		check, err := CompileCheck(reg, spec)
		if err != nil {
			return nil, err
		}
		checks = append(checks, check)
	}
	return checks, nil
}

// CompileCheck resolves a CheckSpec into a Check, normalising the arguments
// of the built-in checks so predicates receive the types they expect.
func CompileCheck(reg *Registry, spec CheckSpec) (Check, error) {
	if reg == nil {
		reg = DefaultRegistry()
	}
	name := strings.TrimSpace(spec.Name)
	if name == "" {
		return Check{}, fmt.Errorf("%w: check name is required", ErrInvalidRule)
	}
	predicate, ok := reg.Lookup(name)
	if !ok {
		return Check{}, fmt.Errorf("%w: %q", ErrUnknownCheck, name)
	}
	if strings.TrimSpace(spec.Message) == "" {
		return Check{}, fmt.Errorf("%w: check %q requires a message", ErrInvalidRule, name)
	}
	args, err := normalizeArgs(name, spec.Args)
	if err != nil {
		return Check{}, err
	}
	check := Check{
		Name:       name,
		Method:     predicate,
		Message:    spec.Message,
		MessageKey: strings.TrimSpace(spec.MessageKey),
		Args:       args,
	}
	if spec.Optional {
		check = check.Optional()
	}
	return check, nil
}

func normalizeArgs(name string, args []any) ([]any, error) {
	switch name {
	case CheckMaxLength, CheckMinLength:
		if len(args) != 1 {
			return nil, fmt.Errorf("%w: %s expects one length argument", ErrInvalidRule, name)
		}
		n, ok := toInt(args[0])
		if !ok || n < 0 {
			return nil, fmt.Errorf("%w: %s length must be a non-negative integer, got %v", ErrInvalidRule, name, args[0])
		}
		return []any{n}, nil
	case CheckMin, CheckMax:
		if len(args) != 1 {
			return nil, fmt.Errorf("%w: %s expects one bound argument", ErrInvalidRule, name)
		}
		bound, ok := toFloat(args[0])
		if !ok {
			return nil, fmt.Errorf("%w: %s bound must be numeric, got %v", ErrInvalidRule, name, args[0])
		}
		return []any{bound}, nil
	case CheckPattern:
		if len(args) != 1 {
			return nil, fmt.Errorf("%w: pattern expects one expression argument", ErrInvalidRule)
		}
		expr, ok := args[0].(string)
		if !ok {
			return nil, fmt.Errorf("%w: pattern expression must be a string", ErrInvalidRule)
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("%w: pattern %q: %v", ErrInvalidRule, expr, err)
		}
		return []any{re}, nil
	case CheckOneOf:
		if len(args) == 0 {
			return nil, fmt.Errorf("%w: oneOf expects at least one option", ErrInvalidRule)
		}
	}
	if len(args) == 0 {
		return nil, nil
	}
	return append([]any(nil), args...), nil
}
