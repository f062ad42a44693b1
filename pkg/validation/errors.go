package validation

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownCheck is returned when a CheckSpec names a predicate missing
	// from the registry.
	ErrUnknownCheck = errors.New("validation: unknown check")
	// ErrInvalidRule is returned when a RuleSpec or CheckSpec is structurally
	// invalid (empty field, missing message, bad arguments).
	ErrInvalidRule = errors.New("validation: invalid rule")
	// ErrMalformedRule marks failures raised while evaluating a rule set, such
	// as a predicate applied to a value type it does not accept.
	ErrMalformedRule = errors.New("validation: malformed rule set")
)

// ContractError is the panic value raised by predicates invoked outside their
// contract, for example maxLength on a non-string value.
type ContractError struct {
	Check  string
	Value  any
	Reason string
}

func (e *ContractError) Error() string {
	if e == nil {
		return ErrMalformedRule.Error()
	}
	return fmt.Sprintf("validation: %s: %s (got %T)", e.Check, e.Reason, e.Value)
}

func (e *ContractError) Unwrap() error { return ErrMalformedRule }

func contractViolation(check string, value any, reason string) {
	panic(&ContractError{Check: check, Value: value, Reason: reason})
}

// RuleError reports a rule set that failed during evaluation. Key is the
// error key being validated when the failure happened.
type RuleError struct {
	Key   string
	Cause any
}

func (e *RuleError) Error() string {
	if e == nil {
		return ErrMalformedRule.Error()
	}
	if e.Key == "" {
		return fmt.Sprintf("%s: %v", ErrMalformedRule.Error(), e.Cause)
	}
	return fmt.Sprintf("%s at %q: %v", ErrMalformedRule.Error(), e.Key, e.Cause)
}

func (e *RuleError) Unwrap() []error {
	if e == nil {
		return nil
	}
	out := []error{ErrMalformedRule}
	if err, ok := e.Cause.(error); ok {
		out = append(out, err)
	}
	return out
}
