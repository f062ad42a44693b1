// Package validation implements the form validation engine shared by every
// inventory screen (purchase orders, goods receipt notes, issues, returns and
// requisitions).
//
// A screen hands the engine an immutable snapshot of its current values
// (Values) plus a declarative rule set ([]Rule) and receives an ErrorMap keyed
// by field name for scalar fields and by the composite key
// `field[index].rowField` for row collections. Each key carries the message of
// the first check that failed; later checks for that key are never evaluated.
// A key missing from the map means the field passed.
//
// Rules are a tagged variant: ScalarRule validates a single value with an
// ordered list of checks, RowRule validates every row of a collection with a
// per-row-field map of checks. The discrimination is explicit on the rule, not
// inferred from the shape of the submitted value.
//
// Checks pair a Predicate with a message and a fixed argument list. The
// standard predicates (Required, MaxLength, IsNumber, ValidateDate) are
// available as functions and under their canonical names in a Registry, so
// rule sets can be declared in JSON or YAML (see CheckSpec, RuleSpec and
// Compile) and compiled at load time.
//
// The engine performs no I/O, keeps no state between calls and never mutates
// its inputs, so it can be called concurrently on independent snapshots.
// Validation failures are returned as data. A predicate that panics signals a
// malformed rule set and propagates; ValidateFormSafe converts such panics into
// a *RuleError for callers that must not crash.
package validation
