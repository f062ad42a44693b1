package validation

// Values is the form snapshot handed to the engine. Entries are scalars
// (string, number, bool, nil) or row collections (see Rows).
type Values map[string]any

// Row is a single entry of a row collection, mapping row field names to
// scalar values.
type Row map[string]any

// Predicate reports whether value is valid. Args carries the check's fixed
// arguments (for example the limit of a maxLength check).
type Predicate func(value any, args ...any) bool

// Check is one entry of an ordered validation list.
type Check struct {
	// Name identifies the predicate (for example "required"); informational
	// for checks built in code, required for checks compiled from specs.
	Name    string
	Method  Predicate
	Message string
	// MessageKey is an optional translation key for Message.
	MessageKey string
	Args       []any
}

// RuleKind discriminates the Rule variants.
type RuleKind string

const (
	RuleKindScalar RuleKind = "scalar"
	RuleKindRows   RuleKind = "rows"
)

// Rule binds checks to a form field. Scalar rules use Checks; row rules use
// RowChecks, keyed by the row field name.
type Rule struct {
	Field     string
	Kind      RuleKind
	Checks    []Check
	RowChecks map[string][]Check
}

// ScalarRule builds a rule validating values[field] with checks in order.
func ScalarRule(field string, checks ...Check) Rule {
	return Rule{
		Field:  field,
		Kind:   RuleKindScalar,
		Checks: checks,
	}
}

// RowRule builds a rule validating every row of the values[field]
// collection with the per-row-field checks.
func RowRule(field string, perRow map[string][]Check) Rule {
	return Rule{
		Field:     field,
		Kind:      RuleKindRows,
		RowChecks: perRow,
	}
}

// IsRows reports whether the rule targets a row collection.
func (r Rule) IsRows() bool {
	return r.Kind == RuleKindRows
}
