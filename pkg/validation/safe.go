package validation

// ValidateFormSafe behaves like ValidateForm but converts a panic raised by a
// predicate into a *RuleError instead of propagating it. No partial result is
// returned when the rule set is malformed.
func ValidateFormSafe(values Values, rules []Rule) (errs ErrorMap, err error) {
	var cursor string
	defer func() {
		if recovered := recover(); recovered != nil {
			errs = nil
			err = &RuleError{Key: cursor, Cause: recovered}
		}
	}()
	return validate(values, rules, &cursor), nil
}
