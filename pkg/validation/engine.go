package validation

import "sort"

// ValidateField runs checks against value in order and returns the message of
// the first failing check. Checks after the first failure are not invoked.
// The boolean is false when every check passes or checks is empty.
func ValidateField(value any, checks []Check) (string, bool) {
	for _, check := range checks {
		if !check.Method(value, check.Args...) {
			return check.Message, true
		}
	}
	return "", false
}

// ValidateForm validates values against rules and returns every failure in a
// single pass. Scalar failures are keyed by the rule field, row failures by
// RowKey(field, index, rowField). Passing fields are absent from the result;
// an empty map means the form is valid.
//
// Row indices follow the order of the collection at call time, so removing a
// row renumbers the keys of every row after it.
func ValidateForm(values Values, rules []Rule) ErrorMap {
	return validate(values, rules, nil)
}

// validate records the key being evaluated in cursor (when non-nil) so a
// recovered panic can be attributed to it.
func validate(values Values, rules []Rule, cursor *string) ErrorMap {
	errs := make(ErrorMap)
	for _, rule := range rules {
		if !rule.IsRows() {
			if cursor != nil {
				*cursor = rule.Field
			}
			if msg, failed := ValidateField(values[rule.Field], rule.Checks); failed {
				errs[rule.Field] = msg
			}
			continue
		}

		rows, ok := Rows(values[rule.Field])
		if !ok {
			continue
		}
		keys := rowCheckKeys(rule.RowChecks)
		for idx, row := range rows {
			// Declared keys missing from the row are validated with a nil
			// value; whether that fails is up to each predicate. Row keys
			// without declared checks never produce errors.
			// TODO: settle whether a missing row key means an optional row
			// field (skip) or an empty one (validate nil, current behaviour).
			for _, key := range keys {
				rowKey := RowKey(rule.Field, idx, key)
				if cursor != nil {
					*cursor = rowKey
				}
				if msg, failed := ValidateField(row[key], rule.RowChecks[key]); failed {
					errs[rowKey] = msg
				}
			}
		}
	}
	return errs
}

// Rows reports whether value is a row collection and returns its rows in
// order. It accepts []Row, []map[string]any and []any (the shape produced by
// JSON and YAML decoders). Elements of a []any that are not maps, null
// included, become empty rows so their declared keys are still validated.
// The returned slice is new; the rows share storage with value and must not
// be modified.
func Rows(value any) ([]Row, bool) {
	switch typed := value.(type) {
	case []Row:
		return typed, true
	case []map[string]any:
		out := make([]Row, len(typed))
		for i, row := range typed {
			out[i] = Row(row)
		}
		return out, true
	case []any:
		out := make([]Row, len(typed))
		for i, item := range typed {
			switch row := item.(type) {
			case Row:
				out[i] = row
			case map[string]any:
				out[i] = Row(row)
			default:
				out[i] = Row{}
			}
		}
		return out, true
	default:
		return nil, false
	}
}

func rowCheckKeys(checks map[string][]Check) []string {
	if len(checks) == 0 {
		return nil
	}
	keys := make([]string, 0, len(checks))
	for key := range checks {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
