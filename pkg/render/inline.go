package render

import (
	"sort"

	"github.com/goliatone/go-formcheck/pkg/validation"
)

// FieldError is one entry of an error map, resolved for display next to its
// input.
type FieldError struct {
	Key      string `json:"key"`
	Field    string `json:"field"`
	Row      int    `json:"row,omitempty"`
	RowField string `json:"rowField,omitempty"`
	IsRow    bool   `json:"isRow,omitempty"`
	Message  string `json:"message"`
}

// Inline orders errs for display: rules in declaration order, rows in index
// order, row fields in name order. Keys that no rule produces (for example
// merged server errors) follow in key order.
func Inline(rules []validation.Rule, errs validation.ErrorMap) []FieldError {
	if len(errs) == 0 {
		return nil
	}

	out := make([]FieldError, 0, len(errs))
	seen := make(map[string]struct{}, len(errs))
	byField := groupByField(errs)

	for _, rule := range rules {
		keys := byField[rule.Field]
		for _, key := range keys {
			if _, done := seen[key.String()]; done {
				continue
			}
			seen[key.String()] = struct{}{}
			out = append(out, newFieldError(key, errs[key.String()]))
		}
	}

	for _, raw := range errs.Keys() {
		if _, done := seen[raw]; done {
			continue
		}
		out = append(out, newFieldError(validation.ParseKey(raw), errs[raw]))
	}
	return out
}

// RowErrors returns the messages recorded for one row of a collection,
// keyed by row field.
func RowErrors(errs validation.ErrorMap, field string, row int) map[string]string {
	var out map[string]string
	for raw, message := range errs {
		key := validation.ParseKey(raw)
		if !key.IsRow || key.Field != field || key.Row != row {
			continue
		}
		if out == nil {
			out = make(map[string]string)
		}
		out[key.RowField] = message
	}
	return out
}

func groupByField(errs validation.ErrorMap) map[string][]validation.Key {
	grouped := make(map[string][]validation.Key)
	for raw := range errs {
		key := validation.ParseKey(raw)
		grouped[key.Field] = append(grouped[key.Field], key)
	}
	for field := range grouped {
		keys := grouped[field]
		sort.Slice(keys, func(i, j int) bool {
			if keys[i].IsRow != keys[j].IsRow {
				return !keys[i].IsRow
			}
			if keys[i].Row != keys[j].Row {
				return keys[i].Row < keys[j].Row
			}
			return keys[i].RowField < keys[j].RowField
		})
	}
	return grouped
}

func newFieldError(key validation.Key, message string) FieldError {
	return FieldError{
		Key:      key.String(),
		Field:    key.Field,
		Row:      key.Row,
		RowField: key.RowField,
		IsRow:    key.IsRow,
		Message:  message,
	}
}
