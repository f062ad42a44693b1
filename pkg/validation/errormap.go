package validation

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrorMap maps error keys to the first failing message for that key.
type ErrorMap map[string]string

// Has reports whether key failed validation.
func (m ErrorMap) Has(key string) bool {
	_, ok := m[key]
	return ok
}

// Get returns the message recorded for key.
func (m ErrorMap) Get(key string) (string, bool) {
	msg, ok := m[key]
	return msg, ok
}

// Empty reports whether no failures were recorded.
func (m ErrorMap) Empty() bool {
	return len(m) == 0
}

// Keys returns the error keys in sorted order.
func (m ErrorMap) Keys() []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Fields returns the distinct form fields that carry at least one error,
// sorted. Row keys contribute their collection field ("rows[1].qty" yields
// "rows").
func (m ErrorMap) Fields() []string {
	if len(m) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(m))
	var fields []string
	for key := range m {
		field := ParseKey(key).Field
		if _, ok := seen[field]; ok {
			continue
		}
		seen[field] = struct{}{}
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// Merge returns a new map holding the entries of m plus the entries of other
// whose keys are not already present in m.
func (m ErrorMap) Merge(other ErrorMap) ErrorMap {
	out := make(ErrorMap, len(m)+len(other))
	for key, msg := range m {
		out[key] = msg
	}
	for key, msg := range other {
		if _, exists := out[key]; exists {
			continue
		}
		out[key] = msg
	}
	return out
}

// Error implements error so callers can surface a failed form as an error
// value. Keys are listed in sorted order.
func (m ErrorMap) Error() string {
	if len(m) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(m))
	for _, key := range m.Keys() {
		parts = append(parts, fmt.Sprintf("%s: %s", key, m[key]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// RowKey builds the composite error key for a row field.
func RowKey(field string, index int, rowField string) string {
	return field + "[" + strconv.Itoa(index) + "]." + rowField
}

// Key is the parsed form of an error key.
type Key struct {
	Field    string
	Row      int
	RowField string
	IsRow    bool
}

// String renders the key back into its ErrorMap form.
func (k Key) String() string {
	if !k.IsRow {
		return k.Field
	}
	return RowKey(k.Field, k.Row, k.RowField)
}

// ParseKey splits a composite row key into its parts. Keys that do not follow
// the `field[index].rowField` shape are returned as scalar keys.
func ParseKey(key string) Key {
	open := strings.IndexByte(key, '[')
	if open <= 0 {
		return Key{Field: key}
	}
	closing := strings.Index(key[open:], "].")
	if closing < 0 {
		return Key{Field: key}
	}
	closing += open

	index, err := strconv.Atoi(key[open+1 : closing])
	if err != nil || index < 0 {
		return Key{Field: key}
	}
	rowField := key[closing+2:]
	if rowField == "" {
		return Key{Field: key}
	}
	return Key{
		Field:    key[:open],
		Row:      index,
		RowField: rowField,
		IsRow:    true,
	}
}
