package render

import (
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-formcheck/pkg/validation"
)

// ErrorMapping splits a backend error payload into field-level messages keyed
// by validation error keys (such as "rows[1].poQty") and form-level messages.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// ErrorMap keeps the first message per key so the mapping can be merged with
// client-side validation results.
func (m ErrorMapping) ErrorMap() validation.ErrorMap {
	out := make(validation.ErrorMap, len(m.Fields))
	for key, messages := range m.Fields {
		if len(messages) == 0 {
			continue
		}
		out[key] = messages[0]
	}
	return out
}

// Empty reports whether the mapping carries no messages at all.
func (m ErrorMapping) Empty() bool {
	return len(m.Fields) == 0 && len(m.Form) == 0
}

// MergeFormErrors concatenates and normalises multiple form-level error
// slices, trimming whitespace and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapErrorPayload normalises backend error payloads (JSON pointers such as
// "/rows/1/poQty", dotted paths such as "body.rows.1.poQty", or bracketed
// keys) into the keys produced by validation.ValidateForm for rules. Unknown
// paths are treated as form-level errors so messages are not lost.
func MapErrorPayload(rules []validation.Rule, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{
		Fields: make(map[string][]string),
	}
	if len(payload) == 0 {
		mapping.Fields = nil
		return mapping
	}

	index := indexRules(rules)

	for _, rawPath := range sortedPayloadKeys(payload) {
		normalizedMessages := normalizeMessages(payload[rawPath])
		if len(normalizedMessages) == 0 {
			continue
		}

		mapped, formLevel := mapErrorPath(rawPath, index)
		if formLevel || mapped == "" {
			mapping.Form = append(mapping.Form, normalizedMessages...)
			continue
		}
		mapping.Fields[mapped] = normalizeMessages(append(mapping.Fields[mapped], normalizedMessages...))
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

type ruleIndex struct {
	scalars map[string]struct{}
	rows    map[string]map[string]struct{}
}

func indexRules(rules []validation.Rule) ruleIndex {
	index := ruleIndex{
		scalars: make(map[string]struct{}),
		rows:    make(map[string]map[string]struct{}),
	}
	for _, rule := range rules {
		field := strings.TrimSpace(rule.Field)
		if field == "" {
			continue
		}
		if !rule.IsRows() {
			index.scalars[field] = struct{}{}
			continue
		}
		keys, ok := index.rows[field]
		if !ok {
			keys = make(map[string]struct{}, len(rule.RowChecks))
			index.rows[field] = keys
		}
		for key := range rule.RowChecks {
			keys[key] = struct{}{}
		}
	}
	return index
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

func mapErrorPath(raw string, index ruleIndex) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if isFormLevelKey(trimmed) {
		return "", true
	}

	segments := parsePathSegments(trimmed)
	if len(segments) == 0 {
		return "", true
	}

	best, bestDepth := "", 0
	for _, variant := range buildSegmentVariants(segments) {
		if key, depth := index.resolve(variant); depth > bestDepth {
			best, bestDepth = key, depth
		}
	}

	if best != "" {
		return best, false
	}
	return "", true
}

// resolve maps segments onto a rule key. Depth ranks matches: 1 for a field,
// 2 for a row of a collection, 3 for a declared row field.
func (idx ruleIndex) resolve(segments []string) (string, int) {
	if len(segments) == 0 {
		return "", 0
	}
	field := segments[0]
	if _, ok := idx.scalars[field]; ok {
		return field, 1
	}
	rowKeys, ok := idx.rows[field]
	if !ok {
		return "", 0
	}
	if len(segments) < 3 {
		return field, 1
	}
	row, err := strconv.Atoi(segments[1])
	if err != nil || row < 0 {
		return field, 1
	}
	if _, declared := rowKeys[segments[2]]; !declared {
		return field, 2
	}
	return validation.RowKey(field, row, segments[2]), 3
}

func parsePathSegments(path string) []string {
	if path == "" {
		return nil
	}

	clean := strings.TrimSpace(path)
	clean = strings.TrimPrefix(clean, "#/")
	clean = strings.TrimPrefix(clean, "$/")
	clean = strings.TrimPrefix(clean, "$.")
	for strings.HasPrefix(clean, "#") || strings.HasPrefix(clean, "/") || strings.HasPrefix(clean, ".") || strings.HasPrefix(clean, "$") {
		clean = strings.TrimPrefix(clean, "#")
		clean = strings.TrimPrefix(clean, "/")
		clean = strings.TrimPrefix(clean, ".")
		clean = strings.TrimPrefix(clean, "$")
	}

	replacer := strings.NewReplacer("[", ".", "]", "", "//", "/")
	clean = replacer.Replace(clean)
	clean = strings.Trim(clean, "./")
	if clean == "" {
		return nil
	}

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})

	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		out = append(out, segment)
	}
	return out
}

func buildSegmentVariants(segments []string) [][]string {
	variants := [][]string{segments}
	if trimmed := dropWrapperSegments(segments); len(trimmed) > 0 && len(trimmed) != len(segments) {
		variants = append(variants, trimmed)
	}
	return variants
}

func dropWrapperSegments(segments []string) []string {
	wrappers := map[string]struct{}{
		"body":       {},
		"request":    {},
		"payload":    {},
		"data":       {},
		"attributes": {},
		"values":     {},
	}

	out := segments
	for len(out) > 0 {
		if _, ok := wrappers[strings.ToLower(out[0])]; ok {
			out = out[1:]
			continue
		}
		break
	}
	return out
}

func sortedPayloadKeys(payload map[string][]string) []string {
	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "base", "__all__", "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}
