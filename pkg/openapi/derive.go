package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formcheck/pkg/validation"
)

var (
	// ErrOperationNotFound is returned when the document has no operation
	// with the requested id.
	ErrOperationNotFound = errors.New("openapi: operation not found")
	// ErrNoRequestSchema is returned when the operation has no object request
	// body to derive rules from.
	ErrNoRequestSchema = errors.New("openapi: operation has no object request body")
)

// LabelExtension overrides the label used in generated messages.
const LabelExtension = "x-formcheck-label"

// Operation summarises an operation of a document.
type Operation struct {
	ID      string `json:"id"`
	Method  string `json:"method"`
	Path    string `json:"path"`
	Summary string `json:"summary,omitempty"`
}

// Option customises derivation.
type Option func(*deriveOptions)

type deriveOptions struct {
	externalRefs bool
}

// WithExternalRefs allows the document to reference external files.
func WithExternalRefs(enabled bool) Option {
	return func(o *deriveOptions) {
		o.externalRefs = enabled
	}
}

// Operations lists the operations of raw sorted by id. Operations without an
// operationId are named "<method>:<path>".
func Operations(ctx context.Context, raw []byte, opts ...Option) ([]Operation, error) {
	doc, err := loadDocument(ctx, raw, opts)
	if err != nil {
		return nil, err
	}

	var out []Operation
	walkOperations(doc, func(id, method, path string, op *openapi3.Operation) bool {
		out = append(out, Operation{ID: id, Method: method, Path: path, Summary: op.Summary})
		return true
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Derive builds rule specs for the request body of operationID. Properties
// are visited in name order; arrays of objects become row rules.
func Derive(ctx context.Context, raw []byte, operationID string, opts ...Option) ([]validation.RuleSpec, error) {
	operationID = strings.TrimSpace(operationID)
	doc, err := loadDocument(ctx, raw, opts)
	if err != nil {
		return nil, err
	}

	var found *openapi3.Operation
	walkOperations(doc, func(id, _, _ string, op *openapi3.Operation) bool {
		if id == operationID {
			found = op
			return false
		}
		return true
	})
	if found == nil {
		return nil, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
	}

	schema := requestSchema(found)
	if schema == nil || len(schema.Properties) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoRequestSchema, operationID)
	}
	return deriveRules(operationID, schema), nil
}

func loadDocument(ctx context.Context, raw []byte, opts []Option) (*openapi3.T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}
	options := deriveOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: options.externalRefs,
	}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	return doc, nil
}

func walkOperations(doc *openapi3.T, visit func(id, method, path string, op *openapi3.Operation) bool) {
	if doc == nil || doc.Paths == nil {
		return
	}
	paths := doc.Paths.Map()
	keys := make([]string, 0, len(paths))
	for path := range paths {
		keys = append(keys, path)
	}
	sort.Strings(keys)

	for _, path := range keys {
		item := paths[path]
		if item == nil {
			continue
		}
		operations := item.Operations()
		methods := make([]string, 0, len(operations))
		for method := range operations {
			methods = append(methods, method)
		}
		sort.Strings(methods)

		for _, method := range methods {
			op := operations[method]
			if op == nil {
				continue
			}
			id := strings.TrimSpace(op.OperationID)
			if id == "" {
				id = strings.ToLower(method) + ":" + path
			}
			if !visit(id, strings.ToUpper(method), path, op) {
				return
			}
		}
	}
}

func requestSchema(op *openapi3.Operation) *openapi3.Schema {
	if op == nil || op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil
	}
	content := op.RequestBody.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt != nil {
			return schemaValue(mt.Schema)
		}
	}
	mediaTypes := make([]string, 0, len(content))
	for name := range content {
		mediaTypes = append(mediaTypes, name)
	}
	sort.Strings(mediaTypes)
	for _, name := range mediaTypes {
		if mt := content[name]; mt != nil {
			return schemaValue(mt.Schema)
		}
	}
	return nil
}

func deriveRules(operationID string, schema *openapi3.Schema) []validation.RuleSpec {
	required := stringSet(schema.Required)
	specs := make([]validation.RuleSpec, 0, len(schema.Properties))

	for _, name := range sortedPropertyNames(schema.Properties) {
		prop := schemaValue(schema.Properties[name])
		if prop == nil {
			continue
		}

		if items := rowItems(prop); items != nil {
			rowRequired := stringSet(items.Required)
			rows := make(map[string][]validation.CheckSpec)
			for _, rowField := range sortedPropertyNames(items.Properties) {
				rowProp := schemaValue(items.Properties[rowField])
				if rowProp == nil {
					continue
				}
				keyPrefix := operationID + "." + name + "." + rowField
				_, isRequired := rowRequired[rowField]
				if checks := deriveChecks(keyPrefix, label(rowField, rowProp), rowProp, isRequired); len(checks) > 0 {
					rows[rowField] = checks
				}
			}
			if len(rows) > 0 {
				specs = append(specs, validation.RuleSpec{
					Field: name,
					Kind:  validation.RuleKindRows,
					Rows:  rows,
				})
			}
			continue
		}

		_, isRequired := required[name]
		checks := deriveChecks(operationID+"."+name, label(name, prop), prop, isRequired)
		if len(checks) == 0 {
			continue
		}
		specs = append(specs, validation.RuleSpec{
			Field:  name,
			Kind:   validation.RuleKindScalar,
			Checks: checks,
		})
	}
	return specs
}

func deriveChecks(keyPrefix, fieldLabel string, s *openapi3.Schema, required bool) []validation.CheckSpec {
	var checks []validation.CheckSpec
	add := func(name, message string, args ...any) {
		check := validation.CheckSpec{
			Name:       name,
			Message:    message,
			MessageKey: keyPrefix + "." + name,
			Optional:   !required && name != validation.CheckRequired,
		}
		if len(args) > 0 {
			check.Args = args
		}
		checks = append(checks, check)
	}

	if required {
		add(validation.CheckRequired, fieldLabel+" is required")
	}

	numeric := hasType(s, "number") || hasType(s, "integer")
	if numeric {
		add(validation.CheckIsNumber, fieldLabel+" must be a number")
	}

	textual := !numeric && (hasType(s, "string") || s.Type == nil)
	if textual && s.MinLength > 0 {
		add(validation.CheckMinLength, fmt.Sprintf("%s must be at least %d characters", fieldLabel, s.MinLength), int(s.MinLength))
	}
	if textual && s.MaxLength != nil {
		add(validation.CheckMaxLength, fmt.Sprintf("%s must be at most %d characters", fieldLabel, *s.MaxLength), int(*s.MaxLength))
	}
	if pattern := strings.TrimSpace(s.Pattern); pattern != "" {
		if pattern == validation.DatePattern {
			add(validation.CheckValidateDate, fieldLabel+" must use DD-MM-YYYY")
		} else {
			add(validation.CheckPattern, fieldLabel+" has an invalid format", pattern)
		}
	}

	if s.Min != nil {
		add(validation.CheckMin, fieldLabel+" must be at least "+formatNumber(*s.Min), *s.Min)
	}
	if s.Max != nil {
		add(validation.CheckMax, fieldLabel+" must be at most "+formatNumber(*s.Max), *s.Max)
	}

	if len(s.Enum) > 0 {
		options := make([]string, 0, len(s.Enum))
		args := make([]any, 0, len(s.Enum))
		for _, value := range s.Enum {
			if value == nil {
				continue
			}
			options = append(options, fmt.Sprint(value))
			args = append(args, value)
		}
		if len(args) > 0 {
			add(validation.CheckOneOf, fieldLabel+" must be one of "+strings.Join(options, ", "), args...)
		}
	}
	return checks
}

func rowItems(s *openapi3.Schema) *openapi3.Schema {
	if !hasType(s, "array") || s.Items == nil {
		return nil
	}
	items := schemaValue(s.Items)
	if items == nil || len(items.Properties) == 0 {
		return nil
	}
	return items
}

func schemaValue(ref *openapi3.SchemaRef) *openapi3.Schema {
	if ref == nil {
		return nil
	}
	return ref.Value
}

func hasType(s *openapi3.Schema, want string) bool {
	if s == nil || s.Type == nil {
		return false
	}
	for _, typ := range s.Type.Slice() {
		if typ == want {
			return true
		}
	}
	return false
}

func sortedPropertyNames(props openapi3.Schemas) []string {
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func stringSet(values []string) map[string]struct{} {
	out := make(map[string]struct{}, len(values))
	for _, value := range values {
		out[value] = struct{}{}
	}
	return out
}

func label(name string, s *openapi3.Schema) string {
	if s != nil {
		if custom, ok := s.Extensions[LabelExtension].(string); ok && strings.TrimSpace(custom) != "" {
			return strings.TrimSpace(custom)
		}
		if title := strings.TrimSpace(s.Title); title != "" {
			return title
		}
	}
	return humanize(name)
}

// humanize turns "poQty" or "po_qty" into "Po qty".
func humanize(name string) string {
	var words []string
	var current []rune
	flush := func() {
		if len(current) > 0 {
			words = append(words, strings.ToLower(string(current)))
			current = current[:0]
		}
	}
	runes := []rune(strings.TrimSpace(name))
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || r == ' ' || r == '.':
			flush()
		case unicode.IsUpper(r) && i > 0 && !unicode.IsUpper(runes[i-1]):
			flush()
			current = append(current, r)
		default:
			current = append(current, r)
		}
	}
	flush()
	if len(words) == 0 {
		return name
	}
	first := []rune(words[0])
	first[0] = unicode.ToUpper(first[0])
	words[0] = string(first)
	return strings.Join(words, " ")
}

func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
