package orchestrator

import (
	"context"
	"strings"

	"github.com/goliatone/go-formcheck/pkg/validation"
)

// Transformer rewrites a snapshot before it is validated. Implementations
// must not modify the input; they return the values to validate.
type Transformer interface {
	Transform(ctx context.Context, formID string, values validation.Values) (validation.Values, error)
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, formID string, values validation.Values) (validation.Values, error)

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, formID string, values validation.Values) (validation.Values, error) {
	if fn == nil {
		return values, nil
	}
	return fn(ctx, formID, values)
}

// TrimSpace returns a Transformer that trims surrounding whitespace from
// every string value, including row values, so "  " counts as empty.
func TrimSpace() Transformer {
	return TransformerFunc(func(_ context.Context, _ string, values validation.Values) (validation.Values, error) {
		if values == nil {
			return nil, nil
		}
		out := make(validation.Values, len(values))
		for key, value := range values {
			out[key] = trimValue(value)
		}
		return out, nil
	})
}

func trimValue(value any) any {
	switch typed := value.(type) {
	case string:
		return strings.TrimSpace(typed)
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = trimValue(item)
		}
		return out
	case []map[string]any:
		out := make([]map[string]any, len(typed))
		for i, row := range typed {
			out[i] = trimRow(row)
		}
		return out
	case []validation.Row:
		out := make([]validation.Row, len(typed))
		for i, row := range typed {
			out[i] = trimRow(row)
		}
		return out
	case map[string]any:
		return trimRow(typed)
	case validation.Row:
		return validation.Row(trimRow(typed))
	default:
		return value
	}
}

func trimRow(row map[string]any) map[string]any {
	if row == nil {
		return nil
	}
	out := make(map[string]any, len(row))
	for key, value := range row {
		if s, ok := value.(string); ok {
			out[key] = strings.TrimSpace(s)
			continue
		}
		out[key] = value
	}
	return out
}
