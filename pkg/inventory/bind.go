package inventory

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/goliatone/go-formcheck/pkg/validation"
)

// ErrUnknownForm is returned when a payload is requested for a form id that
// has no typed payload.
var ErrUnknownForm = errors.New("inventory: unknown form")

// Bind decodes a form snapshot into out, converting numeric strings such as
// "10" into the numeric payload fields. Callers bind only snapshots that
// passed validation.
func Bind(values validation.Values, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
		TagName:          "mapstructure",
	})
	if err != nil {
		return fmt.Errorf("inventory: bind: %w", err)
	}
	if err := decoder.Decode(map[string]any(values)); err != nil {
		return fmt.Errorf("inventory: bind: %w", err)
	}
	return nil
}

// NewPayload returns a pointer to the zero payload for formID.
func NewPayload(formID string) (any, error) {
	switch strings.TrimSpace(formID) {
	case FormPurchaseOrder:
		return &PurchaseOrder{}, nil
	case FormGRN:
		return &GRN{}, nil
	case FormIssue:
		return &Issue{}, nil
	case FormReturn:
		return &Return{}, nil
	case FormRequisition:
		return &Requisition{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownForm, formID)
	}
}

// BindForm decodes values into the typed payload registered for formID.
func BindForm(formID string, values validation.Values) (any, error) {
	payload, err := NewPayload(formID)
	if err != nil {
		return nil, err
	}
	if err := Bind(values, payload); err != nil {
		return nil, err
	}
	return payload, nil
}
