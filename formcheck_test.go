package formcheck_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formcheck"
	"github.com/goliatone/go-formcheck/pkg/openapi"
	"github.com/goliatone/go-formcheck/pkg/validation"
)

func TestValidateForm_GRNScenario(t *testing.T) {
	t.Parallel()

	rules := []formcheck.Rule{
		validation.ScalarRule("grnNumber", validation.RequiredCheck("GRN number is required")),
		validation.RowRule("rows", map[string][]validation.Check{
			"poQty": {
				validation.RequiredCheck("PO quantity is required"),
				validation.NumberCheck("PO quantity must be a number"),
			},
		}),
	}
	got := formcheck.ValidateForm(formcheck.Values{
		"grnNumber": "",
		"rows":      []any{map[string]any{"poQty": "10"}, map[string]any{"poQty": "abc"}},
	}, rules)
	want := formcheck.ErrorMap{
		"grnNumber":     "GRN number is required",
		"rows[1].poQty": "PO quantity must be a number",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_DefaultForms(t *testing.T) {
	t.Parallel()

	result, err := formcheck.Validate(context.Background(), formcheck.Request{
		FormID: "issue",
		Values: formcheck.Values{
			"issueNumber": "ISS-1",
			"issueDate":   "06-03-2024",
			"department":  "Maintenance",
			"rows":        []any{map[string]any{"itemCode": "BOLT-M8", "issueQty": "2"}},
		},
	})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !result.Valid {
		t.Fatalf("expected valid result, got %v", result.Errors)
	}
}

func TestDeriveRules(t *testing.T) {
	t.Parallel()

	contract := `
openapi: 3.0.3
info: {title: Inventory, version: "1"}
paths:
  /api/returns:
    post:
      operationId: createReturn
      requestBody:
        content:
          application/json:
            schema:
              type: object
              required: [returnNumber]
              properties:
                returnNumber: {type: string, maxLength: 12}
      responses:
        '201': {description: created}
`
	fsys := fstest.MapFS{"inventory.yaml": {Data: []byte(contract)}}
	rules, err := formcheck.DeriveRules(context.Background(), "inventory.yaml", "createReturn", openapi.WithFileSystem(fsys))
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	got := formcheck.ValidateForm(formcheck.Values{"returnNumber": "RET-0000000001"}, rules)
	if got["returnNumber"] != "Return number must be at most 12 characters" {
		t.Fatalf("unexpected errors %v", got)
	}
}
