package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formcheck/pkg/render"
	"github.com/goliatone/go-formcheck/pkg/validation"
)

func TestInline_Order(t *testing.T) {
	t.Parallel()

	errs := validation.ErrorMap{
		"rows[10].poQty":      "number",
		"rows[2].receivedQty": "number",
		"rows[2].poQty":       "required",
		"poNumber":            "PO number is required",
		"grnNumber":           "GRN number is required",
		"warehouse":           "Warehouse is locked",
		"rows":                "At least one row",
	}

	got := render.Inline(grnRules(), errs)
	want := []render.FieldError{
		{Key: "grnNumber", Field: "grnNumber", Message: "GRN number is required"},
		{Key: "poNumber", Field: "poNumber", Message: "PO number is required"},
		{Key: "rows", Field: "rows", Message: "At least one row"},
		{Key: "rows[2].poQty", Field: "rows", Row: 2, RowField: "poQty", IsRow: true, Message: "required"},
		{Key: "rows[2].receivedQty", Field: "rows", Row: 2, RowField: "receivedQty", IsRow: true, Message: "number"},
		{Key: "rows[10].poQty", Field: "rows", Row: 10, RowField: "poQty", IsRow: true, Message: "number"},
		{Key: "warehouse", Field: "warehouse", Message: "Warehouse is locked"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("inline mismatch (-want +got):\n%s", diff)
	}

	if render.Inline(grnRules(), nil) != nil {
		t.Fatalf("expected nil for empty errors")
	}
}

func TestRowErrors(t *testing.T) {
	t.Parallel()

	errs := validation.ErrorMap{
		"rows[1].poQty":       "number",
		"rows[1].receivedQty": "required",
		"rows[0].poQty":       "required",
		"lines[1].poQty":      "other collection",
	}
	want := map[string]string{"poQty": "number", "receivedQty": "required"}
	if diff := cmp.Diff(want, render.RowErrors(errs, "rows", 1)); diff != "" {
		t.Fatalf("row errors mismatch (-want +got):\n%s", diff)
	}
	if render.RowErrors(errs, "rows", 5) != nil {
		t.Fatalf("expected nil for row without errors")
	}
}
