package inventory_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formcheck/pkg/i18n"
	"github.com/goliatone/go-formcheck/pkg/inventory"
	"github.com/goliatone/go-formcheck/pkg/validation"
)

func TestFormIDs(t *testing.T) {
	t.Parallel()

	want := []string{"grn", "issue", "purchaseOrder", "requisition", "return"}
	if diff := cmp.Diff(want, inventory.FormIDs()); diff != "" {
		t.Fatalf("form ids mismatch (-want +got):\n%s", diff)
	}
	for _, id := range want {
		form, ok := inventory.Store().Form(id)
		if !ok || len(form.Rules) == 0 || form.Endpoint == "" {
			t.Fatalf("form %q incomplete: %+v", id, form)
		}
	}
}

func TestGRN_EndToEnd(t *testing.T) {
	t.Parallel()

	form, _ := inventory.Store().Form(inventory.FormGRN)
	values := validation.Values{
		"grnNumber":    "",
		"poNumber":     "PO-1001",
		"receivedDate": "05-03-2024",
		"rows": []any{
			map[string]any{"itemCode": "BOLT-M8", "poQty": "10", "receivedQty": "10"},
			map[string]any{"itemCode": "NUT-M8", "poQty": "abc", "receivedQty": "-1"},
		},
	}

	got := form.Validate(values)
	want := validation.ErrorMap{
		"grnNumber":           "GRN number is required",
		"rows[1].poQty":       "PO quantity must be a number",
		"rows[1].receivedQty": "Quantity cannot be negative",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}

	localized := i18n.Localize(form.Rules, "es", inventory.Catalog())
	got = validation.ValidateForm(values, localized)
	if msg := got["grnNumber"]; msg != "El número de GRN es obligatorio" {
		t.Fatalf("unexpected localized message %q", msg)
	}
}

func TestForms_ValidSnapshots(t *testing.T) {
	t.Parallel()

	snapshots := map[string]validation.Values{
		inventory.FormPurchaseOrder: {
			"poNumber": "PO-1001", "supplier": "Acme Fasteners", "poDate": "01-03-2024",
			"rows": []any{map[string]any{"itemCode": "BOLT-M8", "uom": "pcs", "quantity": "100", "rate": "0.25"}},
		},
		inventory.FormGRN: {
			"grnNumber": "GRN-7", "poNumber": "PO-1001", "receivedDate": "05-03-2024",
			"rows": []any{map[string]any{"itemCode": "BOLT-M8", "poQty": 100, "receivedQty": 95}},
		},
		inventory.FormIssue: {
			"issueNumber": "ISS-3", "issueDate": "06-03-2024", "department": "Maintenance",
			"rows": []any{map[string]any{"itemCode": "BOLT-M8", "issueQty": "20"}},
		},
		inventory.FormReturn: {
			"returnNumber": "RET-1", "returnDate": "07-03-2024", "reason": "Damaged",
			"rows": []any{map[string]any{"itemCode": "BOLT-M8", "returnQty": "2"}},
		},
		inventory.FormRequisition: {
			"requisitionNumber": "REQ-9", "requiredBy": "29-02-2024", "priority": "urgent",
			"rows": []any{map[string]any{"itemCode": "BOLT-M8", "requestedQty": "50"}},
		},
	}

	for id, values := range snapshots {
		form, ok := inventory.Store().Form(id)
		if !ok {
			t.Fatalf("form %q missing", id)
		}
		if errs := form.Validate(values); !errs.Empty() {
			t.Fatalf("form %q: unexpected errors %v", id, errs)
		}
	}
}

func TestRequisition_StrictDate(t *testing.T) {
	t.Parallel()

	form, _ := inventory.Store().Form(inventory.FormRequisition)
	got := form.Validate(validation.Values{
		"requisitionNumber": "REQ-9",
		"requiredBy":        "31-02-2024",
		"priority":          "someday",
		"rows":              []any{},
	})
	want := validation.ErrorMap{
		"requiredBy": "Required-by date must be a valid DD-MM-YYYY date",
		"priority":   "Priority must be low, normal or urgent",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestCatalog_CoversEveryMessageKey(t *testing.T) {
	t.Parallel()

	catalog := inventory.Catalog()
	for _, id := range inventory.FormIDs() {
		form, _ := inventory.Store().Form(id)
		for _, rule := range form.Rules {
			checks := append([]validation.Check(nil), rule.Checks...)
			for _, rowChecks := range rule.RowChecks {
				checks = append(checks, rowChecks...)
			}
			for _, check := range checks {
				if check.MessageKey == "" {
					t.Fatalf("form %q field %q: check %q has no message key", id, rule.Field, check.Name)
				}
				for _, locale := range []string{"en", "es"} {
					if _, err := catalog.Translate(locale, check.MessageKey); err != nil {
						t.Fatalf("form %q: %v", id, err)
					}
				}
			}
		}
	}
}
