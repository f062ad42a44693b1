package formcheck

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formcheck/pkg/orchestrator"
	"github.com/goliatone/go-formcheck/pkg/validation"
)

type validateResponse struct {
	Form   string            `json:"form"`
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors"`
}

func postValidate(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestValidateHandler_ReportsFieldErrors(t *testing.T) {
	t.Parallel()

	h := ValidateHandler()
	rec := postValidate(t, h, "/api/forms/grn/validate", `{
		"values": {
			"grnNumber": "",
			"poNumber": "PO-7",
			"receivedDate": "06-03-2024",
			"rows": [
				{"itemCode": "BOLT-M8", "poQty": "10", "receivedQty": "10"},
				{"itemCode": "NUT-M8", "poQty": "abc", "receivedQty": "4"}
			]
		}
	}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("expected JSON content-type, got %q", ct)
	}
	var payload validateResponse
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := validateResponse{
		Form:  "grn",
		Valid: false,
		Errors: map[string]string{
			"grnNumber":     "GRN number is required",
			"rows[1].poQty": "PO quantity must be a number",
		},
	}
	if diff := cmp.Diff(want, payload); diff != "" {
		t.Fatalf("response mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateHandler_Localised(t *testing.T) {
	t.Parallel()

	rec := postValidate(t, ValidateHandler(), "/api/forms/grn/validate",
		`{"values": {"poNumber": "PO-7", "receivedDate": "06-03-2024"}, "locale": "es"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var payload validateResponse
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := payload.Errors["grnNumber"]; got != "El número de GRN es obligatorio" {
		t.Fatalf("expected spanish message, got %q", got)
	}
}

func TestValidateHandler_StatusCodes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{name: "unknown form", method: http.MethodPost, path: "/api/forms/transfer/validate", body: `{"values": {}}`, want: http.StatusNotFound},
		{name: "malformed json", method: http.MethodPost, path: "/api/forms/grn/validate", body: `{"values":`, want: http.StatusBadRequest},
		{name: "non string length input", method: http.MethodPost, path: "/api/forms/grn/validate", body: `{"values": {"grnNumber": 42}}`, want: http.StatusUnprocessableEntity},
		{name: "wrong method", method: http.MethodGet, path: "/api/forms/grn/validate", want: http.StatusMethodNotAllowed},
		{name: "missing form", method: http.MethodPost, path: "/api/forms", body: `{}`, want: http.StatusNotFound},
	}
	h := ValidateHandler()
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Fatalf("expected status %d, got %d: %s", tc.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestValidateHandler_GuardAndObserver(t *testing.T) {
	t.Parallel()

	var events []Event
	h := ValidateHandler(
		WithGuard(func(r *http.Request) error {
			if r.Header.Get("X-Device") == "" {
				return StatusError{Code: http.StatusUnauthorized}
			}
			return nil
		}),
		WithObserver(func(e Event) { events = append(events, e) }),
	)

	rec := postValidate(t, h, "/api/forms/issue/validate", `{"values": {}}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected guard status 401, got %d", rec.Code)
	}
	if len(events) != 0 {
		t.Fatalf("guarded request should not be observed")
	}

	req := httptest.NewRequest(http.MethodPost, "/api/forms/issue/validate", strings.NewReader(`{"values": {}}`))
	req.Header.Set("X-Device", "scanner-1")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if len(events) != 1 || events[0].FormID != "issue" || events[0].Result.Valid || events[0].Err != nil {
		t.Fatalf("unexpected events: %+v", events)
	}
}

type stubValidator struct {
	forms []string
	err   error
}

func (s stubValidator) Forms() []string { return s.forms }

func (s stubValidator) Validate(_ context.Context, req orchestrator.Request) (orchestrator.Result, error) {
	if s.err != nil {
		return orchestrator.Result{}, s.err
	}
	return orchestrator.Result{FormID: req.FormID, Valid: true}, nil
}

func TestValidateHandler_CustomValidator(t *testing.T) {
	t.Parallel()

	rec := postValidate(t, ValidateHandler(WithValidator(stubValidator{})), "/api/forms/any/validate", `{"values": {}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if body := rec.Body.String(); !strings.Contains(body, `"errors":{}`) {
		t.Fatalf("expected empty errors object, got %s", body)
	}

	ruleErr := &validation.RuleError{Key: "qty", Cause: errors.New("boom")}
	rec = postValidate(t, ValidateHandler(WithValidator(stubValidator{err: ruleErr})), "/api/forms/any/validate", `{"values": {}}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", rec.Code)
	}

	teapot := StatusError{Code: http.StatusTeapot}
	rec = postValidate(t, ValidateHandler(WithValidator(stubValidator{err: teapot})), "/api/forms/any/validate", `{"values": {}}`)
	if rec.Code != http.StatusTeapot {
		t.Fatalf("expected status 418, got %d", rec.Code)
	}
}

func TestListHandler(t *testing.T) {
	t.Parallel()

	h := ListHandler()
	req := httptest.NewRequest(http.MethodGet, "/api/forms", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var payload formsResponse
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []string{"grn", "issue", "purchaseOrder", "requisition", "return"}
	if diff := cmp.Diff(want, payload.Data); diff != "" {
		t.Fatalf("forms mismatch (-want +got):\n%s", diff)
	}

	rec = httptest.NewRecorder()
	ListHandler(WithValidator(stubValidator{})).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/forms", nil))
	if body := strings.TrimSpace(rec.Body.String()); body != `{"data":[]}` {
		t.Fatalf("expected empty data array, got %s", body)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/forms", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rec.Code)
	}
}

func TestValidateHandler_UnknownFormsAreNotObserved(t *testing.T) {
	t.Parallel()

	var observed []string
	h := ValidateHandler(WithObserver(func(e Event) { observed = append(observed, e.FormID) }))

	for _, id := range []string{"scanner-1", "scanner-2", "scanner-3"} {
		rec := postValidate(t, h, "/api/forms/"+id+"/validate", `{"values": {}}`)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("%s: expected status 404, got %d", id, rec.Code)
		}
	}
	if len(observed) != 0 {
		t.Fatalf("unknown forms must not be observed, got %v", observed)
	}

	postValidate(t, h, "/api/forms/issue/validate", `{"values": {}}`)
	if diff := cmp.Diff([]string{"issue"}, observed); diff != "" {
		t.Fatalf("observed forms mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateHandler_WrongValueTypeNamesKey(t *testing.T) {
	t.Parallel()

	rec := postValidate(t, ValidateHandler(), "/api/forms/grn/validate", `{"values": {"grnNumber": 123}}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", rec.Code)
	}
	var payload errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Key != "grnNumber" || payload.Error == "" {
		t.Fatalf("unexpected error body: %+v", payload)
	}
}
