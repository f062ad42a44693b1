package i18n_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formcheck/pkg/i18n"
	"github.com/goliatone/go-formcheck/pkg/validation"
)

func grnRules() []validation.Rule {
	return []validation.Rule{
		validation.ScalarRule("grnNumber",
			validation.RequiredCheck("GRN number is required").WithMessageKey("grn.grnNumber.required"),
			validation.MaxLengthCheck(20, "Too long"),
		),
		validation.RowRule("rows", map[string][]validation.Check{
			"poQty": {
				validation.RequiredCheck("PO quantity is required").WithMessageKey("grn.poQty.required"),
				validation.NumberCheck("PO quantity must be a number").WithMessageKey("grn.poQty.number"),
			},
		}),
	}
}

func TestLocalize(t *testing.T) {
	t.Parallel()

	catalog := i18n.NewCatalog("en", map[string]map[string]string{
		"es": {
			"grn.grnNumber.required": "El número de GRN es obligatorio",
			"grn.poQty.number":       "La cantidad debe ser numérica",
		},
	})

	rules := grnRules()
	localized := i18n.Localize(rules, "es", catalog)

	got := validation.ValidateForm(validation.Values{
		"grnNumber": "",
		"rows":      []any{map[string]any{"poQty": "10"}, map[string]any{"poQty": "abc"}},
	}, localized)
	want := validation.ErrorMap{
		"grnNumber":     "El número de GRN es obligatorio",
		"rows[1].poQty": "La cantidad debe ser numérica",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("localized errors mismatch (-want +got):\n%s", diff)
	}

	if rules[0].Checks[0].Message != "GRN number is required" {
		t.Fatalf("input rules were mutated: %q", rules[0].Checks[0].Message)
	}
	if rules[1].RowChecks["poQty"][1].Message != "PO quantity must be a number" {
		t.Fatalf("input row rules were mutated")
	}
	if localized[1].RowChecks["poQty"][0].Message != "PO quantity is required" {
		t.Fatalf("missing translation should keep the original message")
	}
}

func TestLocalize_NoTranslator(t *testing.T) {
	t.Parallel()

	var reported []string
	onMissing := func(locale, key, fallback string, err error) string {
		if !errors.Is(err, i18n.ErrMissingTranslator) {
			t.Errorf("unexpected error %v", err)
		}
		reported = append(reported, key)
		return "[" + key + "]"
	}

	localized := i18n.Localize(grnRules(), "fr", nil, i18n.WithOnMissing(onMissing))
	if got := localized[0].Checks[0].Message; got != "[grn.grnNumber.required]" {
		t.Fatalf("unexpected message %q", got)
	}
	if got := localized[0].Checks[1].Message; got != "Too long" {
		t.Fatalf("checks without key should be untouched, got %q", got)
	}
	if len(reported) != 3 {
		t.Fatalf("expected 3 missing keys, got %v", reported)
	}
	if i18n.Localize(nil, "en", nil) != nil {
		t.Fatalf("nil rules should stay nil")
	}
}

func TestTranslate(t *testing.T) {
	t.Parallel()

	fn := i18n.TranslatorFunc(func(locale, key string, _ ...any) (string, error) {
		if key == "known" {
			return locale + ":" + key, nil
		}
		return "", errors.New("nope")
	})

	if got := i18n.Translate("en", "known", "fallback", fn, nil); got != "en:known" {
		t.Fatalf("unexpected %q", got)
	}
	if got := i18n.Translate("en", "unknown", "fallback", fn, nil); got != "fallback" {
		t.Fatalf("unexpected %q", got)
	}
	if got := i18n.Translate("en", "unknown", " ", fn, nil); got != "unknown" {
		t.Fatalf("expected key when fallback is blank, got %q", got)
	}
	if got := i18n.Translate("en", " ", "fallback", fn, nil); got != "fallback" {
		t.Fatalf("blank key should return fallback, got %q", got)
	}
}
