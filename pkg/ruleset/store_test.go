package ruleset_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formcheck/pkg/ruleset"
	"github.com/goliatone/go-formcheck/pkg/validation"
)

func TestNewStore(t *testing.T) {
	t.Parallel()

	store, err := ruleset.NewStore(
		ruleset.Form{ID: " issue ", Rules: []validation.Rule{
			validation.ScalarRule("issueNo", validation.RequiredCheck("Issue number is required")),
		}},
		ruleset.Form{ID: "grn"},
	)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if diff := cmp.Diff([]string{"grn", "issue"}, store.Forms()); diff != "" {
		t.Fatalf("forms mismatch (-want +got):\n%s", diff)
	}
	if _, ok := store.Form("issue"); !ok {
		t.Fatalf("trimmed id not stored")
	}

	if _, err := ruleset.NewStore(ruleset.Form{ID: ""}); err == nil {
		t.Fatalf("expected error for empty id")
	}
	if _, err := ruleset.NewStore(ruleset.Form{ID: "a"}, ruleset.Form{ID: "a"}); err == nil {
		t.Fatalf("expected duplicate error")
	}

	var nilStore *ruleset.Store
	if !nilStore.Empty() || nilStore.Forms() != nil {
		t.Fatalf("nil store should be empty")
	}
	if _, ok := nilStore.Form("grn"); ok {
		t.Fatalf("nil store should not resolve forms")
	}
}

func TestOverlay(t *testing.T) {
	t.Parallel()

	base, _ := ruleset.NewStore(ruleset.Form{ID: "grn", Title: "built-in"}, ruleset.Form{ID: "issue"})
	over, _ := ruleset.NewStore(ruleset.Form{ID: "grn", Title: "custom"}, ruleset.Form{ID: "transfer"})

	merged := ruleset.Overlay(base, over)
	if diff := cmp.Diff([]string{"grn", "issue", "transfer"}, merged.Forms()); diff != "" {
		t.Fatalf("forms mismatch (-want +got):\n%s", diff)
	}
	grn, _ := merged.Form("grn")
	if grn.Title != "custom" {
		t.Fatalf("overlay should win, got %q", grn.Title)
	}
	if got := ruleset.Overlay(nil, nil); !got.Empty() {
		t.Fatalf("overlay of nils should be empty")
	}
}
