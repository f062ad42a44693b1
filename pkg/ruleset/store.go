package ruleset

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-formcheck/pkg/validation"
)

// Form is a compiled rule set for one screen.
type Form struct {
	ID       string
	Title    string
	Endpoint string
	Method   string
	// Source names the document the form was loaded from.
	Source string
	Specs  []validation.RuleSpec
	Rules  []validation.Rule
}

// Validate runs the form's rules against values.
func (f Form) Validate(values validation.Values) validation.ErrorMap {
	return validation.ValidateForm(values, f.Rules)
}

// Store holds compiled forms keyed by id. It is read-only once built and safe
// for concurrent use.
type Store struct {
	forms map[string]Form
}

// NewStore builds a store from already compiled forms.
func NewStore(forms ...Form) (*Store, error) {
	store := &Store{forms: make(map[string]Form, len(forms))}
	for _, form := range forms {
		id := strings.TrimSpace(form.ID)
		if id == "" {
			return nil, fmt.Errorf("ruleset: form id is required")
		}
		if _, exists := store.forms[id]; exists {
			return nil, fmt.Errorf("ruleset: duplicate form %q", id)
		}
		form.ID = id
		store.forms[id] = form
	}
	return store, nil
}

// Form returns the form registered under id.
func (s *Store) Form(id string) (Form, bool) {
	if s == nil {
		return Form{}, false
	}
	form, ok := s.forms[strings.TrimSpace(id)]
	return form, ok
}

// Forms lists the form ids in sorted order.
func (s *Store) Forms() []string {
	if s == nil || len(s.forms) == 0 {
		return nil
	}
	ids := make([]string, 0, len(s.forms))
	for id := range s.forms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Empty reports whether the store holds any forms.
func (s *Store) Empty() bool {
	return s == nil || len(s.forms) == 0
}

// Overlay returns a store holding the forms of base and over; forms defined
// in over replace base forms with the same id. Either argument may be nil.
func Overlay(base, over *Store) *Store {
	out := &Store{forms: make(map[string]Form)}
	for _, src := range []*Store{base, over} {
		if src == nil {
			continue
		}
		for id, form := range src.forms {
			out.forms[id] = form
		}
	}
	return out
}
