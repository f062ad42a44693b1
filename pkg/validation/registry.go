package validation

import (
	"sort"
	"strings"
	"sync"
)

// Registry maps check names to predicates so rule sets can be declared as
// data. It is safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	predicates map[string]Predicate
}

// NewRegistry returns a registry holding the built-in predicates.
func NewRegistry() *Registry {
	reg := &Registry{predicates: make(map[string]Predicate)}
	reg.registerBuiltins()
	return reg
}

// Register adds or replaces the predicate stored under name. Empty names and
// nil predicates are ignored.
func (r *Registry) Register(name string, predicate Predicate) {
	if r == nil || predicate == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.predicates == nil {
		r.predicates = make(map[string]Predicate)
	}
	r.predicates[trimmed] = predicate
}

// Lookup returns the predicate registered under name.
func (r *Registry) Lookup(name string) (Predicate, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	predicate, ok := r.predicates[strings.TrimSpace(name)]
	return predicate, ok
}

// Names lists the registered check names in sorted order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	names := make([]string, 0, len(r.predicates))
	for name := range r.predicates {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

func (r *Registry) registerBuiltins() {
	r.Register(CheckRequired, Required)
	r.Register(CheckMaxLength, MaxLength)
	r.Register(CheckIsNumber, IsNumber)
	r.Register(CheckValidateDate, ValidateDate)
	r.Register(CheckCalendarDate, CalendarDate)
	r.Register(CheckMinLength, MinLength)
	r.Register(CheckMin, Min)
	r.Register(CheckMax, Max)
	r.Register(CheckPattern, Pattern)
	r.Register(CheckOneOf, OneOf)
}

var (
	defaultRegistryOnce sync.Once
	defaultRegistry     *Registry
)

// DefaultRegistry returns a shared registry with the built-in predicates.
// Callers registering custom predicates should build their own with
// NewRegistry instead of mutating the shared one.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}
