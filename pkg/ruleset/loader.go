package ruleset

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formcheck/pkg/validation"
)

// Option customises loading.
type Option func(*loadOptions)

type loadOptions struct {
	registry *validation.Registry
	sanitize func(string) string
}

// WithRegistry compiles checks against reg instead of the default registry,
// allowing rule documents to reference custom predicates.
func WithRegistry(reg *validation.Registry) Option {
	return func(o *loadOptions) {
		if reg != nil {
			o.registry = reg
		}
	}
}

// WithMessageSanitizer replaces the default message sanitiser. Passing nil
// keeps messages verbatim.
func WithMessageSanitizer(fn func(string) string) Option {
	return func(o *loadOptions) {
		o.sanitize = fn
	}
}

func newLoadOptions(opts []Option) loadOptions {
	options := loadOptions{
		registry: validation.DefaultRegistry(),
		sanitize: SanitizeMessage,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&options)
	}
	return options
}

// LoadFS walks fsys and parses every JSON/YAML rule document it finds. When
// fsys is nil or holds no rule documents, the returned store is empty.
func LoadFS(fsys fs.FS, opts ...Option) (*Store, error) {
	store := &Store{forms: make(map[string]Form)}
	if fsys == nil {
		return store, nil
	}
	options := newLoadOptions(opts)

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isRuleFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("ruleset: read %s: %w", path, err)
		}
		return store.addDocument(data, path, options)
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Parse builds a store from a single JSON or YAML document. Source names the
// document in error messages.
func Parse(data []byte, source string, opts ...Option) (*Store, error) {
	store := &Store{forms: make(map[string]Form)}
	if err := store.addDocument(data, source, newLoadOptions(opts)); err != nil {
		return nil, err
	}
	return store, nil
}

// Document is the on-disk shape of a rule document.
type Document struct {
	Forms map[string]FormDocument `json:"forms" yaml:"forms"`
}

// FormDocument describes one form inside a Document.
type FormDocument struct {
	Title    string                `json:"title" yaml:"title"`
	Endpoint string                `json:"endpoint" yaml:"endpoint"`
	Method   string                `json:"method" yaml:"method"`
	Rules    []validation.RuleSpec `json:"rules" yaml:"rules"`
}

func (s *Store) addDocument(data []byte, source string, options loadOptions) error {
	doc, err := parseDocument(data, source)
	if err != nil {
		return err
	}

	for rawID, raw := range doc.Forms {
		id := strings.TrimSpace(rawID)
		if id == "" {
			return fmt.Errorf("ruleset: file %s defines an empty form id", source)
		}
		if existing, exists := s.forms[id]; exists {
			return fmt.Errorf("ruleset: duplicate form %q (files %s and %s)", id, existing.Source, source)
		}

		form, err := compileForm(id, source, raw, options)
		if err != nil {
			return err
		}
		s.forms[id] = form
	}
	return nil
}

func parseDocument(data []byte, source string) (Document, error) {
	var doc Document
	if len(strings.TrimSpace(string(data))) == 0 {
		return Document{}, fmt.Errorf("ruleset: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	doc = Document{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("ruleset: parse %s: invalid JSON or YAML: %w", source, err)
	}
	return doc, nil
}

func compileForm(id, source string, raw FormDocument, options loadOptions) (Form, error) {
	specs := sanitizeSpecs(raw.Rules, options.sanitize)
	rules, err := validation.Compile(options.registry, specs)
	if err != nil {
		return Form{}, fmt.Errorf("ruleset: form %q (file %s): %w", id, source, err)
	}
	return Form{
		ID:       id,
		Title:    strings.TrimSpace(raw.Title),
		Endpoint: strings.TrimSpace(raw.Endpoint),
		Method:   strings.ToUpper(strings.TrimSpace(raw.Method)),
		Source:   source,
		Specs:    specs,
		Rules:    rules,
	}, nil
}

func sanitizeSpecs(specs []validation.RuleSpec, sanitize func(string) string) []validation.RuleSpec {
	out := make([]validation.RuleSpec, len(specs))
	for i, spec := range specs {
		spec.Checks = sanitizeChecks(spec.Checks, sanitize)
		if spec.Rows != nil {
			rows := make(map[string][]validation.CheckSpec, len(spec.Rows))
			for key, checks := range spec.Rows {
				rows[key] = sanitizeChecks(checks, sanitize)
			}
			spec.Rows = rows
		}
		out[i] = spec
	}
	return out
}

func sanitizeChecks(checks []validation.CheckSpec, sanitize func(string) string) []validation.CheckSpec {
	if checks == nil {
		return nil
	}
	out := make([]validation.CheckSpec, len(checks))
	for i, check := range checks {
		if sanitize != nil {
			check.Message = sanitize(check.Message)
		}
		out[i] = check
	}
	return out
}

func isRuleFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
