package i18n

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Catalog is an in-memory Translator backed by locale → key → message maps.
// Lookups fall back from a regional locale ("es-MX") to its base language
// ("es") and finally to the catalog's default locale.
type Catalog struct {
	mu            sync.RWMutex
	defaultLocale string
	messages      map[string]map[string]string
}

// NewCatalog creates a catalog seeded with messages. The default locale is
// used when neither the requested locale nor its base language has the key.
func NewCatalog(defaultLocale string, messages map[string]map[string]string) *Catalog {
	c := &Catalog{
		defaultLocale: normalizeLocale(defaultLocale),
		messages:      make(map[string]map[string]string),
	}
	for locale, entries := range messages {
		c.Add(locale, entries)
	}
	return c
}

// LoadCatalog parses a YAML document of the form
//
//	en:
//	  grn.grnNumber.required: GRN number is required
//	es:
//	  grn.grnNumber.required: El número de GRN es obligatorio
func LoadCatalog(defaultLocale string, data []byte) (*Catalog, error) {
	c := NewCatalog(defaultLocale, nil)
	if err := c.merge(data, "catalog"); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadCatalogFS merges every YAML document found in fsys into one catalog.
func LoadCatalogFS(defaultLocale string, fsys fs.FS) (*Catalog, error) {
	c := NewCatalog(defaultLocale, nil)
	if fsys == nil {
		return c, nil
	}
	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
		default:
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("i18n: read %s: %w", path, err)
		}
		return c.merge(data, path)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) merge(data []byte, source string) error {
	var doc map[string]map[string]string
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("i18n: parse %s: %w", source, err)
	}
	for locale, entries := range doc {
		c.Add(locale, entries)
	}
	return nil
}

// Add merges entries into locale, replacing existing keys.
func (c *Catalog) Add(locale string, entries map[string]string) {
	if c == nil {
		return
	}
	locale = normalizeLocale(locale)
	if locale == "" || len(entries) == 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	bucket, ok := c.messages[locale]
	if !ok {
		bucket = make(map[string]string, len(entries))
		c.messages[locale] = bucket
	}
	for key, message := range entries {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		bucket[key] = message
	}
}

// Translate implements Translator. Args, when present, are applied with
// fmt.Sprintf.
func (c *Catalog) Translate(locale, key string, args ...any) (string, error) {
	if c == nil {
		return "", ErrMissingTranslator
	}
	key = strings.TrimSpace(key)

	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, candidate := range c.candidates(locale) {
		message, ok := c.messages[candidate][key]
		if !ok {
			continue
		}
		if len(args) > 0 {
			return fmt.Sprintf(message, args...), nil
		}
		return message, nil
	}
	return "", fmt.Errorf("%w: %s (%s)", ErrMissingTranslation, key, locale)
}

// Locales lists the locales holding at least one message.
func (c *Catalog) Locales() []string {
	if c == nil {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]string, 0, len(c.messages))
	for locale := range c.messages {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

func (c *Catalog) candidates(locale string) []string {
	locale = normalizeLocale(locale)
	out := make([]string, 0, 3)
	if locale != "" {
		out = append(out, locale)
		if base, _, found := strings.Cut(locale, "-"); found {
			out = append(out, base)
		}
	}
	if c.defaultLocale != "" && c.defaultLocale != locale {
		out = append(out, c.defaultLocale)
	}
	return out
}

func normalizeLocale(locale string) string {
	locale = strings.TrimSpace(locale)
	return strings.ToLower(strings.ReplaceAll(locale, "_", "-"))
}
