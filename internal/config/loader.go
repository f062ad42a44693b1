package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	koanf "github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes environment overrides. A double underscore maps to a
// key separator: FORMCHECK_HTTP__LISTEN_ADDR sets http.listen_addr.
const EnvPrefix = "FORMCHECK_"

var current atomic.Pointer[Config]

// Options selects the configuration sources.
type Options struct {
	// File is an optional YAML file. A missing file is an error only when
	// the path was given explicitly.
	File string
	// DotEnv is an optional .env file loaded before the environment overlay.
	DotEnv string
}

// Load merges the YAML file and FORMCHECK_ environment overrides (highest
// precedence last), applies defaults, validates and caches the result.
func Load(opts Options) (*Config, error) {
	if opts.DotEnv != "" {
		if err := godotenv.Load(opts.DotEnv); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: load %s: %w", opts.DotEnv, err)
		}
	}

	k := koanf.New(".")
	if opts.File != "" {
		if err := k.Load(file.Provider(opts.File), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: load %s: %w", opts.File, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("config: env overlay: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	cfg.applyDefaults()
	if err := validateStruct(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	current.Store(&cfg)
	return &cfg, nil
}

func envKey(s string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimPrefix(s, EnvPrefix), "__", "."))
}

// Get returns the last configuration produced by Load, or nil.
func Get() *Config { return current.Load() }
