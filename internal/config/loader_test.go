package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(Options{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := Config{
		I18n: I18nConfig{Locale: "en"},
		HTTP: HTTPConfig{ListenAddr: "127.0.0.1:8080"},
		Log:  LogConfig{Level: "info", Format: "console"},
	}
	if diff := cmp.Diff(want, *cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	if !cfg.Rules.UseBuiltIn() {
		t.Fatalf("built-in forms should be enabled by default")
	}
	if Get() == nil {
		t.Fatalf("Load should cache the config")
	}
}

func TestLoad_FileAndEnvOverlay(t *testing.T) {
	path := writeFile(t, "formcheck.yaml", `
rules:
  dir: ./forms
  builtin: false
i18n:
  locale: es
http:
  listen_addr: 0.0.0.0:9000
log:
  level: debug
  format: json
`)
	t.Setenv("FORMCHECK_HTTP__LISTEN_ADDR", "127.0.0.1:9100")
	t.Setenv("FORMCHECK_LOG__FILE", "/var/log/formcheck.log")

	cfg, err := Load(Options{File: path})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Rules.Dir != "./forms" || cfg.Rules.UseBuiltIn() {
		t.Fatalf("unexpected rules config: %+v", cfg.Rules)
	}
	if cfg.I18n.Locale != "es" || cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.HTTP.ListenAddr != "127.0.0.1:9100" {
		t.Fatalf("env should override file, got %q", cfg.HTTP.ListenAddr)
	}
	if cfg.Log.File != "/var/log/formcheck.log" {
		t.Fatalf("env-only key not applied, got %q", cfg.Log.File)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	path := writeFile(t, ".env", "FORMCHECK_I18N__LOCALE=es\n")
	t.Setenv("FORMCHECK_I18N__LOCALE", "")
	os.Unsetenv("FORMCHECK_I18N__LOCALE")

	cfg, err := Load(Options{DotEnv: path})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.I18n.Locale != "es" {
		t.Fatalf("dotenv value not applied, got %q", cfg.I18n.Locale)
	}

	if _, err := Load(Options{DotEnv: filepath.Join(t.TempDir(), "missing.env")}); err != nil {
		t.Fatalf("missing dotenv should be ignored: %v", err)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(Options{File: filepath.Join(t.TempDir(), "missing.yaml")}); err == nil {
		t.Fatalf("expected error for missing explicit file")
	}

	bad := writeFile(t, "bad.yaml", "log:\n  level: verbose\n")
	_, err := Load(Options{File: bad})
	if err == nil || !strings.Contains(err.Error(), "Level") {
		t.Fatalf("expected validation error for log level, got %v", err)
	}

	addr := writeFile(t, "addr.yaml", "http:\n  listen_addr: not-an-address\n")
	if _, err := Load(Options{File: addr}); err == nil {
		t.Fatalf("expected validation error for listen address")
	}
}

func TestEnvKey(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"FORMCHECK_HTTP__LISTEN_ADDR": "http.listen_addr",
		"FORMCHECK_RULES__DIR":        "rules.dir",
		"FORMCHECK_LOG__LEVEL":        "log.level",
	}
	for in, want := range cases {
		if got := envKey(in); got != want {
			t.Fatalf("envKey(%q) = %q, want %q", in, got, want)
		}
	}
}
