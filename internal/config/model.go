package config

// Config is the runtime configuration of the formcheck binary.
type Config struct {
	Rules RulesConfig `koanf:"rules"`
	I18n  I18nConfig  `koanf:"i18n"`
	HTTP  HTTPConfig  `koanf:"http"`
	Log   LogConfig   `koanf:"log"`
}

// RulesConfig points at extra rule documents layered over the built-in
// inventory forms.
type RulesConfig struct {
	Dir string `koanf:"dir"`
	// BuiltIn disables the embedded forms when false.
	BuiltIn *bool `koanf:"builtin"`
}

// UseBuiltIn reports whether the embedded forms are loaded.
func (r RulesConfig) UseBuiltIn() bool {
	return r.BuiltIn == nil || *r.BuiltIn
}

type I18nConfig struct {
	Locale string `koanf:"locale" validate:"required"`
	// Catalog is a directory of extra locale YAML files.
	Catalog string `koanf:"catalog"`
}

type HTTPConfig struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
	BasePath   string `koanf:"base_path"`
}

type LogConfig struct {
	Level  string `koanf:"level"  validate:"oneof=debug info warn error"`
	Format string `koanf:"format" validate:"oneof=json console"`
	// File enables a rotating JSON file sink next to stderr.
	File string `koanf:"file"`
}

func (c *Config) applyDefaults() {
	if c.I18n.Locale == "" {
		c.I18n.Locale = "en"
	}
	if c.HTTP.ListenAddr == "" {
		c.HTTP.ListenAddr = "127.0.0.1:8080"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
}
