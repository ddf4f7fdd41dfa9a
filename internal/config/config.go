// Package config loads the layered newsroom configuration.
//
// Precedence (highest to lowest): flags > NEWSROOM_* env vars > .env file >
// YAML config file > defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/example/newsroom/internal/core/duration"
)

// EnvPrefix is the prefix of environment overrides (NEWSROOM_DB_PATH -> db_path).
const EnvPrefix = "NEWSROOM_"

// DevSecret is the token secret used when none is configured.
const DevSecret = "newsroom-dev-secret"

// Config holds all configuration options.
type Config struct {
	DBPath         string        `koanf:"db_path" yaml:"db_path"`
	LogLevel       string        `koanf:"log_level" yaml:"log_level"`
	LogFormat      string        `koanf:"log_format" yaml:"log_format"`
	SessionFile    string        `koanf:"session_file" yaml:"session_file"`
	JWTSecret      string        `koanf:"jwt_secret" yaml:"jwt_secret"`
	TokenTTL       time.Duration `koanf:"token_ttl" yaml:"token_ttl"`
	DefaultAirTime string        `koanf:"default_air_time" yaml:"default_air_time"`
	Timezone       string        `koanf:"timezone" yaml:"timezone"`
	HTTPAddr       string        `koanf:"http_addr" yaml:"http_addr"`
	RateLimit      int           `koanf:"rate_limit" yaml:"rate_limit"`
	RateWindow     time.Duration `koanf:"rate_window" yaml:"rate_window"`

	// FileUsed is the YAML file that was loaded, if any.
	FileUsed string `koanf:"-" yaml:"-"`
}

// LoadOptions selects the sources Load reads.
type LoadOptions struct {
	ConfigFile string         // explicit YAML file; DefaultConfigFile() when empty and present
	DotEnvFile string         // .env file; ".env" when empty, skipped when missing
	Flags      *pflag.FlagSet // only flags that were set are applied
}

// Dir returns the newsroom home directory (~/.newsroom).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".newsroom"
	}
	return filepath.Join(home, ".newsroom")
}

// DefaultConfigFile returns ~/.newsroom/config.yaml.
func DefaultConfigFile() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Defaults returns the built-in configuration values.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"db_path":          filepath.Join(Dir(), "newsroom.db"),
		"log_level":        "warn",
		"log_format":       "console",
		"session_file":     filepath.Join(Dir(), "session.json"),
		"jwt_secret":       DevSecret,
		"token_ttl":        "12h",
		"default_air_time": "20:00:00",
		"timezone":         "UTC",
		"http_addr":        "127.0.0.1:8080",
		"rate_limit":       100,
		"rate_window":      "1m",
	}
}

// flagKeys maps flag names whose config key differs from the kebab-to-snake rule.
var flagKeys = map[string]string{
	"db":   "db_path",
	"addr": "http_addr",
}

// Load reads configuration from every layer and validates it.
func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. YAML file
	cfgFile := opts.ConfigFile
	if cfgFile == "" {
		if _, err := os.Stat(DefaultConfigFile()); err == nil {
			cfgFile = DefaultConfigFile()
		}
	}
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
	}

	// 3. .env file feeds the process environment without overriding it
	dotEnv := opts.DotEnvFile
	if dotEnv == "" {
		dotEnv = ".env"
	}
	if err := godotenv.Load(dotEnv); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error reading %s: %w", dotEnv, err)
	}

	// 4. Environment variables
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 5. Flags
	if opts.Flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(opts.Flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				key = strings.ReplaceAll(f.Name, "-", "_")
			}
			return key, posflag.FlagVal(opts.Flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.FileUsed = cfgFile

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	if secs, err := duration.ParseHMS(c.DefaultAirTime); err != nil || secs >= 24*60*60 {
		return fmt.Errorf("invalid default_air_time %q (want HH:MM:SS)", c.DefaultAirTime)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log_format %q (want console or json)", c.LogFormat)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("token_ttl must be positive")
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rate_limit cannot be negative")
	}
	return nil
}

// Location returns the configured timezone. Validate has checked it.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// UsesDevSecret reports whether tokens are signed with the built-in secret.
func (c *Config) UsesDevSecret() bool {
	return c.JWTSecret == DevSecret
}
