package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/njchilds90/symdiff"
)

// Config holds the complete application configuration
type Config struct {
	Engine EngineConfig `toml:"engine" yaml:"engine"`
	Output OutputConfig `toml:"output" yaml:"output"`
	Log    LogConfig    `toml:"log" yaml:"log"`
	Server ServerConfig `toml:"server" yaml:"server"`
}

// EngineConfig tunes differentiation and simplification
type EngineConfig struct {
	Rules           string `toml:"rules" yaml:"rules"`
	MaxFoldExponent int64  `toml:"max_fold_exponent" yaml:"max_fold_exponent"`
	UntilStable     bool   `toml:"until_stable" yaml:"until_stable"`
}

// OutputConfig controls how the CLI prints results
type OutputConfig struct {
	Format string `toml:"format" yaml:"format"`
	Color  bool   `toml:"color" yaml:"color"`
	LaTeX  bool   `toml:"latex" yaml:"latex"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
}

// ServerConfig holds tool server settings
type ServerConfig struct {
	Addr         string   `toml:"addr" yaml:"addr"`
	ReadTimeout  Duration `toml:"read_timeout" yaml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout" yaml:"write_timeout"`
	MaxBodyBytes int64    `toml:"max_body_bytes" yaml:"max_body_bytes"`
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Output formats accepted by OutputConfig.Format
var outputFormats = []string{"text", "json", "yaml"}

// Default returns a configuration with every default applied
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

// Load loads configuration from a TOML or YAML file, chosen by extension
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	default:
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown config keys: %v", undecoded)
		}
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromEnv loads the file named by SYMDIFF_CONFIG, then the first default
// location that exists. Without any file the defaults are returned.
func LoadFromEnv() (*Config, error) {
	if path := os.Getenv("SYMDIFF_CONFIG"); path != "" {
		return Load(path)
	}
	defaultPaths := []string{
		"./symdiff.toml",
		"./configs/symdiff.toml",
		filepath.Join(os.Getenv("HOME"), ".config/symdiff/config.toml"),
	}
	for _, p := range defaultPaths {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}
	return Default(), nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.Engine.Rules == "" {
		c.Engine.Rules = "legacy"
	}
	if c.Engine.MaxFoldExponent == 0 {
		c.Engine.MaxFoldExponent = symdiff.DefaultMaxExponent
	}

	if c.Output.Format == "" {
		c.Output.Format = "text"
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}

	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.ReadTimeout.Duration == 0 {
		c.Server.ReadTimeout.Duration = 15 * time.Second
	}
	if c.Server.WriteTimeout.Duration == 0 {
		c.Server.WriteTimeout.Duration = 15 * time.Second
	}
	if c.Server.MaxBodyBytes == 0 {
		c.Server.MaxBodyBytes = 1 << 20
	}
}

// Validate checks values that defaults cannot repair
func (c *Config) Validate() error {
	if _, err := symdiff.ParseRuleSet(c.Engine.Rules); err != nil {
		return fmt.Errorf("engine.rules: %w", err)
	}
	if c.Engine.MaxFoldExponent < 0 {
		return fmt.Errorf("engine.max_fold_exponent must not be negative, got %d", c.Engine.MaxFoldExponent)
	}
	if !contains(outputFormats, c.Output.Format) {
		return fmt.Errorf("output.format must be one of %v, got %q", outputFormats, c.Output.Format)
	}
	if c.Server.MaxBodyBytes < 0 {
		return fmt.Errorf("server.max_body_bytes must not be negative")
	}
	return nil
}

// Options translates the engine section into pipeline options
func (c *Config) Options() symdiff.Options {
	rules, _ := symdiff.ParseRuleSet(c.Engine.Rules)
	return symdiff.Options{
		Rules:       rules,
		MaxExponent: c.Engine.MaxFoldExponent,
		UntilStable: c.Engine.UntilStable,
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
