package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"netlint/internal/rules"
)

type Config struct {
	InputPaths []string      `toml:"input_paths"`
	Exclude    Exclude       `toml:"exclude"`
	Rules      Rules         `toml:"rules"`
	Watch      Watch         `toml:"watch"`
	Output     Output        `toml:"output"`
	History    History       `toml:"history"`
	Observ     Observability `toml:"observability"`
}

type Exclude struct {
	Dirs  []string `toml:"dirs"`
	Files []string `toml:"files"`
}

type Rules struct {
	Disabled        []string        `toml:"disabled"`
	EmbeddedStrings EmbeddedStrings `toml:"embedded_strings"`
}

type EmbeddedStrings struct {
	MinimumLength   int      `toml:"minimum_length"`
	AllowedLiterals []string `toml:"allowed_literals"`
}

type Watch struct {
	Debounce      time.Duration `toml:"debounce"`
	RescansPerSec float64       `toml:"rescans_per_sec"`
}

type Output struct {
	SARIF string `toml:"sarif"`
}

type History struct {
	DB string `toml:"db"`
}

type Observability struct {
	Listen       string `toml:"listen"`
	OTLPEndpoint string `toml:"otlp_endpoint"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return &cfg, nil
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if len(c.InputPaths) == 0 {
		c.InputPaths = []string{"."}
	}
	if c.Watch.Debounce == 0 {
		c.Watch.Debounce = 500 * time.Millisecond
	}
	if c.Watch.RescansPerSec == 0 {
		c.Watch.RescansPerSec = 2
	}
	defaults := rules.DefaultLiteralSettings()
	if c.Rules.EmbeddedStrings.MinimumLength == 0 {
		c.Rules.EmbeddedStrings.MinimumLength = defaults.MinimumLength
	}
	if c.Rules.EmbeddedStrings.AllowedLiterals == nil {
		c.Rules.EmbeddedStrings.AllowedLiterals = defaults.AllowedLiterals
	}
}

// LiteralSettings adapts the config section to the rule's settings type.
func (c *Config) LiteralSettings() rules.LiteralSettings {
	return rules.LiteralSettings{
		MinimumLength:   c.Rules.EmbeddedStrings.MinimumLength,
		AllowedLiterals: c.Rules.EmbeddedStrings.AllowedLiterals,
	}
}

// RuleDisabled reports whether a rule id is switched off in the config.
func (c *Config) RuleDisabled(id string) bool {
	for _, d := range c.Rules.Disabled {
		if d == id {
			return true
		}
	}
	return false
}
