// Package config loads server configuration from an optional YAML file and
// environment variable overrides. Configuration is explicit: the composition
// root receives one Config value, nothing reads the environment later.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// LLM provider names.
const (
	ProviderStub   = "stub"
	ProviderGemini = "gemini"
)

// Config is the full server configuration.
type Config struct {
	// ServerName is the name announced during protocol initialization.
	ServerName string `yaml:"server_name"`

	// LogLevel is a logrus level name (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`

	LLM    LLMConfig    `yaml:"llm"`
	Memory MemoryConfig `yaml:"memory"`
}

// LLMConfig selects and tunes the language-model client.
type LLMConfig struct {
	// Provider is "gemini" or "stub". The stub answers deterministically
	// without network access.
	Provider string `yaml:"provider"`

	APIKey          string  `yaml:"api_key"`
	Model           string  `yaml:"model"`
	Temperature     float64 `yaml:"temperature"`
	TopP            float64 `yaml:"top_p"`
	TopK            int     `yaml:"top_k"`
	MaxOutputTokens int     `yaml:"max_output_tokens"`
}

// MemoryConfig selects the entity repository backend.
type MemoryConfig struct {
	// Path is the SQLite database file. Empty keeps everything in memory.
	Path string `yaml:"path"`
}

// Default returns the configuration used when no file and no environment
// overrides are present: in-memory storage and the stub LLM.
func Default() Config {
	return Config{
		ServerName: "memgate",
		LogLevel:   "info",
		LLM: LLMConfig{
			Provider:        ProviderStub,
			Temperature:     0.1,
			TopP:            0.8,
			TopK:            40,
			MaxOutputTokens: 2048,
		},
	}
}

// Load builds the configuration: defaults, then the YAML file at path (or
// $MEMGATE_CONFIG when path is empty), then environment overrides. A
// missing file is not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("MEMGATE_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return Config{}, fmt.Errorf("config: read %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("MEMGATE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("MEMGATE_DB"); v != "" {
		cfg.Memory.Path = v
	}
	if v := os.Getenv("MEMGATE_LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
		// A key without an explicit provider choice means Gemini.
		if os.Getenv("MEMGATE_LLM_PROVIDER") == "" {
			cfg.LLM.Provider = ProviderGemini
		}
	}
	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
}

// Validate checks the configuration is usable.
func (c Config) Validate() error {
	switch strings.ToLower(c.LLM.Provider) {
	case ProviderStub:
	case ProviderGemini:
		if c.LLM.APIKey == "" {
			return fmt.Errorf("config: gemini provider requires an API key (set GEMINI_API_KEY)")
		}
	default:
		return fmt.Errorf("config: unknown llm provider %q", c.LLM.Provider)
	}
	return nil
}
