package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/learnloop/learnloop/internal/llm"
)

// Config is the application configuration, loaded from an optional YAML
// file with LEARNLOOP_* environment overrides.
type Config struct {
	// User is the default learner id for commands that take no --user.
	User string `mapstructure:"user"`

	// DB is the SQLite database path; empty means the XDG default.
	DB string `mapstructure:"db"`

	LLM LLMConfig `mapstructure:"llm"`
}

// LLMConfig selects and configures the generative provider.
type LLMConfig struct {
	Provider string `mapstructure:"provider"`

	Anthropic struct {
		APIKey string `mapstructure:"api_key"`
		Model  string `mapstructure:"model"`
	} `mapstructure:"anthropic"`

	OpenAI struct {
		APIKey  string `mapstructure:"api_key"`
		Model   string `mapstructure:"model"`
		BaseURL string `mapstructure:"base_url"`
	} `mapstructure:"openai"`

	Gemini struct {
		APIKey string `mapstructure:"api_key"`
		Model  string `mapstructure:"model"`
	} `mapstructure:"gemini"`
}

// Load reads configuration from configFile (or the default search path
// when empty), applies environment overrides, and returns the result.
// A missing config file is not an error; env and defaults still apply.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("$HOME/.config/learnloop")
		v.AddConfigPath(".")
	}

	v.SetDefault("user", "default")

	v.SetEnvPrefix("LEARNLOOP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if configFile != "" {
			return nil, fmt.Errorf("read config file %s: %w", configFile, err)
		}
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// ProviderConfig merges the file-based LLM settings over the env-derived
// defaults, so either source can configure the provider.
func (c *Config) ProviderConfig() llm.Config {
	cfg := llm.ConfigFromEnv()

	if c.LLM.Provider != "" {
		cfg.Provider = c.LLM.Provider
	}
	if c.LLM.Anthropic.APIKey != "" {
		cfg.Anthropic.APIKey = c.LLM.Anthropic.APIKey
	}
	if c.LLM.Anthropic.Model != "" {
		cfg.Anthropic.Model = c.LLM.Anthropic.Model
	}
	if c.LLM.OpenAI.APIKey != "" {
		cfg.OpenAI.APIKey = c.LLM.OpenAI.APIKey
	}
	if c.LLM.OpenAI.Model != "" {
		cfg.OpenAI.Model = c.LLM.OpenAI.Model
	}
	if c.LLM.OpenAI.BaseURL != "" {
		cfg.OpenAI.BaseURL = c.LLM.OpenAI.BaseURL
	}
	if c.LLM.Gemini.APIKey != "" {
		cfg.Gemini.APIKey = c.LLM.Gemini.APIKey
	}
	if c.LLM.Gemini.Model != "" {
		cfg.Gemini.Model = c.LLM.Gemini.Model
	}

	return cfg
}
