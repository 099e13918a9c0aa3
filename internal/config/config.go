// Package config loads process settings through viper and the per-project
// frontgen.yml file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. FRONTGEN_LOG_LEVEL.
const EnvPrefix = "FRONTGEN"

// Settings is the process configuration. It is built once in main and passed
// down explicitly.
type Settings struct {
	Log        LogSettings        `mapstructure:"log"`
	Generation GenerationSettings `mapstructure:"generation"`
	Templates  TemplateSettings   `mapstructure:"templates"`
	Pipeline   PipelineSettings   `mapstructure:"pipeline"`
	Graph      GraphSettings      `mapstructure:"graph"`
	Serve      ServeSettings      `mapstructure:"serve"`
}

type LogSettings struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// GenerationSettings selects and tunes the generation backend. Provider
// "none" disables generation so every artifact comes from templates or
// static bodies.
type GenerationSettings struct {
	Provider    string        `mapstructure:"provider"`
	Model       string        `mapstructure:"model"`
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Timeout     time.Duration `mapstructure:"timeout"`
	MaxRetries  int           `mapstructure:"max_retries"`
	CacheSize   int           `mapstructure:"cache_size"`
	TokenBudget int           `mapstructure:"token_budget"`
}

type TemplateSettings struct {
	Dir string `mapstructure:"dir"`
}

type PipelineSettings struct {
	Parallelism int `mapstructure:"parallelism"`
}

type GraphSettings struct {
	Backend string `mapstructure:"backend"`
	Path    string `mapstructure:"path"`
}

type ServeSettings struct {
	Addr    string `mapstructure:"addr"`
	Metrics bool   `mapstructure:"metrics"`
}

// Generation providers.
const (
	ProviderNone      = "none"
	ProviderAnthropic = "anthropic"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("generation.provider", ProviderNone)
	v.SetDefault("generation.model", "")
	v.SetDefault("generation.api_key", "")
	v.SetDefault("generation.base_url", "")
	v.SetDefault("generation.max_tokens", 4096)
	v.SetDefault("generation.timeout", 60*time.Second)
	v.SetDefault("generation.max_retries", 2)
	v.SetDefault("generation.cache_size", 128)
	v.SetDefault("generation.token_budget", 0)
	v.SetDefault("templates.dir", "")
	v.SetDefault("pipeline.parallelism", 1)
	v.SetDefault("graph.backend", "memory")
	v.SetDefault("graph.path", "")
	v.SetDefault("serve.addr", ":8080")
	v.SetDefault("serve.metrics", true)
}

// Defaults returns the settings used when no file or environment override
// is present.
func Defaults() *Settings {
	s, err := decode(newViper())
	if err != nil {
		panic(err)
	}
	return s
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads settings from path, or from frontgen.yaml in the working
// directory when path is empty, then applies FRONTGEN_* environment
// overrides. A missing default file is not an error; a missing explicit
// file is.
func Load(path string) (*Settings, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("frontgen")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read %s: %w", describe(path), err)
		}
	}
	s, err := decode(v)
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func describe(path string) string {
	if path == "" {
		return "frontgen.yaml"
	}
	return path
}

func decode(v *viper.Viper) (*Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	return &s, nil
}

// Validate checks the closed value sets.
func (s *Settings) Validate() error {
	var problems []string
	switch s.Generation.Provider {
	case ProviderNone, ProviderAnthropic:
	default:
		problems = append(problems, fmt.Sprintf("generation.provider: %q is not one of none, anthropic", s.Generation.Provider))
	}
	switch s.Graph.Backend {
	case "memory", "kuzu":
	default:
		problems = append(problems, fmt.Sprintf("graph.backend: %q is not one of memory, kuzu", s.Graph.Backend))
	}
	switch strings.ToLower(s.Log.Format) {
	case "text", "json":
	default:
		problems = append(problems, fmt.Sprintf("log.format: %q is not one of text, json", s.Log.Format))
	}
	if s.Pipeline.Parallelism < 1 {
		problems = append(problems, "pipeline.parallelism must be at least 1")
	}
	if s.Generation.Timeout <= 0 {
		problems = append(problems, "generation.timeout must be positive")
	}
	if len(problems) > 0 {
		return fmt.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}
