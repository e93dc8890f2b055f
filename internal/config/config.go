package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kshitij-139/GEM-JD/internal/model"
)

// Config is the root configuration for GEM-JD.
type Config struct {
	AI         AIConfig
	Generation GenerationConfig
	Server     ServerConfig
	History    HistoryConfig
}

// AIConfig selects and configures the language model backend.
type AIConfig struct {
	Provider string        // "gemini" or "openai"
	Model    string        // provider model identifier, e.g. "gemini-2.5-pro"
	APIKey   string        // expanded from env var by Load
	BaseURL  string        // openai only; defaults to https://api.openai.com/v1
	Timeout  time.Duration // per-request timeout

	MaxTokens int  // output token cap per call; thinking tokens count toward it on gemini-2.5
	VerifyKey bool // check the credential against the provider before serving
}

// GenerationConfig controls prompt content and sampling.
type GenerationConfig struct {
	Brand              string
	DefaultTemperature float64
	FAQLanguage        model.Language
	FAQTemperature     float64
	PromptFile         string // optional YAML file with a `template` key
}

// ServerConfig controls the web form.
type ServerConfig struct {
	Addr       string
	SessionTTL time.Duration // idle sessions older than this are evicted
}

// HistoryConfig controls the optional generation archive.
type HistoryConfig struct {
	Enabled   bool
	Path      string
	Retention time.Duration // 0 keeps records forever
}

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	defaultGeminiModel   = "gemini-2.5-pro"
	defaultOpenAIModel   = "gpt-4o-mini"
	defaultBrand         = "Reliance Jio"
	defaultAddr          = ":8080"
	defaultHistoryPath   = "generations.db"
	defaultMaxTokens     = 8192
)

// rawConfig is used for YAML unmarshaling (snake_case fields, durations as
// strings, pointers where zero is a legal value).
type rawConfig struct {
	AI         rawAIConfig         `yaml:"ai"`
	Generation rawGenerationConfig `yaml:"generation"`
	Server     rawServerConfig     `yaml:"server"`
	History    rawHistoryConfig    `yaml:"history"`
}

type rawAIConfig struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url"`
	Timeout  string `yaml:"timeout"`

	MaxTokens int   `yaml:"max_tokens"`
	VerifyKey *bool `yaml:"verify_key"`
}

type rawGenerationConfig struct {
	Brand              string   `yaml:"brand"`
	DefaultTemperature *float64 `yaml:"default_temperature"`
	FAQLanguage        string   `yaml:"faq_language"`
	FAQTemperature     *float64 `yaml:"faq_temperature"`
	PromptFile         string   `yaml:"prompt_file"`
}

type rawHistoryConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Path      string `yaml:"path"`
	Retention string `yaml:"retention"`
}

type rawServerConfig struct {
	Addr       string `yaml:"addr"`
	SessionTTL string `yaml:"session_ttl"`
}

// Load reads and parses the YAML config file at path, validates it, and returns Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse expands environment variables in data and decodes it into a validated Config.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	aiTimeout, err := parseDuration("ai.timeout", raw.AI.Timeout, 60*time.Second)
	if err != nil {
		return nil, err
	}
	sessionTTL, err := parseDuration("server.session_ttl", raw.Server.SessionTTL, 2*time.Hour)
	if err != nil {
		return nil, err
	}

	provider := raw.AI.Provider
	if provider == "" {
		provider = ProviderGemini
	}
	aiModel := raw.AI.Model
	if aiModel == "" {
		aiModel = defaultGeminiModel
		if provider == ProviderOpenAI {
			aiModel = defaultOpenAIModel
		}
	}
	baseURL := raw.AI.BaseURL
	if baseURL == "" && provider == ProviderOpenAI {
		baseURL = defaultOpenAIBaseURL
	}

	maxTokens := raw.AI.MaxTokens
	if maxTokens == 0 {
		maxTokens = defaultMaxTokens
	}
	verifyKey := true
	if raw.AI.VerifyKey != nil {
		verifyKey = *raw.AI.VerifyKey
	}

	gen := GenerationConfig{
		Brand:              raw.Generation.Brand,
		DefaultTemperature: floatOr(raw.Generation.DefaultTemperature, model.DefaultTemperature),
		FAQLanguage:        model.Language(raw.Generation.FAQLanguage),
		FAQTemperature:     floatOr(raw.Generation.FAQTemperature, model.DefaultTemperature),
		PromptFile:         raw.Generation.PromptFile,
	}
	if gen.Brand == "" {
		gen.Brand = defaultBrand
	}
	if gen.FAQLanguage == "" {
		gen.FAQLanguage = model.BaseLanguage
	}

	server := ServerConfig{Addr: raw.Server.Addr, SessionTTL: sessionTTL}
	if server.Addr == "" {
		server.Addr = defaultAddr
	}

	retention, err := parseDuration("history.retention", raw.History.Retention, 0)
	if err != nil {
		return nil, err
	}
	history := HistoryConfig{Enabled: raw.History.Enabled, Path: raw.History.Path, Retention: retention}
	if history.Path == "" {
		history.Path = defaultHistoryPath
	}

	cfg := &Config{
		AI: AIConfig{
			Provider: provider,
			Model:    aiModel,
			APIKey:   raw.AI.APIKey,
			BaseURL:  baseURL,
			Timeout:  aiTimeout,

			MaxTokens: maxTokens,
			VerifyKey: verifyKey,
		},
		Generation: gen,
		Server:     server,
		History:    history,
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func parseDuration(field, s string, def time.Duration) (time.Duration, error) {
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("parse %s %q: %w", field, s, err)
	}
	return d, nil
}

func floatOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func validate(cfg *Config) error {
	switch cfg.AI.Provider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("ai.provider must be %q or %q, got %q", ProviderGemini, ProviderOpenAI, cfg.AI.Provider)
	}
	if cfg.AI.APIKey == "" {
		return fmt.Errorf("ai.api_key is required")
	}
	if cfg.AI.Timeout <= 0 {
		return fmt.Errorf("ai.timeout must be positive, got %v", cfg.AI.Timeout)
	}
	if cfg.AI.MaxTokens <= 0 {
		return fmt.Errorf("ai.max_tokens must be positive, got %d", cfg.AI.MaxTokens)
	}

	if t := cfg.Generation.DefaultTemperature; t < 0 || t > 1 {
		return fmt.Errorf("generation.default_temperature must be between 0 and 1, got %v", t)
	}
	if t := cfg.Generation.FAQTemperature; t < 0 || t > 1 {
		return fmt.Errorf("generation.faq_temperature must be between 0 and 1, got %v", t)
	}
	if !cfg.Generation.FAQLanguage.Valid() {
		return fmt.Errorf("generation.faq_language %q is not a supported language", cfg.Generation.FAQLanguage)
	}

	if cfg.Server.SessionTTL <= 0 {
		return fmt.Errorf("server.session_ttl must be positive, got %v", cfg.Server.SessionTTL)
	}
	if cfg.History.Retention < 0 {
		return fmt.Errorf("history.retention must not be negative, got %v", cfg.History.Retention)
	}

	return nil
}
