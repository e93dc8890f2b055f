package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"text/template"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/kshitij-139/GEM-JD/internal/ai"
	"github.com/kshitij-139/GEM-JD/internal/config"
	"github.com/kshitij-139/GEM-JD/internal/generator"
	"github.com/kshitij-139/GEM-JD/internal/model"
	"github.com/kshitij-139/GEM-JD/internal/store"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "gemjd",
	Short: "Job description and interview FAQ generator",
	Long:  "GEM-JD drafts job descriptions and interview question lists with a large language model.",
	// Default to `serve` so that `gemjd` with no args starts the web form.
	RunE:         runServe,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: GEMJD_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig loads .env (if present) and then resolves the config path and parses it.
// Priority: explicit path arg > GEMJD_CONFIG env var > "./config.yaml"
func loadConfig(path string) (*config.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	if path == "" {
		if env := os.Getenv("GEMJD_CONFIG"); env != "" {
			path = env
		} else {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

func setupProvider(ctx context.Context, cfg *config.Config, logger *slog.Logger) (ai.LLMProvider, error) {
	var provider ai.LLMProvider
	switch cfg.AI.Provider {
	case config.ProviderOpenAI:
		logger.Info("using openai provider", "model", cfg.AI.Model, "base_url", cfg.AI.BaseURL, "max_tokens", cfg.AI.MaxTokens)
		httpClient := &http.Client{Timeout: cfg.AI.Timeout}
		provider = ai.NewOpenAIProvider(cfg.AI.BaseURL, cfg.AI.APIKey, cfg.AI.Model, cfg.AI.MaxTokens, httpClient)
	default:
		logger.Info("using gemini provider", "model", cfg.AI.Model, "max_tokens", cfg.AI.MaxTokens)
		p, err := ai.NewGeminiProvider(ctx, cfg.AI.APIKey, cfg.AI.Model, cfg.AI.MaxTokens, cfg.AI.Timeout)
		if err != nil {
			return nil, err
		}
		provider = p
	}

	if v, ok := provider.(ai.KeyVerifier); ok && cfg.AI.VerifyKey {
		vctx, cancel := context.WithTimeout(ctx, cfg.AI.Timeout)
		defer cancel()
		if err := v.Verify(vctx); err != nil {
			return nil, fmt.Errorf("check ai.api_key: %w", err)
		}
		logger.Debug("api key accepted", "provider", cfg.AI.Provider)
	}
	return provider, nil
}

func setupBuilder(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*ai.Builder, error) {
	provider, err := setupProvider(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	var jdTmpl *template.Template
	if cfg.Generation.PromptFile != "" {
		jdTmpl, err = ai.LoadJDTemplate(cfg.Generation.PromptFile)
		if err != nil {
			return nil, err
		}
		logger.Info("loaded job description prompt", "path", cfg.Generation.PromptFile)
	}

	return ai.NewBuilder(provider, jdTmpl, ai.BuilderConfig{
		Brand:          cfg.Generation.Brand,
		FAQLanguage:    cfg.Generation.FAQLanguage,
		FAQTemperature: cfg.Generation.FAQTemperature,
	}, logger), nil
}

// setupHistory opens the archive when enabled. The returned close func is never nil.
func setupHistory(cfg *config.Config, logger *slog.Logger) (model.HistoryStore, func(), error) {
	if !cfg.History.Enabled {
		return store.NewNopStore(), func() {}, nil
	}
	sqlStore, err := store.NewSQLiteStore(cfg.History.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("open history: %w", err)
	}
	logger.Info("history enabled", "path", cfg.History.Path)
	return sqlStore, func() { sqlStore.Close() }, nil
}

// setupService wires provider, prompts and history into a generator.Service.
func setupService(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*generator.Service, model.HistoryStore, func(), error) {
	builder, err := setupBuilder(ctx, cfg, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	history, closeHistory, err := setupHistory(cfg, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	return generator.NewService(builder, history, logger), history, closeHistory, nil
}
