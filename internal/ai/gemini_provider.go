package ai

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"

	"github.com/kshitij-139/GEM-JD/internal/model"
)

// DefaultGeminiModel is used when ai.model is empty and the provider is gemini.
const DefaultGeminiModel = "gemini-2.5-pro"

const geminiAPIBase = "https://generativelanguage.googleapis.com/v1beta"

// GeminiProvider calls Google Gemini through langchaingo.
type GeminiProvider struct {
	llm       llms.Model
	timeout   time.Duration
	maxTokens int

	// used by Verify only
	apiBase    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewGeminiProvider creates a Gemini client authorized with apiKey. The key is
// not contacted here; call Verify to check it.
func NewGeminiProvider(ctx context.Context, apiKey, modelName string, maxTokens int, timeout time.Duration) (*GeminiProvider, error) {
	if modelName == "" {
		modelName = DefaultGeminiModel
	}
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(modelName),
		googleai.WithDefaultMaxTokens(maxTokens),
	)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	p := newGeminiProvider(llm, timeout, maxTokens)
	p.apiBase = geminiAPIBase
	p.apiKey = apiKey
	p.model = modelName
	p.httpClient = &http.Client{Timeout: timeout}
	return p, nil
}

func newGeminiProvider(llm llms.Model, timeout time.Duration, maxTokens int) *GeminiProvider {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return &GeminiProvider{llm: llm, timeout: timeout, maxTokens: maxTokens, httpClient: http.DefaultClient}
}

// Complete sends prompt as a single human message.
func (p *GeminiProvider) Complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	text, err := llms.GenerateFromSinglePrompt(ctx, p.llm, prompt,
		llms.WithTemperature(temperature),
		llms.WithMaxTokens(p.maxTokens),
	)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return "", model.ErrEmptyCompletion
	}
	return text, nil
}

// Verify fetches the configured model's metadata, which fails with 400/403
// for a bad key and 404 for an unknown model. No tokens are spent.
func (p *GeminiProvider) Verify(ctx context.Context) error {
	u := strings.TrimRight(p.apiBase, "/") + "/models/" + url.PathEscape(p.model)
	if err := getOK(ctx, p.httpClient, u, "x-goog-api-key", p.apiKey); err != nil {
		return fmt.Errorf("verify gemini key: %w", err)
	}
	return nil
}
