package ai

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"text/template"

	"github.com/kshitij-139/GEM-JD/internal/model"
)

var _ model.TextGenerator = (*Builder)(nil)

// BuilderConfig holds the fixed generation parameters.
type BuilderConfig struct {
	Brand          string
	FAQLanguage    model.Language
	FAQTemperature float64
}

// Builder renders prompts from job fields and submits them to an LLMProvider.
type Builder struct {
	provider LLMProvider
	jdTmpl   *template.Template
	cfg      BuilderConfig
	logger   *slog.Logger
}

// NewBuilder wires a Builder. jdTmpl may be nil to use the embedded prompt.
func NewBuilder(provider LLMProvider, jdTmpl *template.Template, cfg BuilderConfig, logger *slog.Logger) *Builder {
	if jdTmpl == nil {
		jdTmpl = DefaultJDTemplate()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Builder{
		provider: provider,
		jdTmpl:   jdTmpl,
		cfg:      cfg,
		logger:   logger,
	}
}

// FAQParams returns the pinned FAQ language and temperature.
func (b *Builder) FAQParams() (model.Language, float64) {
	return b.cfg.FAQLanguage, b.cfg.FAQTemperature
}

// GenerateJD renders the job description prompt in the requested language and
// calls the model at the requested temperature.
func (b *Builder) GenerateJD(ctx context.Context, req model.JobRequest) (string, error) {
	vars := map[string]string{
		PlaceholderJobTitle:   req.Title,
		PlaceholderIndustry:   string(req.Function),
		PlaceholderExperience: string(req.Experience),
		PlaceholderSkills:     req.Skills,
		PlaceholderLanguage:   string(req.Language),
		PlaceholderBrand:      b.cfg.Brand,
	}
	return b.generate(ctx, model.JobDescription, b.jdTmpl, vars, req.Language, req.Temperature)
}

// GenerateFAQs renders the interview-question prompt. Language and
// temperature are pinned by config; the caller's choices never reach here.
func (b *Builder) GenerateFAQs(ctx context.Context, id model.JobIdentity) (string, error) {
	vars := map[string]string{
		PlaceholderJobTitle:   id.Title,
		PlaceholderIndustry:   string(id.Function),
		PlaceholderExperience: string(id.Experience),
		PlaceholderLanguage:   string(b.cfg.FAQLanguage),
		PlaceholderBrand:      b.cfg.Brand,
	}
	return b.generate(ctx, model.FAQList, FAQTemplate, vars, b.cfg.FAQLanguage, b.cfg.FAQTemperature)
}

func (b *Builder) generate(ctx context.Context, kind model.ArtifactKind, tmpl *template.Template, vars map[string]string, lang model.Language, temperature float64) (string, error) {
	prompt, err := renderPrompt(tmpl, vars)
	if err != nil {
		return "", &model.GenerationError{Kind: kind, Err: err}
	}

	b.logger.Debug("calling model",
		"kind", kind,
		"language", lang,
		"temperature", temperature,
		"prompt_chars", len(prompt),
	)

	text, err := b.provider.Complete(ctx, prompt, temperature)
	if err != nil {
		b.logger.Warn("generation failed", "kind", kind, "error", err)
		return "", &model.GenerationError{Kind: kind, Err: err}
	}

	b.logger.Info("generated", "kind", kind, "language", lang, "temperature", temperature, "chars", len(text))
	return text, nil
}

func renderPrompt(tmpl *template.Template, vars map[string]string) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, vars); err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}
	return buf.String(), nil
}
