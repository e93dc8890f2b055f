package ai

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tmc/langchaingo/llms"

	"github.com/kshitij-139/GEM-JD/internal/model"
)

// fakeModel is a stub llms.Model that records the last call.
type fakeModel struct {
	text        string
	err         error
	prompt      string
	temperature float64
	maxTokens   int
	hasDeadline bool
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	var opts llms.CallOptions
	for _, o := range options {
		o(&opts)
	}
	f.temperature = opts.Temperature
	f.maxTokens = opts.MaxTokens
	_, f.hasDeadline = ctx.Deadline()
	if len(messages) > 0 && len(messages[0].Parts) > 0 {
		if tc, ok := messages[0].Parts[0].(llms.TextContent); ok {
			f.prompt = tc.Text
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: f.text}}}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

func TestGemini_ForwardsPromptAndTemperature(t *testing.T) {
	fm := &fakeModel{text: "1. Tell me about yourself."}
	p := newGeminiProvider(fm, 0, 0)

	got, err := p.Complete(context.Background(), "ask questions", 0.3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "1. Tell me about yourself." {
		t.Errorf("got %q", got)
	}
	if fm.prompt != "ask questions" {
		t.Errorf("prompt = %q, want %q", fm.prompt, "ask questions")
	}
	if fm.temperature != 0.3 {
		t.Errorf("temperature = %v, want 0.3", fm.temperature)
	}
	if fm.hasDeadline {
		t.Error("no deadline expected when timeout is zero")
	}
}

func TestGemini_AppliesTimeout(t *testing.T) {
	fm := &fakeModel{text: "ok"}
	p := newGeminiProvider(fm, time.Minute, 0)

	if _, err := p.Complete(context.Background(), "x", 0.7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !fm.hasDeadline {
		t.Error("expected a context deadline when timeout is set")
	}
}

func TestGemini_WrapsModelError(t *testing.T) {
	cause := errors.New("API key not valid")
	p := newGeminiProvider(&fakeModel{err: cause}, 0, 0)

	_, err := p.Complete(context.Background(), "x", 0.7)
	if !errors.Is(err, cause) {
		t.Fatalf("err = %v, want wrapped %v", err, cause)
	}
}

func TestGemini_EmptyTextIsEmptyCompletion(t *testing.T) {
	p := newGeminiProvider(&fakeModel{text: ""}, 0, 0)

	_, err := p.Complete(context.Background(), "x", 0.7)
	if !errors.Is(err, model.ErrEmptyCompletion) {
		t.Fatalf("err = %v, want ErrEmptyCompletion", err)
	}
}

func TestGemini_SendsMaxTokens(t *testing.T) {
	tests := []struct {
		name      string
		maxTokens int
		want      int
	}{
		{"default", 0, DefaultMaxTokens},
		{"configured", 12000, 12000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fm := &fakeModel{text: "ok"}
			p := newGeminiProvider(fm, 0, tt.maxTokens)
			if _, err := p.Complete(context.Background(), "write a JD", 0.5); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if fm.maxTokens != tt.want {
				t.Errorf("MaxTokens = %d, want %d", fm.maxTokens, tt.want)
			}
		})
	}
}

func newVerifyingGemini(t *testing.T, status int) (*GeminiProvider, *string, *string) {
	t.Helper()
	var gotPath, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		w.WriteHeader(status)
		w.Write([]byte(`{"error":{"message":"API key not valid"}}`))
	}))
	t.Cleanup(srv.Close)

	p := newGeminiProvider(&fakeModel{}, 0, 0)
	p.apiBase = srv.URL
	p.apiKey = "g-key"
	p.model = "gemini-2.5-pro"
	p.httpClient = srv.Client()
	return p, &gotPath, &gotKey
}

func TestGemini_VerifyAcceptsValidKey(t *testing.T) {
	p, gotPath, gotKey := newVerifyingGemini(t, http.StatusOK)

	if err := p.Verify(context.Background()); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if *gotPath != "/models/gemini-2.5-pro" {
		t.Errorf("path = %q, want /models/gemini-2.5-pro", *gotPath)
	}
	if *gotKey != "g-key" {
		t.Errorf("x-goog-api-key = %q, want g-key", *gotKey)
	}
}

func TestGemini_VerifyRejectsBadKey(t *testing.T) {
	p, _, _ := newVerifyingGemini(t, http.StatusBadRequest)

	err := p.Verify(context.Background())
	var httpErr *model.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *model.HTTPError, got %v", err)
	}
	if httpErr.StatusCode != http.StatusBadRequest {
		t.Errorf("StatusCode = %d, want 400", httpErr.StatusCode)
	}
}
