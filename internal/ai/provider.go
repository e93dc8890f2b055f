package ai

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/kshitij-139/GEM-JD/internal/model"
)

// DefaultMaxTokens caps the output of a single call when no limit is configured.
const DefaultMaxTokens = 8192

// LLMProvider sends a single prompt to a hosted model at the given
// temperature and returns the raw text response.
type LLMProvider interface {
	Complete(ctx context.Context, prompt string, temperature float64) (string, error)
}

// KeyVerifier is implemented by providers that can check their credential
// without generating text.
type KeyVerifier interface {
	Verify(ctx context.Context) error
}

// getOK issues a GET with one auth header and maps any non-200 reply to a
// *model.HTTPError.
func getOK(ctx context.Context, client *http.Client, url, header, value string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create verify request: %w", err)
	}
	req.Header.Set(header, value)

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("verify request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &model.HTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return nil
}
