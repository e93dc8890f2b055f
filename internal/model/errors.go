package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyCompletion is returned when the model answers with no text.
var ErrEmptyCompletion = errors.New("model returned an empty completion")

// ValidationError lists the form fields that blocked a submission.
// No model call is made when one is returned.
type ValidationError struct {
	Fields  []string
	Invalid bool // false: fields are empty; true: fields hold unsupported values
}

func (e *ValidationError) Error() string {
	if e.Invalid {
		return "invalid value for: " + strings.Join(e.Fields, ", ")
	}
	return "please fill all required fields: " + strings.Join(e.Fields, ", ")
}

// GenerationError wraps a failed model call for one artifact.
type GenerationError struct {
	Kind ArtifactKind
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("failed to generate %s: %v", e.Kind.Label(), e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// HTTPError carries the status of a non-2xx model API response.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}
