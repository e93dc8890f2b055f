package model

import (
	"context"
	"time"
)

// JobRequest is one form submission. Treat it as immutable once built.
type JobRequest struct {
	Title       string
	Function    Function
	Experience  ExperienceBand
	Skills      string
	Language    Language
	Temperature float64
}

// JobIdentity is the FAQ memoization key. Language and temperature are
// deliberately absent: FAQs are generated in a fixed language and temperature.
type JobIdentity struct {
	Title      string
	Function   Function
	Experience ExperienceBand
}

// Identity derives the FAQ cache key for r.
func (r JobRequest) Identity() JobIdentity {
	return JobIdentity{
		Title:      r.Title,
		Function:   r.Function,
		Experience: r.Experience,
	}
}

// Validate checks required fields first, then enum membership and the
// temperature range. Returns nil or a *ValidationError.
func (r JobRequest) Validate() error {
	var missing []string
	if r.Title == "" {
		missing = append(missing, "title")
	}
	if r.Function == "" {
		missing = append(missing, "function")
	}
	if r.Experience == "" {
		missing = append(missing, "experience")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}

	var invalid []string
	if !r.Function.Valid() {
		invalid = append(invalid, "function")
	}
	if !r.Experience.Valid() {
		invalid = append(invalid, "experience")
	}
	if !r.Language.Valid() {
		invalid = append(invalid, "language")
	}
	if r.Temperature < 0 || r.Temperature > 1 {
		invalid = append(invalid, "temperature")
	}
	if len(invalid) > 0 {
		return &ValidationError{Fields: invalid, Invalid: true}
	}
	return nil
}

// ArtifactKind names one of the two generated outputs.
type ArtifactKind string

const (
	JobDescription ArtifactKind = "job_description"
	FAQList        ArtifactKind = "faq_list"
)

// Label returns a human-readable name for k.
func (k ArtifactKind) Label() string {
	switch k {
	case JobDescription:
		return "Job Description"
	case FAQList:
		return "Interview FAQs"
	default:
		return string(k)
	}
}

// Artifact is generated text plus the parameters it was generated with.
type Artifact struct {
	Kind        ArtifactKind
	Text        string
	Language    Language
	Temperature float64
	GeneratedAt time.Time
}

// TextGenerator produces the two artifacts from the model.
type TextGenerator interface {
	GenerateJD(ctx context.Context, req JobRequest) (string, error)
	GenerateFAQs(ctx context.Context, id JobIdentity) (string, error)
	FAQParams() (Language, float64)
}

// GenerationRecord is one successfully generated artifact, as archived.
type GenerationRecord struct {
	ID          string
	SessionID   string
	Kind        ArtifactKind
	Title       string
	Function    Function
	Experience  ExperienceBand
	Language    Language
	Temperature float64
	Text        string
	CreatedAt   time.Time
}

// HistoryStore archives generated artifacts. It is write-mostly and never
// consulted by the FAQ cache.
type HistoryStore interface {
	Record(ctx context.Context, rec GenerationRecord) error
	Recent(ctx context.Context, limit int) ([]GenerationRecord, error)
	Cleanup(ctx context.Context, olderThan time.Duration) (int64, error)
}
