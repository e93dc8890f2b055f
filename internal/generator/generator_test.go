package generator

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/kshitij-139/GEM-JD/internal/ai"
	"github.com/kshitij-139/GEM-JD/internal/model"
	"github.com/kshitij-139/GEM-JD/internal/session"
)

// --- Mock/Fake Implementations ---

// FakeGenerator records calls and returns canned text or errors.
type FakeGenerator struct {
	JDText  string
	JDErr   error
	FAQText string
	FAQErr  error

	JDCalls  []model.JobRequest
	FAQCalls []model.JobIdentity
}

func (g *FakeGenerator) GenerateJD(_ context.Context, req model.JobRequest) (string, error) {
	g.JDCalls = append(g.JDCalls, req)
	return g.JDText, g.JDErr
}

func (g *FakeGenerator) GenerateFAQs(_ context.Context, id model.JobIdentity) (string, error) {
	g.FAQCalls = append(g.FAQCalls, id)
	return g.FAQText, g.FAQErr
}

func (g *FakeGenerator) FAQParams() (model.Language, float64) {
	return model.BaseLanguage, 0.7
}

// RecordingHistory keeps archived records in memory.
type RecordingHistory struct {
	Records []model.GenerationRecord
	Err     error
}

func (h *RecordingHistory) Record(_ context.Context, rec model.GenerationRecord) error {
	if h.Err != nil {
		return h.Err
	}
	h.Records = append(h.Records, rec)
	return nil
}

func (h *RecordingHistory) Recent(context.Context, int) ([]model.GenerationRecord, error) {
	return h.Records, nil
}

func (h *RecordingHistory) Cleanup(context.Context, time.Duration) (int64, error) { return 0, nil }

// recordingProvider is an ai.LLMProvider that records prompt parameters.
type recordingProvider struct {
	calls []providerCall
}

type providerCall struct {
	prompt      string
	temperature float64
}

func (p *recordingProvider) Complete(_ context.Context, prompt string, temperature float64) (string, error) {
	p.calls = append(p.calls, providerCall{prompt: prompt, temperature: temperature})
	return "generated", nil
}

// --- Helpers ---

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func hrHead() model.JobRequest {
	return model.JobRequest{
		Title:       "HR Head",
		Function:    "Human Resources & Training",
		Experience:  "Senior: 7-10 years",
		Skills:      "Negotiation",
		Language:    "Hindi",
		Temperature: 0.5,
	}
}

func newTestService(gen model.TextGenerator, h model.HistoryStore) *Service {
	return NewService(gen, h, discardLogger())
}

// --- Tests ---

func TestGenerate_OneJDCallWithRequestParams(t *testing.T) {
	gen := &FakeGenerator{JDText: "jd", FAQText: "faqs"}
	svc := newTestService(gen, nil)

	res := svc.Generate(context.Background(), session.New(), hrHead())

	if res.JDErr != nil || res.FAQErr != nil || res.Validation != nil {
		t.Fatalf("unexpected errors: %+v", res)
	}
	if len(gen.JDCalls) != 1 {
		t.Fatalf("JD calls = %d, want 1", len(gen.JDCalls))
	}
	if gen.JDCalls[0].Language != "Hindi" || gen.JDCalls[0].Temperature != 0.5 {
		t.Errorf("JD call used %q/%v, want Hindi/0.5", gen.JDCalls[0].Language, gen.JDCalls[0].Temperature)
	}
	if res.JD.Text != "jd" || res.FAQ.Text != "faqs" {
		t.Errorf("artifacts = %q / %q", res.JD.Text, res.FAQ.Text)
	}
	if res.FAQ.Language != model.BaseLanguage || res.FAQ.Temperature != 0.7 {
		t.Errorf("FAQ artifact params = %q/%v, want English/0.7", res.FAQ.Language, res.FAQ.Temperature)
	}
}

func TestGenerate_SameIdentityReusesFAQs(t *testing.T) {
	gen := &FakeGenerator{JDText: "jd", FAQText: "faqs v1"}
	svc := newTestService(gen, nil)
	sess := session.New()

	svc.Generate(context.Background(), sess, hrHead())

	second := hrHead()
	second.Language = "Tamil"
	second.Temperature = 0.2
	gen.FAQText = "faqs v2"
	res := svc.Generate(context.Background(), sess, second)

	if len(gen.JDCalls) != 2 {
		t.Errorf("JD calls = %d, want 2", len(gen.JDCalls))
	}
	if len(gen.FAQCalls) != 1 {
		t.Errorf("FAQ calls = %d, want 1", len(gen.FAQCalls))
	}
	if !res.FAQCached || res.FAQ.Text != "faqs v1" {
		t.Errorf("second FAQ = (%q, cached=%v), want reused faqs v1", res.FAQ.Text, res.FAQCached)
	}
}

func TestGenerate_DifferentIdentityRegenerates(t *testing.T) {
	gen := &FakeGenerator{JDText: "jd", FAQText: "hr faqs"}
	svc := newTestService(gen, nil)
	sess := session.New()

	svc.Generate(context.Background(), sess, hrHead())

	other := hrHead()
	other.Experience = "Executive: More than 10 years"
	gen.FAQText = "exec faqs"
	res := svc.Generate(context.Background(), sess, other)

	if len(gen.FAQCalls) != 2 {
		t.Fatalf("FAQ calls = %d, want 2", len(gen.FAQCalls))
	}
	if res.FAQCached || res.FAQ.Text != "exec faqs" {
		t.Errorf("FAQ = (%q, cached=%v), want fresh exec faqs", res.FAQ.Text, res.FAQCached)
	}
	if id, text, _ := sess.FAQs.Peek(); id != other.Identity() || text != "exec faqs" {
		t.Errorf("cache holds %+v/%q, want the most recent identity only", id, text)
	}
}

func TestGenerate_ValidationMakesNoCalls(t *testing.T) {
	for _, field := range []string{"title", "function", "experience"} {
		t.Run(field, func(t *testing.T) {
			gen := &FakeGenerator{JDText: "jd", FAQText: "faqs"}
			svc := newTestService(gen, nil)
			req := hrHead()
			switch field {
			case "title":
				req.Title = ""
			case "function":
				req.Function = ""
			case "experience":
				req.Experience = ""
			}

			res := svc.Generate(context.Background(), session.New(), req)

			if res.Validation == nil {
				t.Fatal("expected a validation error")
			}
			if len(res.Validation.Fields) != 1 || res.Validation.Fields[0] != field {
				t.Errorf("Fields = %v, want [%s]", res.Validation.Fields, field)
			}
			if len(gen.JDCalls)+len(gen.FAQCalls) != 0 {
				t.Errorf("external calls = %d, want 0", len(gen.JDCalls)+len(gen.FAQCalls))
			}
		})
	}
}

func TestGenerate_JDErrorSkipsFAQ(t *testing.T) {
	gen := &FakeGenerator{JDErr: &model.GenerationError{Kind: model.JobDescription, Err: errors.New("auth")}}
	svc := newTestService(gen, nil)
	sess := session.New()

	res := svc.Generate(context.Background(), sess, hrHead())

	var genErr *model.GenerationError
	if !errors.As(res.JDErr, &genErr) {
		t.Fatalf("JDErr = %v, want *model.GenerationError", res.JDErr)
	}
	if len(gen.FAQCalls) != 0 {
		t.Errorf("FAQ calls = %d, want 0", len(gen.FAQCalls))
	}
	if _, _, ok := sess.FAQs.Peek(); ok {
		t.Error("FAQ cache should stay empty")
	}
}

func TestGenerate_FAQErrorKeepsPriorCacheAndJD(t *testing.T) {
	gen := &FakeGenerator{JDText: "jd", FAQText: "hr faqs"}
	svc := newTestService(gen, nil)
	sess := session.New()
	svc.Generate(context.Background(), sess, hrHead())

	other := hrHead()
	other.Title = "HR Lead"
	gen.JDText = "lead jd"
	gen.FAQErr = errors.New("quota exceeded")
	res := svc.Generate(context.Background(), sess, other)

	if res.FAQErr == nil {
		t.Fatal("expected FAQ error")
	}
	if res.JD == nil || res.JD.Text != "lead jd" {
		t.Error("JD should still be produced when FAQs fail")
	}
	if id, text, _ := sess.FAQs.Peek(); id != hrHead().Identity() || text != "hr faqs" {
		t.Errorf("cache = %+v/%q, want prior entry undisturbed", id, text)
	}

	// The failed identity is not cached: resubmitting calls the model again.
	gen.FAQErr = nil
	gen.FAQText = "lead faqs"
	res = svc.Generate(context.Background(), sess, other)
	if res.FAQCached || res.FAQ.Text != "lead faqs" {
		t.Errorf("retry FAQ = (%q, cached=%v), want fresh lead faqs", res.FAQ.Text, res.FAQCached)
	}
}

func TestGenerate_ArchivesOnlyFreshArtifacts(t *testing.T) {
	gen := &FakeGenerator{JDText: "jd", FAQText: "faqs"}
	h := &RecordingHistory{}
	svc := newTestService(gen, h)
	sess := session.New()

	svc.Generate(context.Background(), sess, hrHead())
	svc.Generate(context.Background(), sess, hrHead())

	var jds, faqs int
	for _, r := range h.Records {
		switch r.Kind {
		case model.JobDescription:
			jds++
		case model.FAQList:
			faqs++
		}
		if r.SessionID != sess.ID {
			t.Errorf("record session = %q, want %q", r.SessionID, sess.ID)
		}
	}
	if jds != 2 || faqs != 1 {
		t.Errorf("archived %d JDs and %d FAQ lists, want 2 and 1", jds, faqs)
	}
}

func TestGenerate_HistoryFailureDoesNotChangeResult(t *testing.T) {
	gen := &FakeGenerator{JDText: "jd", FAQText: "faqs"}
	svc := newTestService(gen, &RecordingHistory{Err: errors.New("disk full")})

	res := svc.Generate(context.Background(), session.New(), hrHead())
	if res.JDErr != nil || res.FAQErr != nil || res.JD == nil || res.FAQ == nil {
		t.Errorf("result = %+v, want full success", res)
	}
}

// TestGenerate_ExampleScenario walks the documented Hindi → Tamil resubmission
// through the real prompt builder.
func TestGenerate_ExampleScenario(t *testing.T) {
	p := &recordingProvider{}
	builder := ai.NewBuilder(p, nil, ai.BuilderConfig{
		Brand:          "Reliance Jio",
		FAQLanguage:    model.BaseLanguage,
		FAQTemperature: 0.7,
	}, discardLogger())
	svc := newTestService(builder, nil)
	sess := session.New()

	svc.Generate(context.Background(), sess, hrHead())
	if len(p.calls) != 2 {
		t.Fatalf("calls after first submit = %d, want 2", len(p.calls))
	}
	jd, faq := p.calls[0], p.calls[1]
	if jd.temperature != 0.5 || !strings.Contains(jd.prompt, "Hindi") {
		t.Errorf("JD call = %v / Hindi? %v", jd.temperature, strings.Contains(jd.prompt, "Hindi"))
	}
	if faq.temperature != 0.7 || !strings.Contains(faq.prompt, "in English") {
		t.Errorf("FAQ call temperature = %v, want 0.7 in English", faq.temperature)
	}

	second := hrHead()
	second.Language = "Tamil"
	second.Temperature = 0.2
	svc.Generate(context.Background(), sess, second)

	if len(p.calls) != 3 {
		t.Fatalf("calls after resubmit = %d, want 3", len(p.calls))
	}
	if p.calls[2].temperature != 0.2 || !strings.Contains(p.calls[2].prompt, "Tamil") {
		t.Error("resubmitted JD should use Tamil at 0.2")
	}
}

func TestReject_RecordsNoticeWithoutCalls(t *testing.T) {
	gen := &FakeGenerator{JDText: "jd", FAQText: "faqs"}
	svc := newTestService(gen, nil)
	sess := session.New()

	req := hrHead()
	svc.Reject(sess, req, &model.ValidationError{Fields: []string{"temperature"}, Invalid: true})

	if len(gen.JDCalls)+len(gen.FAQCalls) != 0 {
		t.Errorf("calls = %d/%d, want none", len(gen.JDCalls), len(gen.FAQCalls))
	}
	v := Snapshot(sess, DefaultRequest(0.7))
	if v.Notice != "invalid value for: temperature" {
		t.Errorf("Notice = %q", v.Notice)
	}
	if v.Form.Title != req.Title {
		t.Errorf("Form.Title = %q, want the submitted title", v.Form.Title)
	}
}
