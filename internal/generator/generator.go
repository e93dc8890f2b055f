package generator

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/kshitij-139/GEM-JD/internal/model"
	"github.com/kshitij-139/GEM-JD/internal/session"
)

// Result is the outcome of one submission. Generation failures are reported
// per artifact; they never abort the caller.
type Result struct {
	JD         *model.Artifact
	FAQ        *model.Artifact
	FAQCached  bool
	JDErr      error
	FAQErr     error
	Validation *model.ValidationError
}

// Service owns the per-submission pipeline:
// validate → job description → FAQs (memoized per session) → archive.
type Service struct {
	gen     model.TextGenerator
	history model.HistoryStore
	logger  *slog.Logger
	now     func() time.Time
}

// NewService creates a service wired with its dependencies.
func NewService(gen model.TextGenerator, history model.HistoryStore, logger *slog.Logger) *Service {
	return &Service{
		gen:     gen,
		history: history,
		logger:  logger,
		now:     time.Now,
	}
}

// Generate handles one user submission against sess. The job description is
// always regenerated; FAQs are generated only when the job identity differs
// from the one cached in the session.
func (s *Service) Generate(ctx context.Context, sess *session.Session, req model.JobRequest) Result {
	var res Result
	sess.Do(func(sess *session.Session) {
		res = s.generate(ctx, sess, req)
	})
	return res
}

// Reject records a submission that failed before validation (for example an
// unparsable temperature) so the form re-renders with a notice. No model call
// is made.
func (s *Service) Reject(sess *session.Session, req model.JobRequest, vErr *model.ValidationError) {
	sess.Do(func(sess *session.Session) {
		submitted := req
		sess.State.LastRequest = &submitted
		sess.State.Validation = vErr
	})
	s.logger.Info("submission rejected", "session", sess.ID, "fields", vErr.Fields)
}

func (s *Service) generate(ctx context.Context, sess *session.Session, req model.JobRequest) Result {
	st := &sess.State
	submitted := req
	st.LastRequest = &submitted
	st.Validation = nil

	if err := req.Validate(); err != nil {
		var vErr *model.ValidationError
		if !errors.As(err, &vErr) {
			vErr = &model.ValidationError{Fields: []string{err.Error()}}
		}
		st.Validation = vErr
		s.logger.Info("submission rejected", "session", sess.ID, "fields", vErr.Fields)
		return Result{Validation: vErr}
	}

	jdText, err := s.gen.GenerateJD(ctx, req)
	if err != nil {
		// Without a job description there is nothing to pair FAQs with.
		st.JDErr = err
		s.logger.Error("job description failed", "session", sess.ID, "title", req.Title, "error", err)
		return Result{JDErr: err}
	}

	jd := &model.Artifact{
		Kind:        model.JobDescription,
		Text:        jdText,
		Language:    req.Language,
		Temperature: req.Temperature,
		GeneratedAt: s.now(),
	}
	st.JD = jd
	st.JDErr = nil
	s.archive(ctx, sess.ID, req.Identity(), jd)

	res := Result{JD: jd}

	id := req.Identity()
	faqText, cached, err := sess.FAQs.GetOrGenerate(id, func() (string, error) {
		return s.gen.GenerateFAQs(ctx, id)
	})
	if err != nil {
		st.FAQErr = err
		res.FAQErr = err
		s.logger.Error("faq generation failed", "session", sess.ID, "title", req.Title, "error", err)
		return res
	}
	st.FAQErr = nil
	res.FAQCached = cached

	if !cached || st.FAQ == nil {
		lang, temp := s.gen.FAQParams()
		st.FAQ = &model.Artifact{
			Kind:        model.FAQList,
			Text:        faqText,
			Language:    lang,
			Temperature: temp,
			GeneratedAt: s.now(),
		}
	}
	if !cached {
		s.archive(ctx, sess.ID, id, st.FAQ)
	}
	res.FAQ = st.FAQ

	s.logger.Info("submission complete",
		"session", sess.ID,
		"title", req.Title,
		"language", req.Language,
		"temperature", req.Temperature,
		"faq_cached", cached,
	)
	return res
}

// archive records a generated artifact. Failures are logged only.
func (s *Service) archive(ctx context.Context, sessionID string, id model.JobIdentity, a *model.Artifact) {
	if s.history == nil {
		return
	}
	err := s.history.Record(ctx, model.GenerationRecord{
		SessionID:   sessionID,
		Kind:        a.Kind,
		Title:       id.Title,
		Function:    id.Function,
		Experience:  id.Experience,
		Language:    a.Language,
		Temperature: a.Temperature,
		Text:        a.Text,
		CreatedAt:   a.GeneratedAt,
	})
	if err != nil {
		s.logger.Warn("archiving generation failed", "kind", a.Kind, "error", err)
	}
}
