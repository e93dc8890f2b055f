package generator

import (
	"fmt"

	"github.com/kshitij-139/GEM-JD/internal/model"
	"github.com/kshitij-139/GEM-JD/internal/session"
)

// View is the display state of a session, independent of any UI toolkit.
type View struct {
	Form   model.JobRequest
	Notice string // blocking validation message, empty when none
	JD     Panel
	FAQ    Panel
}

// Panel is one output column.
type Panel struct {
	Title string
	Text  string
	Error string
	Meta  string // e.g. "Hindi · creativity 0.5"
}

// Empty reports whether the panel has nothing to show.
func (p Panel) Empty() bool { return p.Text == "" && p.Error == "" }

// Render derives the view from session state. defaults fills the form before
// the first submission. It has no side effects, so callers run it on first
// load and after every action.
func Render(st session.State, defaults model.JobRequest) View {
	v := View{
		Form: defaults,
		JD:   Panel{Title: model.JobDescription.Label()},
		FAQ:  Panel{Title: model.FAQList.Label()},
	}
	if st.LastRequest != nil {
		v.Form = *st.LastRequest
	}
	if st.Validation != nil {
		v.Notice = st.Validation.Error()
	}

	fillPanel(&v.JD, st.JD, st.JDErr)
	fillPanel(&v.FAQ, st.FAQ, st.FAQErr)
	return v
}

// Snapshot renders sess under its lock.
func Snapshot(sess *session.Session, defaults model.JobRequest) View {
	var v View
	sess.Do(func(s *session.Session) {
		v = Render(s.State, defaults)
	})
	return v
}

func fillPanel(p *Panel, a *model.Artifact, err error) {
	if err != nil {
		p.Error = err.Error()
		return
	}
	if a == nil {
		return
	}
	p.Text = a.Text
	p.Meta = fmt.Sprintf("%s · creativity %.1f", a.Language, a.Temperature)
}

// DefaultRequest is the form state shown before the first submission.
func DefaultRequest(temperature float64) model.JobRequest {
	return model.JobRequest{
		Function:    model.Functions[0],
		Experience:  model.ExperienceBands[0],
		Language:    model.Languages[0],
		Temperature: temperature,
	}
}
