package generator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kshitij-139/GEM-JD/internal/model"
	"github.com/kshitij-139/GEM-JD/internal/session"
)

func TestRender_InitialLoadUsesDefaults(t *testing.T) {
	v := Render(session.State{}, DefaultRequest(0.7))

	if v.Form.Language != model.BaseLanguage || v.Form.Temperature != 0.7 {
		t.Errorf("Form = %+v, want defaults", v.Form)
	}
	if !v.JD.Empty() || !v.FAQ.Empty() {
		t.Error("panels should be empty before the first submission")
	}
	if v.Notice != "" {
		t.Errorf("Notice = %q, want empty", v.Notice)
	}
}

func TestRender_AfterSuccess(t *testing.T) {
	gen := &FakeGenerator{JDText: "jd body", FAQText: "1. Why us?"}
	svc := newTestService(gen, nil)
	sess := session.New()
	svc.Generate(context.Background(), sess, hrHead())

	v := Snapshot(sess, DefaultRequest(0.7))

	if v.Form.Title != "HR Head" {
		t.Errorf("Form.Title = %q, want the last submission", v.Form.Title)
	}
	if v.JD.Text != "jd body" || v.FAQ.Text != "1. Why us?" {
		t.Errorf("panels = %q / %q", v.JD.Text, v.FAQ.Text)
	}
	if !strings.Contains(v.JD.Meta, "Hindi") {
		t.Errorf("JD meta = %q, want language", v.JD.Meta)
	}
}

func TestRender_ErrorReplacesPanelText(t *testing.T) {
	st := session.State{
		FAQ:    &model.Artifact{Kind: model.FAQList, Text: "old faqs"},
		FAQErr: &model.GenerationError{Kind: model.FAQList, Err: errors.New("quota")},
	}
	v := Render(st, DefaultRequest(0.7))

	if v.FAQ.Text != "" || !strings.Contains(v.FAQ.Error, "quota") {
		t.Errorf("FAQ panel = %+v, want error only", v.FAQ)
	}
}

func TestRender_ValidationNotice(t *testing.T) {
	gen := &FakeGenerator{}
	svc := newTestService(gen, nil)
	sess := session.New()
	req := hrHead()
	req.Title = ""
	svc.Generate(context.Background(), sess, req)

	v := Snapshot(sess, DefaultRequest(0.7))
	if !strings.Contains(v.Notice, "title") {
		t.Errorf("Notice = %q, want mention of title", v.Notice)
	}
}
