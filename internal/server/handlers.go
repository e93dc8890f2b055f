package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kshitij-139/GEM-JD/internal/generator"
	"github.com/kshitij-139/GEM-JD/internal/model"
)

// generateRequest is the wire form of a submission, shared by the HTML form
// and the JSON API. Missing language and temperature fall back to defaults.
type generateRequest struct {
	Title       string   `json:"title" form:"title"`
	Function    string   `json:"function" form:"function"`
	Experience  string   `json:"experience" form:"experience"`
	Skills      string   `json:"skills" form:"skills"`
	Language    string   `json:"language" form:"language"`
	Temperature *float64 `json:"temperature" form:"temperature"`
}

func (r generateRequest) toJobRequest(defaultTemperature float64) model.JobRequest {
	req := model.JobRequest{
		Title:       strings.TrimSpace(r.Title),
		Function:    model.Function(r.Function),
		Experience:  model.ExperienceBand(r.Experience),
		Skills:      strings.TrimSpace(r.Skills),
		Language:    model.Language(r.Language),
		Temperature: defaultTemperature,
	}
	if req.Language == "" {
		req.Language = model.BaseLanguage
	}
	if r.Temperature != nil {
		req.Temperature = *r.Temperature
	}
	return req
}

type generateResponse struct {
	SessionID      string            `json:"session_id"`
	JobDescription string            `json:"job_description"`
	FAQs           string            `json:"faqs"`
	FAQsCached     bool              `json:"faqs_cached"`
	Errors         map[string]string `json:"errors,omitempty"`
}

type optionsResponse struct {
	Functions        []model.Function       `json:"functions"`
	ExperienceBands  []model.ExperienceBand `json:"experience_bands"`
	Languages        []model.Language       `json:"languages"`
	TemperatureSteps []float64              `json:"temperature_steps"`
	Defaults         optionDefaults         `json:"defaults"`
}

type optionDefaults struct {
	Language    model.Language `json:"language"`
	Temperature float64        `json:"temperature"`
}

// pageData feeds templates/index.html.
type pageData struct {
	Brand            string
	View             generator.View
	Functions        []model.Function
	ExperienceBands  []model.ExperienceBand
	Languages        []model.Language
	TemperatureSteps []float64
}

func (s *Server) page(v generator.View) pageData {
	return pageData{
		Brand:            s.opts.Brand,
		View:             v,
		Functions:        model.Functions,
		ExperienceBands:  model.ExperienceBands,
		Languages:        model.Languages,
		TemperatureSteps: model.TemperatureSteps(),
	}
}

// handleIndex is GET /: render the session's current state.
func (s *Server) handleIndex(c *gin.Context) {
	sess := s.sessionFor(c)
	v := generator.Snapshot(sess, generator.DefaultRequest(s.opts.DefaultTemperature))
	c.HTML(http.StatusOK, "index.html", s.page(v))
}

// handleSubmit is POST /generate from the HTML form.
func (s *Server) handleSubmit(c *gin.Context) {
	sess := s.sessionFor(c)

	var body generateRequest
	if err := c.ShouldBind(&body); err != nil {
		// Text fields always bind, so only the temperature can fail here.
		s.logger.Warn("malformed form submission", "session", sess.ID, "error", err)
		body.Temperature = nil
		s.svc.Reject(sess, body.toJobRequest(s.opts.DefaultTemperature),
			&model.ValidationError{Fields: []string{"temperature"}, Invalid: true})
	} else {
		s.svc.Generate(c.Request.Context(), sess, body.toJobRequest(s.opts.DefaultTemperature))
	}
	v := generator.Snapshot(sess, generator.DefaultRequest(s.opts.DefaultTemperature))
	c.HTML(http.StatusOK, "index.html", s.page(v))
}

// handleGenerate is POST /api/v1/generate. Validation failures are 400s;
// generation failures are reported per artifact in a 200.
func (s *Server) handleGenerate(c *gin.Context) {
	var body generateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON: " + err.Error()})
		return
	}

	sess := s.sessionFor(c)
	res := s.svc.Generate(c.Request.Context(), sess, body.toJobRequest(s.opts.DefaultTemperature))

	if res.Validation != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  res.Validation.Error(),
			"fields": res.Validation.Fields,
		})
		return
	}

	resp := generateResponse{SessionID: sess.ID, FAQsCached: res.FAQCached}
	if res.JD != nil {
		resp.JobDescription = res.JD.Text
	}
	if res.FAQ != nil && res.FAQErr == nil {
		resp.FAQs = res.FAQ.Text
	}
	if res.JDErr != nil || res.FAQErr != nil {
		resp.Errors = make(map[string]string)
		if res.JDErr != nil {
			resp.Errors[string(model.JobDescription)] = res.JDErr.Error()
		}
		if res.FAQErr != nil {
			resp.Errors[string(model.FAQList)] = res.FAQErr.Error()
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleOptions(c *gin.Context) {
	c.JSON(http.StatusOK, optionsResponse{
		Functions:        model.Functions,
		ExperienceBands:  model.ExperienceBands,
		Languages:        model.Languages,
		TemperatureSteps: model.TemperatureSteps(),
		Defaults: optionDefaults{
			Language:    model.BaseLanguage,
			Temperature: s.opts.DefaultTemperature,
		},
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": s.sessions.Len()})
}

