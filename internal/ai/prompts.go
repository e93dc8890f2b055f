package ai

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

//go:embed prompts/job_description.tmpl
var jobDescriptionPromptRaw string

// faqPromptRaw is the interview-question prompt. It has no skills placeholder.
const faqPromptRaw = `You are an expert HR interviewer with experience conducting interviews for {{.industry}} roles.
Your task is to generate the most frequently asked and most relevant interview questions
for the following role at {{.brand}}.

- Job Title: {{.job_title}}
- Industry: {{.industry}}
- Experience Level: {{.experience}}

Provide the questions as a numbered list. Give only the questions, without alternatives or answers.

Requirements:
- Generate the output in {{.language}}.
- Focus on practical, high-impact questions that recruiters and hiring managers actually ask.
- Cover both technical and behavioral aspects.
- Return 8-12 questions.
- Keep them concise and professional.
`

// Placeholder names available to prompt templates.
const (
	PlaceholderJobTitle   = "job_title"
	PlaceholderIndustry   = "industry"
	PlaceholderExperience = "experience"
	PlaceholderSkills     = "skills"
	PlaceholderLanguage   = "language"
	PlaceholderBrand      = "brand"
)

var (
	jdPlaceholders = []string{
		PlaceholderJobTitle, PlaceholderIndustry, PlaceholderExperience,
		PlaceholderSkills, PlaceholderLanguage, PlaceholderBrand,
	}
	faqPlaceholders = []string{
		PlaceholderJobTitle, PlaceholderIndustry, PlaceholderExperience,
		PlaceholderLanguage, PlaceholderBrand,
	}
)

// FAQTemplate is the parsed interview-question prompt.
var FAQTemplate = template.Must(newPromptTemplate("faq").Parse(faqPromptRaw))

// DefaultJDTemplate returns the embedded job description prompt.
func DefaultJDTemplate() *template.Template {
	return template.Must(newPromptTemplate("job_description").Parse(jobDescriptionPromptRaw))
}

func newPromptTemplate(name string) *template.Template {
	return template.New(name).Option("missingkey=error")
}

// placeholderPattern matches {{.name}} and {{ .name }} references.
var placeholderPattern = regexp.MustCompile(`\{\{-?\s*\.([a-zA-Z_][a-zA-Z0-9_]*)\s*-?\}\}`)

// ExtractPlaceholders returns the sorted, de-duplicated placeholder names a
// template references. Placeholders used inside actions such as {{if .x}} are
// not reported.
func ExtractPlaceholders(text string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, m := range placeholderPattern.FindAllStringSubmatch(text, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	sort.Strings(names)
	return names
}

// singleBracePattern matches {name} style placeholders used by prompt files
// written for chat-prompt libraries.
var singleBracePattern = regexp.MustCompile(`\{([a-z_][a-z0-9_]*)\}`)

// normalizePlaceholders rewrites {name} placeholders to {{.name}} unless the
// text is already a Go template.
func normalizePlaceholders(text string) string {
	if strings.Contains(text, "{{") {
		return text
	}
	return singleBracePattern.ReplaceAllString(text, "{{.$1}}")
}

// promptFile is the on-disk shape of a prompt override.
type promptFile struct {
	Template string `yaml:"template"`
}

// LoadJDTemplate reads a YAML prompt file with a top-level "template" key and
// parses it. Unknown placeholders are rejected so a typo fails at startup.
func LoadJDTemplate(path string) (*template.Template, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open prompt file: %w", err)
	}
	defer f.Close()
	return parseJDTemplate(f)
}

func parseJDTemplate(r io.Reader) (*template.Template, error) {
	var pf promptFile
	if err := yaml.NewDecoder(r).Decode(&pf); err != nil {
		return nil, fmt.Errorf("parse prompt file: %w", err)
	}
	if strings.TrimSpace(pf.Template) == "" {
		return nil, fmt.Errorf("prompt file has no template")
	}

	text := normalizePlaceholders(pf.Template)
	if err := checkPlaceholders(text, jdPlaceholders); err != nil {
		return nil, err
	}

	tmpl, err := newPromptTemplate("job_description").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse prompt template: %w", err)
	}

	// Render once with every placeholder so execution errors surface now.
	sample := make(map[string]string, len(jdPlaceholders))
	for _, name := range jdPlaceholders {
		sample[name] = name
	}
	if err := tmpl.Execute(io.Discard, sample); err != nil {
		return nil, fmt.Errorf("render prompt template: %w", err)
	}
	return tmpl, nil
}

func checkPlaceholders(text string, allowed []string) error {
	known := make(map[string]bool, len(allowed))
	for _, a := range allowed {
		known[a] = true
	}
	var unknown []string
	for _, name := range ExtractPlaceholders(text) {
		if !known[name] {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		return fmt.Errorf("prompt template uses unknown placeholders: %s", strings.Join(unknown, ", "))
	}
	return nil
}
