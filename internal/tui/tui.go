package tui

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kshitij-139/GEM-JD/internal/generator"
	"github.com/kshitij-139/GEM-JD/internal/model"
	"github.com/kshitij-139/GEM-JD/internal/session"
)

// Upper bound for one submission (JD plus FAQs).
const generateTimeout = 5 * time.Minute

// Lines used by the form block, including the header and the action row.
const formHeight = 9

type field int

const (
	fieldTitle field = iota
	fieldFunction
	fieldExperience
	fieldSkills
	fieldLanguage
	fieldCreativity
	fieldGenerate
	fieldJD
	fieldFAQ
	fieldCount
)

var fieldLabels = map[field]string{
	fieldTitle:      "Job title *",
	fieldFunction:   "Function *",
	fieldExperience: "Experience *",
	fieldSkills:     "Key skills",
	fieldLanguage:   "Language",
	fieldCreativity: "Creativity",
}

var (
	activeBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("39")) // bright blue

	inactiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")) // dim gray

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	activeHeaderStyle = headerStyle.
				Foreground(lipgloss.Color("39"))

	inactiveHeaderStyle = headerStyle.
				Foreground(lipgloss.Color("240"))

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("24")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("245")).
			Width(14)

	focusedLabelStyle = labelStyle.
				Foreground(lipgloss.Color("39"))

	buttonStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("238"))

	focusedButtonStyle = buttonStyle.
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("33"))

	statusBarStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// generatedMsg is sent when a submission finishes, successfully or not.
type generatedMsg struct{}

type appModel struct {
	svc      *generator.Service
	sess     *session.Session
	defaults model.JobRequest
	brand    string

	title  textinput.Model
	skills textinput.Model

	functionIdx   int
	experienceIdx int
	languageIdx   int
	tempIdx       int
	temps         []float64

	focus field

	jdViewport  viewport.Model
	faqViewport viewport.Model
	width       int
	height      int
	ready       bool

	generating bool
	frame      int
	view       generator.View
}

func newAppModel(svc *generator.Service, sess *session.Session, brand string, defaults model.JobRequest) appModel {
	title := textinput.New()
	title.Placeholder = "e.g. HR Head"
	title.CharLimit = 120

	skills := textinput.New()
	skills.Placeholder = "optional, comma separated"
	skills.CharLimit = 300

	m := appModel{
		svc:      svc,
		sess:     sess,
		defaults: defaults,
		brand:    brand,
		title:    title,
		skills:   skills,
		temps:    model.TemperatureSteps(),
	}
	m.view = generator.Snapshot(sess, defaults)
	m.loadForm(m.view.Form)
	m.title.Focus()
	return m
}

// loadForm copies a request into the form widgets.
func (m *appModel) loadForm(req model.JobRequest) {
	m.title.SetValue(req.Title)
	m.skills.SetValue(req.Skills)
	m.functionIdx = max(indexOf(model.Functions, req.Function), 0)
	m.experienceIdx = max(indexOf(model.ExperienceBands, req.Experience), 0)
	m.languageIdx = max(indexOf(model.Languages, req.Language), 0)
	m.tempIdx = clamp(int(math.Round(req.Temperature/model.TemperatureStep)), 0, len(m.temps)-1)
}

// request builds a submission from the current widget values.
func (m appModel) request() model.JobRequest {
	return model.JobRequest{
		Title:       strings.TrimSpace(m.title.Value()),
		Function:    model.Functions[m.functionIdx],
		Experience:  model.ExperienceBands[m.experienceIdx],
		Skills:      strings.TrimSpace(m.skills.Value()),
		Language:    model.Languages[m.languageIdx],
		Temperature: m.temps[m.tempIdx],
	}
}

func (m appModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.recalcLayout()
		return m, nil

	case generatedMsg:
		m.generating = false
		m.view = generator.Snapshot(m.sess, m.defaults)
		m.recalcContent()
		m.jdViewport.GotoTop()
		m.faqViewport.GotoTop()
		return m, nil

	case spinnerTickMsg:
		if !m.generating {
			return m, nil
		}
		m.frame = (m.frame + 1) % len(spinnerFrames)
		return m, tick()

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	return m.forward(msg)
}

func (m appModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "tab":
		return m.setFocus((m.focus + 1) % fieldCount)
	case "shift+tab":
		return m.setFocus((m.focus + fieldCount - 1) % fieldCount)
	case "enter", "ctrl+g":
		return m.submit()
	}

	switch m.focus {
	case fieldJD, fieldFAQ:
		return m.forward(msg)
	}

	switch msg.String() {
	case "up":
		return m.setFocus(max(m.focus-1, 0))
	case "down":
		return m.setFocus(m.focus + 1)
	case "left", "right":
		delta := 1
		if msg.String() == "left" {
			delta = -1
		}
		if m.cycle(delta) {
			return m, nil
		}
	}
	return m.forward(msg)
}

// cycle moves the focused selector or stepper by delta. It reports whether
// the focused field is one.
func (m *appModel) cycle(delta int) bool {
	switch m.focus {
	case fieldFunction:
		m.functionIdx = wrap(m.functionIdx+delta, len(model.Functions))
	case fieldExperience:
		m.experienceIdx = wrap(m.experienceIdx+delta, len(model.ExperienceBands))
	case fieldLanguage:
		m.languageIdx = wrap(m.languageIdx+delta, len(model.Languages))
	case fieldCreativity:
		m.tempIdx = clamp(m.tempIdx+delta, 0, len(m.temps)-1)
	default:
		return false
	}
	return true
}

func (m appModel) setFocus(f field) (tea.Model, tea.Cmd) {
	m.focus = f
	m.title.Blur()
	m.skills.Blur()
	var cmd tea.Cmd
	switch f {
	case fieldTitle:
		cmd = m.title.Focus()
	case fieldSkills:
		cmd = m.skills.Focus()
	}
	m.recalcContent()
	return m, cmd
}

// forward passes msg to the focused widget.
func (m appModel) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case fieldTitle:
		m.title, cmd = m.title.Update(msg)
	case fieldSkills:
		m.skills, cmd = m.skills.Update(msg)
	case fieldJD:
		m.jdViewport, cmd = m.jdViewport.Update(msg)
	case fieldFAQ:
		m.faqViewport, cmd = m.faqViewport.Update(msg)
	}
	return m, cmd
}

func (m appModel) submit() (tea.Model, tea.Cmd) {
	if m.generating {
		return m, nil
	}
	m.generating = true
	m.frame = 0
	return m, tea.Batch(m.generateCmd(m.request()), tick())
}

func (m appModel) generateCmd(req model.JobRequest) tea.Cmd {
	svc, sess := m.svc, m.sess
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), generateTimeout)
		defer cancel()
		svc.Generate(ctx, sess, req)
		return generatedMsg{}
	}
}

func (m *appModel) recalcLayout() {
	// 2 border chars per pane + 1 gap between panes.
	paneWidth := max((m.width-5)/2, 20)

	// Form block + pane header (1) + border top/bottom (2) + status bar (1).
	paneHeight := max(m.height-formHeight-4, 5)

	if !m.ready {
		m.jdViewport = viewport.New(paneWidth, paneHeight)
		m.faqViewport = viewport.New(paneWidth, paneHeight)
		m.ready = true
	} else {
		m.jdViewport.Width = paneWidth
		m.jdViewport.Height = paneHeight
		m.faqViewport.Width = paneWidth
		m.faqViewport.Height = paneHeight
	}
	m.title.Width = max(m.width-20, 20)
	m.skills.Width = max(m.width-20, 20)

	m.recalcContent()
}

func (m *appModel) recalcContent() {
	if !m.ready {
		return
	}
	m.jdViewport.SetContent(renderPanel(m.view.JD, m.jdViewport.Width))
	m.faqViewport.SetContent(renderPanel(m.view.FAQ, m.faqViewport.Width))
}

func (m appModel) View() string {
	if !m.ready {
		return "Initializing..."
	}
	return m.viewForm() + "\n" + m.viewPanes() + "\n" + m.viewStatus()
}

func (m appModel) viewForm() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("GEM-JD · %s", m.brand)))
	b.WriteString("\n\n")

	row := func(f field, value string) {
		label := labelStyle
		if m.focus == f {
			label = focusedLabelStyle
		}
		b.WriteString(" ")
		b.WriteString(label.Render(fieldLabels[f]))
		b.WriteString(value)
		b.WriteByte('\n')
	}
	selector := func(f field, value string) string {
		if m.focus == f {
			return "‹ " + value + " ›"
		}
		return "  " + value
	}

	row(fieldTitle, m.title.View())
	row(fieldFunction, selector(fieldFunction, string(model.Functions[m.functionIdx])))
	row(fieldExperience, selector(fieldExperience, string(model.ExperienceBands[m.experienceIdx])))
	row(fieldSkills, m.skills.View())
	row(fieldLanguage, selector(fieldLanguage, string(model.Languages[m.languageIdx])))
	row(fieldCreativity, selector(fieldCreativity, fmt.Sprintf("%.1f", m.temps[m.tempIdx])))

	button := buttonStyle
	if m.focus == fieldGenerate {
		button = focusedButtonStyle
	}
	b.WriteString(" ")
	b.WriteString(button.Render("Generate"))
	switch {
	case m.generating:
		b.WriteString("  " + spinnerStyle.Render(spinnerFrames[m.frame]) + " generating...")
	case m.view.Notice != "":
		b.WriteString("  " + noticeStyle.Render("⚠ "+m.view.Notice))
	}
	return b.String()
}

func (m appModel) viewPanes() string {
	paneWidth := m.jdViewport.Width

	pane := func(f field, p generator.Panel, vp viewport.Model) (string, string) {
		header, border := inactiveHeaderStyle, inactiveBorderStyle
		if m.focus == f {
			header, border = activeHeaderStyle, activeBorderStyle
		}
		return lipgloss.NewStyle().Width(paneWidth + 2).Render(header.Render(p.Title)),
			border.Width(paneWidth).Render(vp.View())
	}

	jdHeader, jdPane := pane(fieldJD, m.view.JD, m.jdViewport)
	faqHeader, faqPane := pane(fieldFAQ, m.view.FAQ, m.faqViewport)

	headerRow := lipgloss.JoinHorizontal(lipgloss.Top, jdHeader, " ", faqHeader)
	panes := lipgloss.JoinHorizontal(lipgloss.Top, jdPane, " ", faqPane)
	return headerRow + "\n" + panes
}

func (m appModel) viewStatus() string {
	text := " tab/shift+tab focus  ←/→ change  enter generate  ↑/↓ scroll panes  esc quit"
	return statusBarStyle.Width(m.width).Render(text)
}

// renderPanel formats one output panel for a viewport of the given width.
// An error replaces the panel text.
func renderPanel(p generator.Panel, width int) string {
	switch {
	case p.Error != "":
		return errorStyle.Render(wrapText("⚠ "+p.Error, width))
	case p.Text != "":
		return metaStyle.Render(p.Meta) + "\n\n" + wrapText(p.Text, width)
	default:
		return hintStyle.Render(wrapText("Fill in the form and press enter to generate.", width))
	}
}

// wrapText word-wraps each line of text to width, keeping existing line breaks.
func wrapText(text string, width int) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		indent := line[:len(line)-len(strings.TrimLeft(line, " "))]
		words := strings.Fields(line)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		cur := indent + words[0]
		for _, w := range words[1:] {
			if lipgloss.Width(cur)+1+lipgloss.Width(w) <= width {
				cur += " " + w
			} else {
				out = append(out, cur)
				cur = indent + w
			}
		}
		out = append(out, cur)
	}
	return strings.Join(out, "\n")
}

func indexOf[T comparable](items []T, v T) int {
	for i, it := range items {
		if it == v {
			return i
		}
	}
	return -1
}

func wrap(v, n int) int {
	return ((v % n) + n) % n
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Run launches the interactive form for a single session. It blocks until
// the user quits.
func Run(svc *generator.Service, sess *session.Session, brand string, defaults model.JobRequest) error {
	m := newAppModel(svc, sess, brand, defaults)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
