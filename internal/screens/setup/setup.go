// Package setup implements the home screen: topic entry, mode
// selection, and the entry points for import, template export and
// history.
package setup

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/jackyw/quizcard/internal/history"
	"github.com/jackyw/quizcard/internal/quiz"
	"github.com/jackyw/quizcard/internal/quizgen"
	"github.com/jackyw/quizcard/internal/router"
	"github.com/jackyw/quizcard/internal/screen"
	historyscreen "github.com/jackyw/quizcard/internal/screens/history"
	sessionscreen "github.com/jackyw/quizcard/internal/screens/session"
	"github.com/jackyw/quizcard/internal/ui/components"
	"github.com/jackyw/quizcard/internal/ui/layout"
	"github.com/jackyw/quizcard/internal/ui/theme"
)

// TemplateFileName is where "Save template" writes its example file.
const TemplateFileName = "quizcard-template.json"

const (
	focusTopic = iota
	focusMode
	focusMenu
)

type importResultMsg struct {
	Topic     string
	Mode      quiz.Mode
	Questions []quiz.Question
	Err       error
}

type templateSavedMsg struct {
	Path string
	Err  error
}

// SetupScreen is the home screen of the application.
type SetupScreen struct {
	generator quizgen.Generator
	evaluator quizgen.Evaluator
	histRepo  history.Store

	topic     components.TextInput
	modes     []quiz.Mode
	modeIdx   int
	menu      components.Menu
	focus     int
	importing bool
	pathInput components.TextInput
	notice    string
	errMsg    string
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)

// New creates the home screen with injected dependencies. A nil
// generator disables quiz generation but leaves import, template export
// and history usable.
func New(generator quizgen.Generator, evaluator quizgen.Evaluator, histRepo history.Store) *SetupScreen {
	s := &SetupScreen{
		generator: generator,
		evaluator: evaluator,
		histRepo:  histRepo,
		topic:     components.NewTextInput("What do you want to practice?", 200),
		modes:     []quiz.Mode{quiz.ModeMultipleChoice, quiz.ModeOpenEnded, quiz.ModeMixed},
	}

	items := []components.MenuItem{
		{Label: "START QUIZ", Disabled: generator == nil, Action: func() tea.Cmd {
			return s.startQuiz()
		}},
		{Label: "IMPORT QUESTIONS", Action: func() tea.Cmd {
			s.importing = true
			s.pathInput = components.NewTextInput("Path to a question JSON file", 400)
			return s.pathInput.Init()
		}},
		{Label: "SAVE TEMPLATE", Action: func() tea.Cmd {
			return saveTemplate()
		}},
		{Label: "HISTORY", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: historyscreen.New(s.histRepo, s.evaluator),
				}
			}
		}},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	s.menu = components.NewMenu(items)
	return s
}

func (s *SetupScreen) Init() tea.Cmd {
	return s.topic.Init()
}

func (s *SetupScreen) Title() string {
	return "Home"
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	if s.importing {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Import"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// startQuiz validates the topic and pushes a generated session.
func (s *SetupScreen) startQuiz() tea.Cmd {
	topic := strings.TrimSpace(s.topic.Value())
	if topic == "" {
		s.errMsg = "Enter a topic first."
		s.focus = focusTopic
		return nil
	}
	s.errMsg = ""
	mode := s.modes[s.modeIdx]
	return func() tea.Msg {
		return router.PushScreenMsg{
			Screen: sessionscreen.NewGenerated(s.generator, s.evaluator, s.histRepo, topic, mode),
		}
	}
}

// importFile reads and parses an external question file. The topic is
// taken from the file name.
func importFile(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return importResultMsg{Err: err}
		}
		questions, mode, err := quiz.ImportQuestionSet(data)
		if err != nil {
			return importResultMsg{Err: err}
		}
		base := filepath.Base(path)
		topic := strings.TrimSuffix(base, filepath.Ext(base))
		return importResultMsg{Topic: topic, Mode: mode, Questions: questions}
	}
}

func saveTemplate() tea.Cmd {
	return func() tea.Msg {
		data, err := quiz.Template()
		if err != nil {
			return templateSavedMsg{Err: err}
		}
		if err := os.WriteFile(TemplateFileName, data, 0o644); err != nil {
			return templateSavedMsg{Err: err}
		}
		return templateSavedMsg{Path: TemplateFileName}
	}
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case importResultMsg:
		if msg.Err != nil {
			s.errMsg = "Import failed: " + msg.Err.Error()
			return s, nil
		}
		s.importing = false
		s.errMsg = ""
		return s, func() tea.Msg {
			return router.PushScreenMsg{
				Screen: sessionscreen.NewImported(s.evaluator, s.histRepo, msg.Topic, msg.Mode, msg.Questions),
			}
		}

	case templateSavedMsg:
		if msg.Err != nil {
			s.errMsg = "Could not save template: " + msg.Err.Error()
		} else {
			s.notice = fmt.Sprintf("Template written to %s. Fill it in and import it back.", msg.Path)
			s.errMsg = ""
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.importing {
		var cmd tea.Cmd
		s.pathInput, cmd = s.pathInput.Update(msg)
		return s, cmd
	}
	if s.focus == focusTopic {
		var cmd tea.Cmd
		s.topic, cmd = s.topic.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SetupScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.importing {
		switch key {
		case "esc":
			s.importing = false
			s.errMsg = ""
			return s, nil
		case "enter":
			path := strings.TrimSpace(s.pathInput.Value())
			if path == "" {
				return s, nil
			}
			return s, importFile(path)
		}
		var cmd tea.Cmd
		s.pathInput, cmd = s.pathInput.Update(msg)
		return s, cmd
	}

	switch key {
	case "tab":
		s.focus = (s.focus + 1) % 3
		return s, nil
	case "shift+tab":
		s.focus = (s.focus + 2) % 3
		return s, nil
	}

	switch s.focus {
	case focusTopic:
		if key == "enter" {
			s.focus = focusMode
			return s, nil
		}
		var cmd tea.Cmd
		s.topic, cmd = s.topic.Update(msg)
		return s, cmd

	case focusMode:
		switch key {
		case "left", "h":
			s.modeIdx = (s.modeIdx + len(s.modes) - 1) % len(s.modes)
		case "right", "l":
			s.modeIdx = (s.modeIdx + 1) % len(s.modes)
		case "enter":
			s.focus = focusMenu
		}
		return s, nil

	default:
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return s, cmd
	}
}

func (s *SetupScreen) View(width, height int) string {
	if s.importing {
		return s.renderImport(width)
	}

	var b strings.Builder
	b.WriteString("\n")

	b.WriteString(theme.Title.Width(width).Render("QuizCard"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render("Turn any topic into a quiz"))
	b.WriteString("\n\n")

	topicLabel := s.fieldLabel("Topic", focusTopic)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		topicLabel+"  "+s.topic.View()))
	b.WriteString("\n\n")

	modeLabel := s.fieldLabel("Mode", focusMode)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		modeLabel+"  "+s.renderModePicker()))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.menu.View()))

	if s.generator == nil {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Italic(true).
			Render("No LLM provider configured; generation is unavailable."))
	}

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(s.errMsg))
	} else if s.notice != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Success).
			Render(s.notice))
	}

	return b.String()
}

func (s *SetupScreen) renderImport(width int) string {
	var b strings.Builder
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("Import a question file"))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		"File: "+s.pathInput.View()))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("A JSON array of questions, or an object with a \"questions\" key."))

	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(s.errMsg))
	}

	return b.String()
}

func (s *SetupScreen) renderModePicker() string {
	parts := make([]string, len(s.modes))
	for i, m := range s.modes {
		label := string(m)
		if i == s.modeIdx {
			parts[i] = theme.Selected.Render("[" + label + "]")
		} else {
			parts[i] = theme.Unselected.Render(" " + label + " ")
		}
	}
	return strings.Join(parts, "  ")
}

func (s *SetupScreen) fieldLabel(name string, focus int) string {
	if s.focus == focus {
		return theme.Selected.Render("▸ " + name)
	}
	return lipgloss.NewStyle().Foreground(theme.TextDim).Render("  " + name)
}
