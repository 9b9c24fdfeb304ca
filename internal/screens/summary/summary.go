package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/jackyw/quizcard/internal/quiz"
	"github.com/jackyw/quizcard/internal/router"
	"github.com/jackyw/quizcard/internal/screen"
	"github.com/jackyw/quizcard/internal/ui/layout"
	"github.com/jackyw/quizcard/internal/ui/theme"
)

// SummaryScreen displays the result of a completed session.
type SummaryScreen struct {
	sess   *quiz.Session
	retake func() screen.Screen
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen. The retake callback builds the screen
// that reruns the same questions.
func New(sess *quiz.Session, retake func() screen.Screen) *SummaryScreen {
	return &SummaryScreen{sess: sess, retake: retake}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Results"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "R", Description: "Retake"},
		{Key: "Enter", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "r", "R":
		if s.retake != nil {
			next := s.retake()
			return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
		}
	case "enter", "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sess := s.sess
	if sess == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Quiz complete!"))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Topic: %s", sess.Topic)))
	b.WriteString("\n\n")

	n := len(sess.Questions)
	var resultLine string
	switch sess.Mode {
	case quiz.ModeMultipleChoice:
		resultLine = fmt.Sprintf("Correct: %d/%d   (%d%%)", sess.TotalScore, n, sess.SummaryPercent())
	case quiz.ModeOpenEnded:
		resultLine = fmt.Sprintf("Average score: %d/100 over %d questions", sess.SummaryPercent(), n)
	default:
		// Mixed totals add correctness counts and 0-100 scores; there is
		// no meaningful percentage, so only the raw total is shown.
		resultLine = fmt.Sprintf("Total score: %d across %d questions", sess.TotalScore, n)
	}

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Accent).
		Bold(true).
		Render(resultLine))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	answered := len(sess.Answers)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(fmt.Sprintf("Answered %d of %d questions", answered, n)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("[R] Retake this quiz    [Enter] Back to home"))

	return b.String()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
