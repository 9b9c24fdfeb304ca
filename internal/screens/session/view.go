package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/jackyw/quizcard/internal/quiz"
	"github.com/jackyw/quizcard/internal/ui/components"
	"github.com/jackyw/quizcard/internal/ui/theme"
)

func (s *SessionScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if s.showQuitConfirm {
		return renderQuitConfirm(width)
	}
	if s.sess == nil {
		return renderLoading(width, s.topic)
	}
	return s.renderQuestionView(width)
}

// renderQuestionView renders the active question with position and
// score.
func (s *SessionScreen) renderQuestionView(width int) string {
	sess := s.sess
	q := sess.Current()

	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Topic: %s", sess.Topic))

	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Question %d/%d   Score %d",
			sess.CurrentIndex+1, len(sess.Questions), sess.TotalScore))

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}

	b.WriteString(infoLine)
	b.WriteString("\n")

	bar := components.NewProgressBar("",
		float64(sess.CurrentIndex+1)/float64(len(sess.Questions)), false, max(width-4, 4))
	b.WriteString("  " + bar.View())
	b.WriteString("\n\n")

	if q.Kind == quiz.KindMultipleChoice {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.mc.View()))
		if !s.sess.Answered() {
			b.WriteString("\n")
			b.WriteString(lipgloss.NewStyle().
				Width(width).
				Align(lipgloss.Center).
				Foreground(theme.TextDim).
				Render(fmt.Sprintf("Select (1-%d) or use arrows + Enter", len(q.Options))))
		}
	} else {
		b.WriteString(s.renderOpenEnded(width, q))
	}

	return b.String()
}

// renderOpenEnded renders the free-text question, the input, and once
// graded, the evaluation verdict.
func (s *SessionScreen) renderOpenEnded(width int, q *quiz.Question) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(q.Prompt))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render("Answer: " + s.input.View()))
	b.WriteString("\n")

	if s.evaluating {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Grading your answer..."))
		return b.String()
	}

	if s.transientErr != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(s.transientErr))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Press Enter to try again."))
		return b.String()
	}

	if a, ok := s.sess.AnswerFor(q.ID); ok && a.Evaluation != nil {
		eval := a.Evaluation
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Bold(true).
			Render(fmt.Sprintf("Score: %d/100", eval.Score)))
		b.WriteString("\n\n")

		blockWidth := min(width-8, 70)
		feedback := lipgloss.NewStyle().
			Width(blockWidth).
			Foreground(theme.Text).
			Render(eval.Feedback)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, feedback))

		if eval.BetterAnswer != "" {
			b.WriteString("\n\n")
			better := lipgloss.NewStyle().
				Width(blockWidth).
				Foreground(theme.TextDim).
				Render("A stronger answer: " + eval.BetterAnswer)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, better))
		}
	}

	return b.String()
}

// renderQuitConfirm renders the leave-quiz confirmation dialog.
func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("Leave this quiz?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("An unfinished quiz is not saved to history."))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render("[Y] Yes, leave"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] No, keep going"))

	return b.String()
}

// renderLoading renders the generation waiting state.
func renderLoading(width int, topic string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("\n\n\n  Writing questions about %q...", topic))
}

// renderError renders a session-level error.
func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
