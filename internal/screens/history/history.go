package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/jackyw/quizcard/internal/history"
	"github.com/jackyw/quizcard/internal/quizgen"
	"github.com/jackyw/quizcard/internal/router"
	"github.com/jackyw/quizcard/internal/screen"
	sessionscreen "github.com/jackyw/quizcard/internal/screens/session"
	"github.com/jackyw/quizcard/internal/ui/layout"
	"github.com/jackyw/quizcard/internal/ui/theme"
)

type historyLoadedMsg struct {
	Items []history.Item
	Err   error
}

type itemDeletedMsg struct {
	Err error
}

// HistoryScreen lists past quiz runs; entries can be replayed or
// deleted.
type HistoryScreen struct {
	repo      history.Store
	evaluator quizgen.Evaluator
	items     []history.Item
	selected  int
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(repo history.Store, evaluator quizgen.Evaluator) *HistoryScreen {
	return &HistoryScreen{repo: repo, evaluator: evaluator}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return s.loadCmd()
}

func (s *HistoryScreen) loadCmd() tea.Cmd {
	return func() tea.Msg {
		items, err := s.repo.ListAll(context.Background())
		return historyLoadedMsg{Items: items, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Replay"},
		{Key: "D", Description: "Delete"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.items = msg.Items
			if s.selected >= len(s.items) && len(s.items) > 0 {
				s.selected = len(s.items) - 1
			}
		}
		s.loaded = true
		return s, nil

	case itemDeletedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		return s, s.loadCmd()

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.items)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			if s.selected < len(s.items) {
				item := s.items[s.selected]
				return s, func() tea.Msg {
					return router.PushScreenMsg{
						Screen: sessionscreen.NewReplay(s.evaluator, s.repo, item),
					}
				}
			}
			return s, nil
		case "d", "D":
			if s.selected < len(s.items) {
				id := s.items[s.selected].SessionID
				return s, func() tea.Msg {
					err := s.repo.DeleteByID(context.Background(), id)
					return itemDeletedMsg{Err: err}
				}
			}
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.items) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No quizzes yet. Generate one from the home screen!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, item := range s.items {
		dateStr := item.CreatedAt.Format("Jan 02, 2006 15:04")

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %-30s  %-15s  score %d/%d",
			prefix, dateStr, truncate(item.Topic, 30), item.Mode,
			item.Score, item.TotalQuestions)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
