package summary

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/jackyw/quizcard/internal/quiz"
	"github.com/jackyw/quizcard/internal/screen"
)

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "" }
func (s *stubScreen) Title() string                           { return "stub" }

func finishedChoiceSession(t *testing.T) *quiz.Session {
	t.Helper()
	questions := []quiz.Question{
		{ID: "a", Kind: quiz.KindMultipleChoice, Prompt: "p1", Options: []string{"x", "y"}, CorrectOptionIndex: 0},
		{ID: "b", Kind: quiz.KindMultipleChoice, Prompt: "p2", Options: []string{"x", "y"}, CorrectOptionIndex: 1},
	}
	sess, err := quiz.NewSession("go", quiz.ModeMultipleChoice, questions)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	sess.RecordChoice("a", 0)
	sess.RecordChoice("b", 0)
	return sess
}

func TestSummary_View_MultipleChoice(t *testing.T) {
	s := New(finishedChoiceSession(t), nil)

	view := s.View(80, 24)
	if !strings.Contains(view, "1/2") {
		t.Errorf("expected score 1/2 in view, got:\n%s", view)
	}
	if !strings.Contains(view, "50%") {
		t.Errorf("expected 50%% in view, got:\n%s", view)
	}
}

func TestSummary_View_OpenEnded(t *testing.T) {
	questions := []quiz.Question{
		{ID: "a", Kind: quiz.KindOpenEnded, Prompt: "p1"},
		{ID: "b", Kind: quiz.KindOpenEnded, Prompt: "p2"},
	}
	sess, err := quiz.NewSession("go", quiz.ModeOpenEnded, questions)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	sess.RecordEvaluation("a", "x", quiz.EvaluationResult{Score: 80})
	sess.RecordEvaluation("b", "y", quiz.EvaluationResult{Score: 40})

	view := New(sess, nil).View(80, 24)
	if !strings.Contains(view, "60/100") {
		t.Errorf("expected average 60/100 in view, got:\n%s", view)
	}
}

func TestSummary_RetakeReplacesScreen(t *testing.T) {
	called := false
	s := New(finishedChoiceSession(t), func() screen.Screen {
		called = true
		return &stubScreen{}
	})

	_, cmd := s.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	if cmd == nil {
		t.Fatal("expected a replace command")
	}
	if !called {
		t.Error("expected the retake factory to run")
	}
}

func TestSummary_EnterGoesHome(t *testing.T) {
	s := New(finishedChoiceSession(t), nil)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a pop command")
	}
}
