package session

import (
	"context"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/jackyw/quizcard/internal/history"
	"github.com/jackyw/quizcard/internal/quiz"
	"github.com/jackyw/quizcard/internal/quizgen"
	"github.com/jackyw/quizcard/internal/screen"
)

// mockGenerator implements quizgen.Generator for testing.
type mockGenerator struct {
	questions []quiz.Question
	err       error
}

func (m *mockGenerator) Generate(_ context.Context, _ quizgen.GenerateInput) ([]quiz.Question, error) {
	return m.questions, m.err
}

// mockEvaluator implements quizgen.Evaluator for testing.
type mockEvaluator struct {
	result *quiz.EvaluationResult
	err    error
}

func (m *mockEvaluator) Evaluate(_ context.Context, _ quizgen.EvaluateInput) (*quiz.EvaluationResult, error) {
	return m.result, m.err
}

// mockHistory implements history.Store for testing.
type mockHistory struct {
	items []history.Item
}

func (m *mockHistory) InsertFront(_ context.Context, item history.Item) error {
	m.items = append([]history.Item{item}, m.items...)
	return nil
}
func (m *mockHistory) ListAll(_ context.Context) ([]history.Item, error) { return m.items, nil }
func (m *mockHistory) DeleteByID(_ context.Context, _ string) error      { return nil }

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func choiceQuestions(n int) []quiz.Question {
	qs := make([]quiz.Question, n)
	for i := range qs {
		qs[i] = quiz.Question{
			ID:                 string(rune('a' + i)),
			Kind:               quiz.KindMultipleChoice,
			Prompt:             "Pick the second option",
			Options:            []string{"a", "b", "c", "d"},
			CorrectOptionIndex: 1,
			Explanation:        "b is correct",
		}
	}
	return qs
}

func activeChoiceScreen(t *testing.T, n int) (*SessionScreen, *mockHistory) {
	t.Helper()
	hist := &mockHistory{}
	s := NewGenerated(&mockGenerator{questions: choiceQuestions(n)}, nil, hist, "go", quiz.ModeMultipleChoice)

	msg := s.generateCmd()()
	scr, _ := s.Update(msg)
	ss, ok := scr.(*SessionScreen)
	if !ok || ss.sess == nil {
		t.Fatal("expected an active session after generation")
	}
	return ss, hist
}

func TestSessionScreen_Title(t *testing.T) {
	s := NewGenerated(&mockGenerator{}, nil, &mockHistory{}, "go", quiz.ModeMixed)
	if s.Title() != "Quiz" {
		t.Errorf("Title = %q, want %q", s.Title(), "Quiz")
	}
}

func TestSessionScreen_View_Loading(t *testing.T) {
	s := NewGenerated(&mockGenerator{}, nil, &mockHistory{}, "go", quiz.ModeMixed)
	view := s.View(80, 24)
	if view == "" {
		t.Error("expected non-empty view for loading state")
	}
}

func TestSessionScreen_GenerationFailure(t *testing.T) {
	s := NewGenerated(&mockGenerator{err: errors.New("boom")}, nil, &mockHistory{}, "go", quiz.ModeMixed)

	msg := s.generateCmd()()
	scr, _ := s.Update(msg)
	ss := scr.(*SessionScreen)
	if ss.errMsg == "" {
		t.Fatal("expected error message after failed generation")
	}
	if view := ss.View(80, 24); view == "" {
		t.Error("expected non-empty error view")
	}

	// Any key navigates back.
	_, cmd := ss.Update(keyPress(' '))
	if cmd == nil {
		t.Error("expected a pop command from the error state")
	}
}

func TestSessionScreen_GenerationSuccess(t *testing.T) {
	s, _ := activeChoiceScreen(t, 3)
	if s.sess.CurrentIndex != 0 {
		t.Errorf("CurrentIndex = %d, want 0", s.sess.CurrentIndex)
	}
	if s.sess.TotalScore != 0 {
		t.Errorf("TotalScore = %d, want 0", s.sess.TotalScore)
	}
}

func TestSessionScreen_ChoiceAnswer(t *testing.T) {
	s, _ := activeChoiceScreen(t, 3)

	// Press 2 to pick the correct option.
	scr, _ := s.Update(keyPress('2'))
	ss := scr.(*SessionScreen)

	if !ss.sess.Answered() {
		t.Fatal("expected question to be answered")
	}
	a, _ := ss.sess.AnswerFor(ss.sess.Current().ID)
	if !a.IsCorrect {
		t.Error("expected option 2 to be correct")
	}
	if ss.sess.TotalScore != 1 {
		t.Errorf("TotalScore = %d, want 1", ss.sess.TotalScore)
	}
}

func TestSessionScreen_ReentryRestoresAnswer(t *testing.T) {
	s, _ := activeChoiceScreen(t, 3)

	scr, _ := s.Update(keyPress('1'))
	ss := scr.(*SessionScreen)

	// Move to the next question and back.
	scr, _ = ss.Update(specialKey(tea.KeyRight))
	ss = scr.(*SessionScreen)
	if ss.sess.CurrentIndex != 1 {
		t.Fatalf("CurrentIndex = %d, want 1", ss.sess.CurrentIndex)
	}
	scr, _ = ss.Update(specialKey(tea.KeyLeft))
	ss = scr.(*SessionScreen)

	if !ss.mc.Submitted {
		t.Error("expected restored component to show the recorded answer")
	}
	if ss.mc.ChosenIndex != 0 {
		t.Errorf("ChosenIndex = %d, want 0", ss.mc.ChosenIndex)
	}

	// A second submission is ignored.
	scr, _ = ss.Update(keyPress('2'))
	ss = scr.(*SessionScreen)
	a, _ := ss.sess.AnswerFor(ss.sess.Current().ID)
	if a.OptionIndex != 0 {
		t.Errorf("OptionIndex = %d, want original 0", a.OptionIndex)
	}
}

func TestSessionScreen_FinishPersistsAndShowsSummary(t *testing.T) {
	s, hist := activeChoiceScreen(t, 2)

	// Answer both questions correctly.
	scr, _ := s.Update(keyPress('2'))
	ss := scr.(*SessionScreen)
	scr, _ = ss.Update(specialKey(tea.KeyEnter))
	ss = scr.(*SessionScreen)
	scr, _ = ss.Update(keyPress('2'))
	ss = scr.(*SessionScreen)

	// Enter on the last answered question finishes the run.
	scr, cmd := ss.Update(specialKey(tea.KeyEnter))
	ss = scr.(*SessionScreen)
	if cmd == nil {
		t.Fatal("expected a save command at the end of the quiz")
	}

	saved := cmd()
	if _, ok := saved.(sessionSavedMsg); !ok {
		t.Fatalf("expected sessionSavedMsg, got %T", saved)
	}
	if len(hist.items) != 1 {
		t.Fatalf("history items = %d, want 1", len(hist.items))
	}
	item := hist.items[0]
	if item.Score != 2 || item.TotalQuestions != 2 {
		t.Errorf("saved score = %d/%d, want 2/2", item.Score, item.TotalQuestions)
	}

	// The saved message swaps in the summary screen.
	_, cmd = ss.Update(saved)
	if cmd == nil {
		t.Fatal("expected a replace command after saving")
	}
}

func TestSessionScreen_QuitConfirm(t *testing.T) {
	s, hist := activeChoiceScreen(t, 3)

	var scr screen.Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyEscape))
	ss := scr.(*SessionScreen)
	if !ss.showQuitConfirm {
		t.Error("expected quit confirmation dialog")
	}

	scr, _ = ss.Update(keyPress('n'))
	ss = scr.(*SessionScreen)
	if ss.showQuitConfirm {
		t.Error("expected quit confirmation to be dismissed")
	}

	scr, _ = ss.Update(specialKey(tea.KeyEscape))
	ss = scr.(*SessionScreen)
	_, cmd := ss.Update(keyPress('y'))
	if cmd == nil {
		t.Error("expected a pop command after confirming quit")
	}
	if len(hist.items) != 0 {
		t.Error("abandoned session must not be persisted")
	}
}

func TestSessionScreen_OpenEndedEvaluation(t *testing.T) {
	eval := &mockEvaluator{result: &quiz.EvaluationResult{Score: 73, Feedback: "good", BetterAnswer: "better"}}
	questions := []quiz.Question{
		{ID: "q1", Kind: quiz.KindOpenEnded, Prompt: "Explain defer", ModelAnswer: "Runs at function exit."},
	}
	s := NewImported(eval, &mockHistory{}, "go", quiz.ModeOpenEnded, questions)
	s.Init()

	s.input.SetValue("it runs last")
	scr, cmd := s.Update(specialKey(tea.KeyEnter))
	ss := scr.(*SessionScreen)
	if !ss.evaluating {
		t.Fatal("expected evaluation to be in flight")
	}
	if cmd == nil {
		t.Fatal("expected an evaluation command")
	}

	// While evaluating, input is blocked.
	scr, _ = ss.Update(keyPress('x'))
	ss = scr.(*SessionScreen)
	if ss.input.Value() != "it runs last" {
		t.Error("input must be blocked during evaluation")
	}

	scr, _ = ss.Update(cmd())
	ss = scr.(*SessionScreen)
	if ss.evaluating {
		t.Error("expected evaluation to be finished")
	}
	a, ok := ss.sess.AnswerFor("q1")
	if !ok {
		t.Fatal("expected recorded answer")
	}
	if a.Evaluation == nil || a.Evaluation.Score != 73 {
		t.Errorf("Evaluation = %+v, want score 73", a.Evaluation)
	}
	if ss.sess.TotalScore != 73 {
		t.Errorf("TotalScore = %d, want 73", ss.sess.TotalScore)
	}
}

func TestSessionScreen_EvaluationFailureIsRetryable(t *testing.T) {
	eval := &mockEvaluator{err: errors.New("rate limited")}
	questions := []quiz.Question{
		{ID: "q1", Kind: quiz.KindOpenEnded, Prompt: "Explain defer"},
	}
	s := NewImported(eval, &mockHistory{}, "go", quiz.ModeOpenEnded, questions)
	s.Init()

	s.input.SetValue("an answer")
	scr, cmd := s.Update(specialKey(tea.KeyEnter))
	ss := scr.(*SessionScreen)

	scr, _ = ss.Update(cmd())
	ss = scr.(*SessionScreen)

	if ss.transientErr == "" {
		t.Error("expected a transient error message")
	}
	if ss.sess.Answered() {
		t.Error("failed evaluation must not record an answer")
	}

	// A second submission is possible.
	ss.evaluator = &mockEvaluator{result: &quiz.EvaluationResult{Score: 40}}
	scr, cmd = ss.Update(specialKey(tea.KeyEnter))
	ss = scr.(*SessionScreen)
	scr, _ = ss.Update(cmd())
	ss = scr.(*SessionScreen)
	if !ss.sess.Answered() {
		t.Error("expected the retried evaluation to record the answer")
	}
}

func TestSessionScreen_Replay(t *testing.T) {
	item := history.Item{
		SessionID:      "1700000000001",
		Topic:          "go",
		Mode:           "multiple-choice",
		Score:          2,
		TotalQuestions: 2,
		Questions: []history.QuestionRecord{
			{ID: "a", Kind: "multiple-choice", Prompt: "p1", Options: []string{"x", "y"}, CorrectOptionIndex: 0},
			{ID: "b", Kind: "multiple-choice", Prompt: "p2", Options: []string{"x", "y"}, CorrectOptionIndex: 1},
		},
	}
	s := NewReplay(nil, &mockHistory{}, item)
	s.Init()

	if s.sess == nil {
		t.Fatal("expected active session for replay")
	}
	if len(s.sess.Questions) != 2 {
		t.Errorf("questions = %d, want 2", len(s.sess.Questions))
	}
	if s.sess.TotalScore != 0 {
		t.Error("replay must start unscored")
	}
}

func TestSessionScreen_KeyHints(t *testing.T) {
	s, _ := activeChoiceScreen(t, 1)
	if len(s.KeyHints()) == 0 {
		t.Error("expected non-empty key hints")
	}
}
