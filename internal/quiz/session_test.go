package quiz

import (
	"errors"
	"fmt"
	"testing"
)

func choiceQuestions(n int) []Question {
	qs := make([]Question, n)
	for i := range qs {
		qs[i] = Question{
			ID:                 fmt.Sprintf("q%d", i+1),
			Kind:               KindMultipleChoice,
			Prompt:             fmt.Sprintf("Question %d?", i+1),
			Options:            []string{"a", "b", "c", "d"},
			CorrectOptionIndex: 1,
			Explanation:        "because",
		}
	}
	return qs
}

func openQuestions(n int) []Question {
	qs := make([]Question, n)
	for i := range qs {
		qs[i] = Question{
			ID:     fmt.Sprintf("oq%d", i+1),
			Kind:   KindOpenEnded,
			Prompt: fmt.Sprintf("Explain thing %d.", i+1),
		}
	}
	return qs
}

func testSession(t *testing.T, qs []Question) *Session {
	t.Helper()
	s, err := NewSession("React Hooks", InferMode(qs), qs)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

func TestNewSession_Empty(t *testing.T) {
	_, err := NewSession("t", ModeMixed, nil)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestNewSession_InitialState(t *testing.T) {
	s := testSession(t, choiceQuestions(5))
	if s.CurrentIndex != 0 {
		t.Errorf("CurrentIndex = %d, want 0", s.CurrentIndex)
	}
	if s.TotalScore != 0 {
		t.Errorf("TotalScore = %d, want 0", s.TotalScore)
	}
	if len(s.Answers) != 0 {
		t.Errorf("Answers has %d entries, want 0", len(s.Answers))
	}
	if s.ID == "" {
		t.Error("expected a session id")
	}
}

func TestRecordChoice_Correct(t *testing.T) {
	s := testSession(t, choiceQuestions(3))
	before := s.TotalScore

	a, err := s.RecordChoice("q1", 1)
	if err != nil {
		t.Fatalf("RecordChoice: %v", err)
	}
	if !a.IsCorrect {
		t.Error("expected IsCorrect = true for the correct option")
	}
	if s.TotalScore != before+1 {
		t.Errorf("TotalScore = %d, want %d", s.TotalScore, before+1)
	}
}

func TestRecordChoice_Incorrect(t *testing.T) {
	s := testSession(t, choiceQuestions(3))

	a, err := s.RecordChoice("q1", 0)
	if err != nil {
		t.Fatalf("RecordChoice: %v", err)
	}
	if a.IsCorrect {
		t.Error("expected IsCorrect = false for a wrong option")
	}
	if s.TotalScore != 0 {
		t.Errorf("TotalScore = %d, want 0", s.TotalScore)
	}
}

func TestRecordChoice_UnknownQuestion(t *testing.T) {
	s := testSession(t, choiceQuestions(3))

	_, err := s.RecordChoice("nope", 0)
	if !errors.Is(err, ErrUnknownQuestion) {
		t.Fatalf("expected ErrUnknownQuestion, got %v", err)
	}
}

func TestRecordChoice_SecondSubmissionIsNoop(t *testing.T) {
	s := testSession(t, choiceQuestions(3))

	first, _ := s.RecordChoice("q1", 1)
	again, err := s.RecordChoice("q1", 0)
	if err != nil {
		t.Fatalf("RecordChoice: %v", err)
	}
	if again != first {
		t.Errorf("second submission changed the answer: %+v vs %+v", again, first)
	}
	if s.TotalScore != 1 {
		t.Errorf("TotalScore = %d, want 1 (score must not double-count)", s.TotalScore)
	}
}

func TestRecordEvaluation_AddsRawScore(t *testing.T) {
	s := testSession(t, openQuestions(2))

	_, err := s.RecordEvaluation("oq1", "my answer", EvaluationResult{Score: 73, Feedback: "ok"})
	if err != nil {
		t.Fatalf("RecordEvaluation: %v", err)
	}
	if s.TotalScore != 73 {
		t.Errorf("TotalScore = %d, want 73", s.TotalScore)
	}
}

func TestNavigation_Bounds(t *testing.T) {
	s := testSession(t, choiceQuestions(3))

	s.Prev()
	if s.CurrentIndex != 0 {
		t.Errorf("Prev at 0: CurrentIndex = %d, want 0", s.CurrentIndex)
	}

	if done := s.Next(); done {
		t.Error("Next at index 0 of 3 reported completion")
	}
	if s.CurrentIndex != 1 {
		t.Errorf("CurrentIndex = %d, want 1", s.CurrentIndex)
	}

	s.Next()
	if done := s.Next(); !done {
		t.Error("Next at the last index should report completion")
	}
	if s.CurrentIndex != 2 {
		t.Errorf("completion moved the index: CurrentIndex = %d, want 2", s.CurrentIndex)
	}
}

func TestReentry_RestoresSavedAnswer(t *testing.T) {
	s := testSession(t, choiceQuestions(3))
	recorded, _ := s.RecordChoice("q1", 1)

	s.Next()
	s.Prev()

	got, ok := s.AnswerFor(s.Current().ID)
	if !ok {
		t.Fatal("expected saved answer after navigating back")
	}
	if got != recorded {
		t.Errorf("restored answer = %+v, want %+v", got, recorded)
	}
}

func TestSnapshot_CapturesScoreAndCount(t *testing.T) {
	s := testSession(t, choiceQuestions(5))
	for i := 1; i <= 5; i++ {
		s.RecordChoice(fmt.Sprintf("q%d", i), 1)
	}

	item := s.Snapshot()
	if item.Score != s.TotalScore {
		t.Errorf("item.Score = %d, want %d", item.Score, s.TotalScore)
	}
	if item.TotalQuestions != 5 {
		t.Errorf("item.TotalQuestions = %d, want 5", item.TotalQuestions)
	}
	if len(item.Questions) != 5 {
		t.Errorf("item carries %d questions, want 5", len(item.Questions))
	}
	if item.SessionID != s.ID {
		t.Errorf("item.SessionID = %q, want %q", item.SessionID, s.ID)
	}
}

func TestRetake_ClearsAnswers(t *testing.T) {
	s := testSession(t, choiceQuestions(3))
	s.RecordChoice("q1", 1)
	s.Next()

	s.Retake()

	if s.CurrentIndex != 0 {
		t.Errorf("CurrentIndex = %d, want 0", s.CurrentIndex)
	}
	if len(s.Answers) != 0 {
		t.Errorf("Answers has %d entries, want 0", len(s.Answers))
	}
	if s.TotalScore != 0 {
		t.Errorf("TotalScore = %d, want 0", s.TotalScore)
	}
}

func TestFromHistory_ReplaysStoredQuestions(t *testing.T) {
	s := testSession(t, choiceQuestions(2))
	s.RecordChoice("q1", 1)
	item := s.Snapshot()

	replay := FromHistory(item)
	if replay.Topic != s.Topic {
		t.Errorf("replay.Topic = %q, want %q", replay.Topic, s.Topic)
	}
	if len(replay.Answers) != 0 {
		t.Error("replayed session must start with no answers")
	}
	if len(replay.Questions) != 2 || replay.Questions[0].Prompt != s.Questions[0].Prompt {
		t.Errorf("replayed questions differ from originals")
	}
}

func TestEndToEnd_MultipleChoicePerfectRun(t *testing.T) {
	s := testSession(t, choiceQuestions(5))

	for {
		s.RecordChoice(s.Current().ID, 1)
		if s.Next() {
			break
		}
	}

	if s.TotalScore != 5 {
		t.Fatalf("TotalScore = %d, want 5", s.TotalScore)
	}
	item := s.Snapshot()
	if item.Score != 5 || item.TotalQuestions != 5 {
		t.Errorf("snapshot = {Score: %d, TotalQuestions: %d}, want {5, 5}", item.Score, item.TotalQuestions)
	}
	if got := s.SummaryPercent(); got != 100 {
		t.Errorf("SummaryPercent = %d, want 100", got)
	}
}

func TestEndToEnd_OpenEndedAverages(t *testing.T) {
	s := testSession(t, openQuestions(2))

	s.RecordEvaluation("oq1", "a", EvaluationResult{Score: 80})
	s.RecordEvaluation("oq2", "b", EvaluationResult{Score: 40})

	if s.TotalScore != 120 {
		t.Fatalf("TotalScore = %d, want 120", s.TotalScore)
	}
	if got := s.SummaryPercent(); got != 60 {
		t.Errorf("SummaryPercent = %d, want 60", got)
	}
}
