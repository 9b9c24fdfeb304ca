package quiz

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackyw/quizcard/internal/history"
)

// ErrUnknownQuestion indicates an answer was submitted for a question id
// that is not part of the session. This is a programming error in the
// caller, not a user-facing condition.
var ErrUnknownQuestion = errors.New("quiz: unknown question id")

// Session is the aggregate root for one quiz run over a fixed question
// list. It owns the current position, the answer map and the derived
// score; all mutation goes through its methods.
type Session struct {
	ID        string
	Topic     string
	Mode      Mode
	Questions []Question
	CreatedAt time.Time

	// CurrentIndex always satisfies 0 <= CurrentIndex < len(Questions).
	CurrentIndex int

	// Answers maps question id to the single recorded answer.
	Answers map[string]UserAnswer

	// TotalScore is derived from Answers on every mutation: +1 per correct
	// multiple-choice answer, +Evaluation.Score per open-ended answer.
	// The two units are not normalized against each other; a mixed-mode
	// total deliberately mixes them.
	TotalScore int
}

// NewSession creates an active session positioned at the first question.
// The question list must be non-empty and is fixed for the session's
// lifetime.
func NewSession(topic string, mode Mode, questions []Question) (*Session, error) {
	if len(questions) == 0 {
		return nil, &ValidationError{Reason: "question list is empty"}
	}
	now := time.Now()
	return &Session{
		ID:        strconv.FormatInt(now.UnixMilli(), 10),
		Topic:     topic,
		Mode:      mode,
		Questions: questions,
		CreatedAt: now,
		Answers:   make(map[string]UserAnswer),
	}, nil
}

// Current returns the question at the current position.
func (s *Session) Current() *Question {
	return &s.Questions[s.CurrentIndex]
}

// AnswerFor returns the recorded answer for a question id, if any.
func (s *Session) AnswerFor(questionID string) (UserAnswer, bool) {
	a, ok := s.Answers[questionID]
	return a, ok
}

// Answered reports whether the current question has a recorded answer.
func (s *Session) Answered() bool {
	_, ok := s.Answers[s.Current().ID]
	return ok
}

// RecordChoice records a multiple-choice answer. Submitting for an
// already-answered question is a no-op returning the stored answer, so a
// question can never be scored twice.
func (s *Session) RecordChoice(questionID string, optionIndex int) (UserAnswer, error) {
	q, err := s.question(questionID)
	if err != nil {
		return UserAnswer{}, err
	}
	if prev, ok := s.Answers[questionID]; ok {
		return prev, nil
	}

	a := UserAnswer{
		QuestionID:  questionID,
		Kind:        q.Kind,
		OptionIndex: optionIndex,
		IsCorrect:   optionIndex == q.CorrectOptionIndex,
	}
	s.Answers[questionID] = a
	s.recomputeScore()
	return a, nil
}

// RecordEvaluation records an open-ended answer together with the
// evaluation result returned by the evaluation service. The caller must
// obtain the evaluation first; an answer without one is never recorded,
// which keeps a failed evaluation retryable.
func (s *Session) RecordEvaluation(questionID, text string, eval EvaluationResult) (UserAnswer, error) {
	q, err := s.question(questionID)
	if err != nil {
		return UserAnswer{}, err
	}
	if prev, ok := s.Answers[questionID]; ok {
		return prev, nil
	}

	a := UserAnswer{
		QuestionID: questionID,
		Kind:       q.Kind,
		Text:       text,
		Evaluation: &eval,
	}
	s.Answers[questionID] = a
	s.recomputeScore()
	return a, nil
}

// Next advances to the following question. It returns true when invoked
// at the last index, signalling that the session is complete; the
// position is left unchanged in that case so the index invariant holds.
func (s *Session) Next() (finished bool) {
	if s.CurrentIndex+1 < len(s.Questions) {
		s.CurrentIndex++
		return false
	}
	return true
}

// Prev moves back one question. No-op at index 0.
func (s *Session) Prev() {
	if s.CurrentIndex > 0 {
		s.CurrentIndex--
	}
}

// Retake resets the session for a fresh run over the same question list:
// index 0, answers cleared, score rederived. A fresh id is assigned so
// the rerun persists as its own history item.
func (s *Session) Retake() {
	now := time.Now()
	s.ID = strconv.FormatInt(now.UnixMilli(), 10)
	s.CreatedAt = now
	s.CurrentIndex = 0
	s.Answers = make(map[string]UserAnswer)
	s.recomputeScore()
}

// Snapshot freezes the completed session into a history item.
func (s *Session) Snapshot() history.Item {
	qs := make([]history.QuestionRecord, len(s.Questions))
	for i, q := range s.Questions {
		qs[i] = history.QuestionRecord{
			ID:                 q.ID,
			Kind:               string(q.Kind),
			Prompt:             q.Prompt,
			Options:            q.Options,
			CorrectOptionIndex: q.CorrectOptionIndex,
			Explanation:        q.Explanation,
			ModelAnswer:        q.ModelAnswer,
		}
	}
	return history.Item{
		SessionID:      s.ID,
		Topic:          s.Topic,
		Mode:           string(s.Mode),
		Score:          s.TotalScore,
		TotalQuestions: len(s.Questions),
		Questions:      qs,
		CreatedAt:      time.Now(),
	}
}

// FromHistory rebuilds a playable session from a stored history item.
// Answers start empty and a fresh id is assigned; the stored questions
// are replayed without a new generation call.
func FromHistory(item history.Item) *Session {
	qs := make([]Question, len(item.Questions))
	for i, q := range item.Questions {
		qs[i] = Question{
			ID:                 q.ID,
			Kind:               Kind(q.Kind),
			Prompt:             q.Prompt,
			Options:            q.Options,
			CorrectOptionIndex: q.CorrectOptionIndex,
			Explanation:        q.Explanation,
			ModelAnswer:        q.ModelAnswer,
		}
	}
	now := time.Now()
	return &Session{
		ID:        strconv.FormatInt(now.UnixMilli(), 10),
		Topic:     item.Topic,
		Mode:      Mode(item.Mode),
		Questions: qs,
		CreatedAt: now,
		Answers:   make(map[string]UserAnswer),
	}
}

// SummaryPercent renders the session-level result the way the summary
// screen shows it: percentage correct for multiple-choice sessions, mean
// evaluation score for everything else. Only meaningful for single-mode
// sessions; mixed totals have no stable upper bound.
func (s *Session) SummaryPercent() int {
	n := len(s.Questions)
	if n == 0 {
		return 0
	}
	if s.Mode == ModeMultipleChoice {
		return int(float64(s.TotalScore)/float64(n)*100 + 0.5)
	}
	return int(float64(s.TotalScore)/float64(n) + 0.5)
}

func (s *Session) question(id string) (*Question, error) {
	for i := range s.Questions {
		if s.Questions[i].ID == id {
			return &s.Questions[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownQuestion, id)
}

func (s *Session) recomputeScore() {
	total := 0
	for _, a := range s.Answers {
		switch a.Kind {
		case KindMultipleChoice:
			if a.IsCorrect {
				total++
			}
		case KindOpenEnded:
			if a.Evaluation != nil {
				total += a.Evaluation.Score
			}
		}
	}
	s.TotalScore = total
}
