package session

import (
	"github.com/jackyw/quizcard/internal/quiz"
)

// questionsReadyMsg is sent when question generation completes.
type questionsReadyMsg struct {
	Questions []quiz.Question
	Err       error
}

// evaluationDoneMsg is sent when an open-ended answer has been graded.
type evaluationDoneMsg struct {
	QuestionID string
	Text       string
	Result     *quiz.EvaluationResult
	Err        error
}

// sessionSavedMsg is sent after the completed session was written to
// history.
type sessionSavedMsg struct {
	Err error
}
