package quiz

// Kind is the concrete question type.
type Kind string

const (
	KindMultipleChoice Kind = "multiple-choice"
	KindOpenEnded      Kind = "open-ended"
)

// KnownKind reports whether k is one of the supported question kinds.
func KnownKind(k Kind) bool {
	return k == KindMultipleChoice || k == KindOpenEnded
}

// Mode is the requested question-kind composition for a session.
// It shapes the generation request; each question still carries its own Kind.
type Mode string

const (
	ModeMultipleChoice Mode = "multiple-choice"
	ModeOpenEnded      Mode = "open-ended"
	ModeMixed          Mode = "mixed"
)

// Question is a single quiz question. Immutable once created.
// Prompt, options, explanation and model answer are markdown text.
type Question struct {
	ID     string `json:"id"`
	Kind   Kind   `json:"kind"`
	Prompt string `json:"prompt"`

	// Multiple-choice fields. Options is ordered; CorrectOptionIndex is a
	// 0-based index into it.
	Options            []string `json:"options,omitempty"`
	CorrectOptionIndex int      `json:"correctOptionIndex,omitempty"`
	Explanation        string   `json:"explanation,omitempty"`

	// Open-ended reference answer, optional.
	ModelAnswer string `json:"modelAnswer,omitempty"`
}

// EvaluationResult is the evaluation service's verdict on one open-ended answer.
type EvaluationResult struct {
	Score        int    `json:"score"` // 0-100
	Feedback     string `json:"feedback"`
	BetterAnswer string `json:"betterAnswer"`
}

// UserAnswer records one submission for one question. Created on first
// submission and never replaced; re-entering an answered question restores
// this record instead of allowing a second submission.
type UserAnswer struct {
	QuestionID string
	Kind       Kind

	// OptionIndex and IsCorrect are set for multiple-choice answers.
	OptionIndex int
	IsCorrect   bool

	// Text and Evaluation are set for open-ended answers. Evaluation is
	// never nil on a recorded open-ended answer: the answer only exists
	// once the evaluation service has returned a result.
	Text       string
	Evaluation *EvaluationResult
}
