package quiz

import (
	"encoding/json"
)

// ValidationError indicates a generated or imported question set failed
// structural checks. Always a whole-batch failure; no partial list is
// ever accepted.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid question set: " + e.Reason
}

// questionSetDoc tolerates the {questions: [...]} wrapper shape used by
// some generation backends; import accepts it symmetrically.
type questionSetDoc struct {
	Questions []Question `json:"questions"`
}

// ImportQuestionSet parses an externally supplied question file. The
// document must be a non-empty JSON array of questions, or an object
// wrapping that array under a "questions" key. Per-item shape beyond the
// kind field is deliberately not validated here; malformed items surface
// when rendered or answered.
func ImportQuestionSet(data []byte) ([]Question, Mode, error) {
	var questions []Question
	if err := json.Unmarshal(data, &questions); err != nil {
		var doc questionSetDoc
		if wrapErr := json.Unmarshal(data, &doc); wrapErr != nil || doc.Questions == nil {
			return nil, "", &ValidationError{Reason: "document is not a question array"}
		}
		questions = doc.Questions
	}
	if len(questions) == 0 {
		return nil, "", &ValidationError{Reason: "question array is empty"}
	}
	return questions, InferMode(questions), nil
}

// InferMode derives a session mode from the kinds present in a question
// list: single-kind lists map to that kind's mode, everything else is
// mixed.
func InferMode(questions []Question) Mode {
	hasChoice := false
	hasOpen := false
	for _, q := range questions {
		switch q.Kind {
		case KindMultipleChoice:
			hasChoice = true
		case KindOpenEnded:
			hasOpen = true
		}
	}
	switch {
	case hasChoice && !hasOpen:
		return ModeMultipleChoice
	case hasOpen && !hasChoice:
		return ModeOpenEnded
	default:
		return ModeMixed
	}
}
