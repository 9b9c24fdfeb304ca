package quizgen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jackyw/quizcard/internal/quiz"
)

const bareArrayJSON = `[
	{"id": "q1", "kind": "multiple-choice", "prompt": "Pick one", "options": ["a", "b", "c", "d"], "correctOptionIndex": 1, "explanation": "b is right"},
	{"id": "q2", "kind": "open-ended", "prompt": "Explain closures", "modelAnswer": "A closure captures variables from its enclosing scope."}
]`

const wrappedJSON = `{"questions": ` + bareArrayJSON + `}`

func TestDecodeQuestions_Strict(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"bare array", bareArrayJSON},
		{"questions wrapper", wrappedJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qs, err := decodeQuestions([]byte(tt.raw))
			require.NoError(t, err)
			require.Len(t, qs, 2)
			assert.Equal(t, "q1", qs[0].ID)
			assert.Equal(t, quiz.KindMultipleChoice, qs[0].Kind)
			assert.Equal(t, 1, qs[0].CorrectOptionIndex)
			assert.Equal(t, quiz.KindOpenEnded, qs[1].Kind)
		})
	}
}

func TestDecodeQuestions_FencedBlock(t *testing.T) {
	raw := "```json\n" + wrappedJSON + "\n```"

	qs, err := decodeQuestions([]byte(raw))
	require.NoError(t, err)
	require.Len(t, qs, 2)
	assert.Equal(t, "Pick one", qs[0].Prompt)
}

func TestDecodeQuestions_ProseWrapped(t *testing.T) {
	raw := "Here is your quiz:\n\n" + bareArrayJSON + "\n\nGood luck!"

	qs, err := decodeQuestions([]byte(raw))
	require.NoError(t, err)
	require.Len(t, qs, 2)
	assert.Equal(t, "q2", qs[1].ID)
}

func TestDecodeQuestions_BracketsInsideStrings(t *testing.T) {
	raw := `Sure! [{"id": "q1", "kind": "open-ended", "prompt": "What does arr[0] mean?"}] done`

	qs, err := decodeQuestions([]byte(raw))
	require.NoError(t, err)
	require.Len(t, qs, 1)
	assert.Equal(t, "What does arr[0] mean?", qs[0].Prompt)
}

func TestDecodeQuestions_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"plain prose", "I could not generate questions for that topic."},
		{"scalar", `42`},
		{"truncated array", `[{"id": "q1", "kind": "open-ended"`},
		{"object without questions key", `{"items": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeQuestions([]byte(tt.raw))
			var verr *quiz.ValidationError
			require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
		})
	}
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no fences", `{"a": 1}`, `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence", "```\n[1, 2]\n```", `[1, 2]`},
		{"surrounding whitespace", "  ```json\n{}\n```  ", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripCodeFences(tt.in))
		})
	}
}

func TestValidateBatch(t *testing.T) {
	valid := []quiz.Question{
		{ID: "q1", Kind: quiz.KindMultipleChoice, Prompt: "Pick one", Options: []string{"a", "b"}},
	}
	require.NoError(t, validateBatch(valid))

	tests := []struct {
		name      string
		questions []quiz.Question
	}{
		{"empty", nil},
		{"missing id", []quiz.Question{{Kind: quiz.KindOpenEnded, Prompt: "p"}}},
		{"unknown kind", []quiz.Question{{ID: "q1", Kind: "essay", Prompt: "p"}}},
		{"missing prompt", []quiz.Question{{ID: "q1", Kind: quiz.KindOpenEnded}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateBatch(tt.questions)
			var verr *quiz.ValidationError
			require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
		})
	}
}
