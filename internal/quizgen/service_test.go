package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jackyw/quizcard/internal/llm"
	"github.com/jackyw/quizcard/internal/quiz"
)

func validSetJSON() json.RawMessage {
	return json.RawMessage(`{"questions": [
		{"id": "q1", "kind": "multiple-choice", "prompt": "Which hook memoizes a value?", "options": ["useState", "useMemo", "useRef", "useEffect"], "correctOptionIndex": 1, "explanation": "useMemo caches a computed value between renders."},
		{"id": "q2", "kind": "open-ended", "prompt": "What problem does useCallback solve?", "modelAnswer": "It keeps a stable function identity across renders."}
	]}`)
}

func TestGenerate(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validSetJSON()})
	svc := New(mock, DefaultConfig())

	qs, err := svc.Generate(context.Background(), GenerateInput{
		Topic: "React Hooks",
		Mode:  quiz.ModeMixed,
	})
	require.NoError(t, err)
	require.Len(t, qs, 2)
	assert.Equal(t, quiz.KindMultipleChoice, qs[0].Kind)
	assert.Equal(t, 1, qs[0].CorrectOptionIndex)
	assert.Equal(t, quiz.KindOpenEnded, qs[1].Kind)

	require.Equal(t, 1, mock.CallCount())
	req := mock.Calls[0]
	assert.Equal(t, QuestionSetSchema, req.Schema)
	require.Len(t, req.Messages, 1)
	assert.Contains(t, req.Messages[0].Content, "Topic: React Hooks")
	assert.Contains(t, req.Messages[0].Content, "Number of questions: 5")
}

func TestGenerate_CountAndMode(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validSetJSON()})
	svc := New(mock, DefaultConfig())

	_, err := svc.Generate(context.Background(), GenerateInput{
		Topic: "Go channels",
		Mode:  quiz.ModeMultipleChoice,
		Count: 8,
	})
	require.NoError(t, err)

	msg := mock.Calls[0].Messages[0].Content
	assert.Contains(t, msg, "Number of questions: 8")
	assert.Contains(t, msg, "multiple-choice only")
}

func TestGenerate_FencedResponse(t *testing.T) {
	fenced := "```json\n" + string(validSetJSON()) + "\n```"
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(fenced)})
	svc := New(mock, DefaultConfig())

	qs, err := svc.Generate(context.Background(), GenerateInput{Topic: "React Hooks"})
	require.NoError(t, err)
	assert.Len(t, qs, 2)
}

func TestGenerate_RejectsWholeBatch(t *testing.T) {
	// One item without a prompt poisons the whole set.
	bad := json.RawMessage(`[
		{"id": "q1", "kind": "open-ended", "prompt": "fine"},
		{"id": "q2", "kind": "open-ended"}
	]`)
	mock := llm.NewMockProvider(llm.MockResponse{Content: bad})
	svc := New(mock, DefaultConfig())

	qs, err := svc.Generate(context.Background(), GenerateInput{Topic: "anything"})
	assert.Nil(t, qs)
	var verr *quiz.ValidationError
	require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
}

func TestGenerate_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: errors.New("boom")})
	svc := New(mock, DefaultConfig())

	_, err := svc.Generate(context.Background(), GenerateInput{Topic: "anything"})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "question generation failed"))
}

func TestEvaluate(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"score": 73, "feedback": "Mostly right, missing the dependency array.", "betterAnswer": "useEffect runs after render; the dependency array controls when."}`),
	})
	svc := New(mock, DefaultConfig())

	res, err := svc.Evaluate(context.Background(), EvaluateInput{
		Topic:    "React Hooks",
		Question: "When does useEffect run?",
		Answer:   "After the component renders.",
	})
	require.NoError(t, err)
	assert.Equal(t, 73, res.Score)
	assert.Equal(t, "Mostly right, missing the dependency array.", res.Feedback)
	assert.NotEmpty(t, res.BetterAnswer)

	req := mock.Calls[0]
	assert.Equal(t, EvaluationSchema, req.Schema)
	msg := req.Messages[0].Content
	assert.Contains(t, msg, "Question: When does useEffect run?")
	assert.Contains(t, msg, "Learner's answer: After the component renders.")
}

func TestEvaluate_ScoreOutOfRange(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"score": 140, "feedback": "x", "betterAnswer": "y"}`),
	})
	svc := New(mock, DefaultConfig())

	_, err := svc.Evaluate(context.Background(), EvaluateInput{Topic: "t", Question: "q", Answer: "a"})
	var verr *quiz.ValidationError
	require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
}

func TestEvaluate_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: errors.New("rate limited")})
	svc := New(mock, DefaultConfig())

	res, err := svc.Evaluate(context.Background(), EvaluateInput{Topic: "t", Question: "q", Answer: "a"})
	assert.Nil(t, res)
	require.Error(t, err)
}
