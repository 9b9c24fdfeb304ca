package quizgen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackyw/quizcard/internal/llm"
	"github.com/jackyw/quizcard/internal/quiz"
)

// LLMService implements Generator and Evaluator over an LLM provider.
type LLMService struct {
	provider llm.Provider
	config   Config
}

// New creates an LLMService with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMService {
	return &LLMService{provider: provider, config: cfg}
}

// Generate produces a validated question set for the input topic.
func (s *LLMService) Generate(ctx context.Context, input GenerateInput) ([]quiz.Question, error) {
	ctx = llm.WithPurpose(ctx, "question-gen")

	count := input.Count
	if count <= 0 {
		count = s.config.DefaultCount
	}

	req := llm.Request{
		System: generationSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildGenerationMessage(input, count)},
		},
		Schema:      QuestionSetSchema,
		MaxTokens:   s.config.MaxTokens,
		Temperature: s.config.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("question generation failed: %w", err)
	}

	questions, err := decodeQuestions(resp.Content)
	if err != nil {
		return nil, err
	}
	if err := validateBatch(questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// evaluationOutput is the raw grading response before conversion.
type evaluationOutput struct {
	Score        int    `json:"score"`
	Feedback     string `json:"feedback"`
	BetterAnswer string `json:"betterAnswer"`
}

// Evaluate grades one free-text answer.
func (s *LLMService) Evaluate(ctx context.Context, input EvaluateInput) (*quiz.EvaluationResult, error) {
	ctx = llm.WithPurpose(ctx, "answer-eval")

	req := llm.Request{
		System: evaluationSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildEvaluationMessage(input)},
		},
		Schema:      EvaluationSchema,
		MaxTokens:   s.config.MaxTokens,
		Temperature: 0,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("answer evaluation failed: %w", err)
	}

	var out evaluationOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("failed to parse evaluation response: %w", err)
	}
	if out.Score < 0 || out.Score > 100 {
		return nil, &quiz.ValidationError{Reason: fmt.Sprintf("evaluation score %d out of range", out.Score)}
	}

	return &quiz.EvaluationResult{
		Score:        out.Score,
		Feedback:     out.Feedback,
		BetterAnswer: out.BetterAnswer,
	}, nil
}
