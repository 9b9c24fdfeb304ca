// Package quizgen turns topics into question sets and grades free-text
// answers using an LLM provider. The quiz core stays pure; everything
// that talks to a model lives here.
package quizgen

import (
	"context"

	"github.com/jackyw/quizcard/internal/quiz"
)

// GenerateInput describes one question-set request.
type GenerateInput struct {
	Topic string
	Mode  quiz.Mode

	// Count is the number of questions to produce. Zero means the
	// default batch size.
	Count int
}

// EvaluateInput carries one open-ended answer for grading.
type EvaluateInput struct {
	Topic    string
	Question string
	Answer   string
}

// Generator produces a full question set for a topic.
type Generator interface {
	// Generate returns a validated question list. The whole batch is
	// rejected on any structural failure; no partial list is returned.
	Generate(ctx context.Context, input GenerateInput) ([]quiz.Question, error)
}

// Evaluator grades a single open-ended answer.
type Evaluator interface {
	Evaluate(ctx context.Context, input EvaluateInput) (*quiz.EvaluationResult, error)
}

// Config holds generation tunables.
type Config struct {
	MaxTokens   int
	Temperature float64

	// DefaultCount is the batch size used when GenerateInput.Count is
	// zero.
	DefaultCount int
}

// DefaultConfig returns the standard generation settings.
func DefaultConfig() Config {
	return Config{
		MaxTokens:    4096,
		Temperature:  0.7,
		DefaultCount: 5,
	}
}
