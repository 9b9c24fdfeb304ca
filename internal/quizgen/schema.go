package quizgen

import "github.com/jackyw/quizcard/internal/llm"

// QuestionSetSchema defines the JSON schema for question generation
// responses.
var QuestionSetSchema = &llm.Schema{
	Name:        "quiz-question-set",
	Description: "A complete set of quiz questions for one topic",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id": map[string]any{
							"type":        "string",
							"description": "Short unique id for the question, e.g. q1",
						},
						"kind": map[string]any{
							"type":        "string",
							"enum":        []any{"multiple-choice", "open-ended"},
							"description": "How the learner answers this question",
						},
						"prompt": map[string]any{
							"type":        "string",
							"description": "The question text shown to the learner",
						},
						"options": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "string",
							},
							"description": "Exactly 4 options for multiple-choice. Empty for open-ended.",
						},
						"correctOptionIndex": map[string]any{
							"type":        "integer",
							"description": "Zero-based index of the correct option. Only for multiple-choice.",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "Why the correct option is correct. Only for multiple-choice.",
						},
						"modelAnswer": map[string]any{
							"type":        "string",
							"description": "A concise reference answer. Only for open-ended.",
						},
					},
					"required":             []any{"id", "kind", "prompt"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

// EvaluationSchema defines the JSON schema for answer grading responses.
var EvaluationSchema = &llm.Schema{
	Name:        "answer-evaluation",
	Description: "A graded assessment of one free-text answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"score": map[string]any{
				"type":        "integer",
				"minimum":     0,
				"maximum":     100,
				"description": "Correctness score from 0 to 100",
			},
			"feedback": map[string]any{
				"type":        "string",
				"description": "Short specific feedback on the answer",
			},
			"betterAnswer": map[string]any{
				"type":        "string",
				"description": "A concise model answer the learner can compare against",
			},
		},
		"required":             []any{"score", "feedback", "betterAnswer"},
		"additionalProperties": false,
	},
}
