package quizgen

import (
	"fmt"
	"strings"

	"github.com/jackyw/quizcard/internal/quiz"
)

const generationSystemPrompt = `You are a quiz author creating practice questions for self-study.

Rules:
- Generate questions strictly about the given topic. Stay factual and unambiguous.
- Each question gets a unique short id such as "q1", "q2".
- Multiple-choice questions have exactly 4 options with exactly one correct option, identified by its zero-based index. Distractors should reflect plausible misconceptions, not random noise.
- Multiple-choice questions include a one-or-two sentence explanation of the correct option.
- Open-ended questions ask for a short free-text answer and include a concise model answer.
- Write in plain text. No markdown formatting inside prompts, options, or answers.`

const evaluationSystemPrompt = `You are grading a learner's free-text answer to a quiz question.

Rules:
- Score from 0 to 100 based on factual correctness and completeness. 100 means fully correct, 0 means entirely wrong or empty of content.
- Give short, specific feedback that names what was right and what was missing.
- Provide a better answer: a concise model response the learner can compare against.
- Grade the content only. Ignore spelling, grammar, and phrasing.`

// buildGenerationMessage constructs the user message for one question-set
// request.
func buildGenerationMessage(input GenerateInput, count int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Topic: %s\n", input.Topic)
	fmt.Fprintf(&b, "Number of questions: %d\n", count)

	switch input.Mode {
	case quiz.ModeMultipleChoice:
		b.WriteString("Question kind: multiple-choice only\n")
	case quiz.ModeOpenEnded:
		b.WriteString("Question kind: open-ended only\n")
	default:
		b.WriteString("Question kind: a mix of multiple-choice and open-ended\n")
	}

	return b.String()
}

// buildEvaluationMessage constructs the user message for grading one
// answer.
func buildEvaluationMessage(input EvaluateInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Topic: %s\n", input.Topic)
	fmt.Fprintf(&b, "Question: %s\n", input.Question)
	fmt.Fprintf(&b, "Learner's answer: %s\n", input.Answer)

	return b.String()
}
