package quizgen

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackyw/quizcard/internal/quiz"
)

// decodeQuestions turns a raw LLM payload into a question list. Models
// do not always return clean JSON even when asked for it, so this tries
// increasingly forgiving strategies before giving up:
//
//  1. parse the payload as-is,
//  2. strip markdown code fences and parse the remainder,
//  3. extract the first balanced array or object substring and parse that.
//
// Each strategy accepts both a bare array and the {questions: [...]}
// wrapper.
func decodeQuestions(raw []byte) ([]quiz.Question, error) {
	if qs, err := parseQuestionDoc(raw); err == nil {
		return qs, nil
	}

	stripped := stripCodeFences(string(raw))
	if qs, err := parseQuestionDoc([]byte(stripped)); err == nil {
		return qs, nil
	}

	if sub, ok := firstBalanced(stripped); ok {
		if qs, err := parseQuestionDoc([]byte(sub)); err == nil {
			return qs, nil
		}
	}

	return nil, &quiz.ValidationError{Reason: "response is not a question array"}
}

func parseQuestionDoc(data []byte) ([]quiz.Question, error) {
	var questions []quiz.Question
	if err := json.Unmarshal(data, &questions); err == nil {
		return questions, nil
	}

	var doc struct {
		Questions []quiz.Question `json:"questions"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Questions == nil {
		return nil, fmt.Errorf("no questions key")
	}
	return doc.Questions, nil
}

// stripCodeFences removes surrounding markdown fences such as ```json
// ... ``` so the inner document can be parsed directly.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		// Drop the language tag line, e.g. "json".
		s = s[nl+1:]
	}
	if end := strings.LastIndex(s, "```"); end >= 0 {
		s = s[:end]
	}
	return strings.TrimSpace(s)
}

// firstBalanced returns the first balanced JSON array or object
// substring in s, scanning from the first opening bracket. String
// literals and escapes are respected so brackets inside values do not
// break the match.
func firstBalanced(s string) (string, bool) {
	start := -1
	var open, close byte
	for i := 0; i < len(s); i++ {
		if s[i] == '[' || s[i] == '{' {
			start = i
			open = s[i]
			if open == '[' {
				close = ']'
			} else {
				close = '}'
			}
			break
		}
	}
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

// validateBatch applies the structural contract for generated question
// sets. Any failure rejects the whole batch; no partial list survives.
func validateBatch(questions []quiz.Question) error {
	if len(questions) == 0 {
		return &quiz.ValidationError{Reason: "question array is empty"}
	}
	for i, q := range questions {
		if q.ID == "" {
			return &quiz.ValidationError{Reason: fmt.Sprintf("question %d has no id", i)}
		}
		if !quiz.KnownKind(q.Kind) {
			return &quiz.ValidationError{Reason: fmt.Sprintf("question %q has unknown kind %q", q.ID, q.Kind)}
		}
		if q.Prompt == "" {
			return &quiz.ValidationError{Reason: fmt.Sprintf("question %q has no prompt", q.ID)}
		}
	}
	return nil
}
