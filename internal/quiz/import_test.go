package quiz

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestImportQuestionSet_BareArray(t *testing.T) {
	data := []byte(`[
		{"id":"a","kind":"multiple-choice","prompt":"Pick one","options":["x","y"],"correctOptionIndex":0},
		{"id":"b","kind":"multiple-choice","prompt":"Pick again","options":["x","y"],"correctOptionIndex":1}
	]`)

	qs, mode, err := ImportQuestionSet(data)
	if err != nil {
		t.Fatalf("ImportQuestionSet: %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("got %d questions, want 2", len(qs))
	}
	if mode != ModeMultipleChoice {
		t.Errorf("mode = %q, want %q", mode, ModeMultipleChoice)
	}
}

func TestImportQuestionSet_WrappedObject(t *testing.T) {
	data := []byte(`{"questions":[{"id":"a","kind":"open-ended","prompt":"Explain"}]}`)

	qs, mode, err := ImportQuestionSet(data)
	if err != nil {
		t.Fatalf("ImportQuestionSet: %v", err)
	}
	if len(qs) != 1 {
		t.Fatalf("got %d questions, want 1", len(qs))
	}
	if mode != ModeOpenEnded {
		t.Errorf("mode = %q, want %q", mode, ModeOpenEnded)
	}
}

func TestImportQuestionSet_MixedKinds(t *testing.T) {
	data := []byte(`[
		{"id":"a","kind":"multiple-choice","prompt":"p","options":["x","y"],"correctOptionIndex":0},
		{"id":"b","kind":"open-ended","prompt":"q"}
	]`)

	_, mode, err := ImportQuestionSet(data)
	if err != nil {
		t.Fatalf("ImportQuestionSet: %v", err)
	}
	if mode != ModeMixed {
		t.Errorf("mode = %q, want %q", mode, ModeMixed)
	}
}

func TestImportQuestionSet_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty array", `[]`},
		{"non-array", `{"topic":"x"}`},
		{"scalar", `42`},
		{"malformed", `[{"id":"a"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ImportQuestionSet([]byte(tt.data))
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestTemplate_RoundTrips(t *testing.T) {
	data, err := Template()
	if err != nil {
		t.Fatalf("Template: %v", err)
	}

	qs, mode, err := ImportQuestionSet(data)
	if err != nil {
		t.Fatalf("template does not import cleanly: %v", err)
	}
	if len(qs) != 2 {
		t.Errorf("template has %d questions, want 2", len(qs))
	}
	if mode != ModeMixed {
		t.Errorf("template mode = %q, want %q", mode, ModeMixed)
	}

	// The template is user-facing documentation; keep it valid JSON with
	// both kinds represented.
	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("template is not a JSON array: %v", err)
	}
}
