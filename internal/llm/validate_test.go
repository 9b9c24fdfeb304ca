package llm

import (
	"errors"
	"testing"
)

var testSchema = &Schema{
	Name:        "test-answer",
	Description: "test schema",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"score": map[string]any{
				"type":    "integer",
				"minimum": 0,
				"maximum": 100,
			},
			"feedback": map[string]any{
				"type": "string",
			},
		},
		"required":             []any{"score", "feedback"},
		"additionalProperties": false,
	},
}

func TestValidateResponse_Valid(t *testing.T) {
	raw := []byte(`{"score": 85, "feedback": "good"}`)
	if err := validateResponse(testSchema, raw); err != nil {
		t.Fatalf("validateResponse: %v", err)
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, []byte(`not even json`)); err != nil {
		t.Fatalf("nil schema must skip validation, got %v", err)
	}
}

func TestValidateResponse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"malformed JSON", `{"score":`},
		{"missing required", `{"score": 85}`},
		{"out of range", `{"score": 150, "feedback": "x"}`},
		{"wrong type", `{"score": "high", "feedback": "x"}`},
		{"extra property", `{"score": 1, "feedback": "x", "bonus": true}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(testSchema, []byte(tt.raw))
			var invErr *ErrInvalidResponse
			if !errors.As(err, &invErr) {
				t.Fatalf("expected ErrInvalidResponse, got %v", err)
			}
		})
	}
}

func TestValidateResponse_CachesCompiledSchema(t *testing.T) {
	raw := []byte(`{"score": 1, "feedback": "x"}`)
	if err := validateResponse(testSchema, raw); err != nil {
		t.Fatalf("first validation: %v", err)
	}
	if _, ok := schemaCache.Load(testSchema.Name); !ok {
		t.Error("expected compiled schema to be cached")
	}
	if err := validateResponse(testSchema, raw); err != nil {
		t.Fatalf("second validation: %v", err)
	}
}
