package llm

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/jackyw/quizcard/internal/store"
)

// captureRepo records appended LLM events for assertions.
type captureRepo struct {
	events []store.LLMRequestEventData
}

func (c *captureRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	c.events = append(c.events, data)
	return nil
}

func (c *captureRepo) ListLLMRequests(_ context.Context, _ int) ([]store.LLMRequestEventRecord, error) {
	return nil, nil
}

func TestLoggingProvider_RecordsSuccess(t *testing.T) {
	repo := &captureRepo{}
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"ok":true}`),
		Usage:   Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15},
	})
	p := WithLogging(mock, repo)

	ctx := WithPurpose(context.Background(), "question-gen")
	if _, err := p.Generate(ctx, Request{MaxTokens: 100}); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if len(repo.events) != 1 {
		t.Fatalf("got %d events, want 1", len(repo.events))
	}
	e := repo.events[0]
	if !e.Success {
		t.Error("expected Success = true")
	}
	if e.Purpose != "question-gen" {
		t.Errorf("Purpose = %q, want %q", e.Purpose, "question-gen")
	}
	if e.InputTokens != 10 || e.OutputTokens != 5 {
		t.Errorf("tokens = %d/%d, want 10/5", e.InputTokens, e.OutputTokens)
	}
}

func TestLoggingProvider_RecordsFailure(t *testing.T) {
	repo := &captureRepo{}
	p := WithLogging(NewMockProvider(), repo) // empty queue fails

	_, err := p.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected an error from the empty mock")
	}

	if len(repo.events) != 1 {
		t.Fatalf("got %d events, want 1", len(repo.events))
	}
	e := repo.events[0]
	if e.Success {
		t.Error("expected Success = false")
	}
	if e.ErrorMessage == "" {
		t.Error("expected a recorded error message")
	}
	if e.Purpose != "unknown" {
		t.Errorf("Purpose = %q, want %q", e.Purpose, "unknown")
	}
}
