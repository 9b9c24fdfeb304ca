package store

import (
	"context"
	"time"
)

// LLMRequestEventData captures one LLM API call for logging.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMRequestEventRecord is a logged LLM request read back from the store.
type LLMRequestEventRecord struct {
	ID           int
	Timestamp    time.Time
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// ListLLMRequests returns the most recent events, newest first.
	// A non-positive limit returns everything.
	ListLLMRequests(ctx context.Context, limit int) ([]LLMRequestEventRecord, error)
}
