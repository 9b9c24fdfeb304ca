package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackyw/quizcard/internal/history"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testItem(sessionID string, createdAt time.Time) history.Item {
	return history.Item{
		SessionID:      sessionID,
		Topic:          "go interfaces",
		Mode:           "multiple-choice",
		Score:          3,
		TotalQuestions: 5,
		Questions: []history.QuestionRecord{
			{
				ID:                 "q1",
				Kind:               "multiple-choice",
				Prompt:             "Which keyword declares an interface?",
				Options:            []string{"struct", "type", "interface", "func"},
				CorrectOptionIndex: 2,
			},
		},
		CreatedAt: createdAt,
	}
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.Client() == nil {
		t.Fatal("expected non-nil ent client")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is only meaningful with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{"history_items", "llm_request_events"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("query sqlite_master for %s: %v", table, err)
		}
		if name != table {
			t.Errorf("table name = %q, want %q", name, table)
		}
	}
}

func TestHistoryInsertAndList(t *testing.T) {
	s := openTestStore(t)
	repo := s.HistoryRepo()
	ctx := context.Background()

	items, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list (empty): %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty history, got %d items", len(items))
	}

	now := time.Now().UTC().Truncate(time.Second)
	if err := repo.InsertFront(ctx, testItem("1700000000001", now)); err != nil {
		t.Fatalf("insert: %v", err)
	}

	items, err = repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}

	got := items[0]
	if got.SessionID != "1700000000001" {
		t.Errorf("session id = %q, want %q", got.SessionID, "1700000000001")
	}
	if got.Topic != "go interfaces" {
		t.Errorf("topic = %q, want %q", got.Topic, "go interfaces")
	}
	if got.Score != 3 || got.TotalQuestions != 5 {
		t.Errorf("score = %d/%d, want 3/5", got.Score, got.TotalQuestions)
	}
	if len(got.Questions) != 1 {
		t.Fatalf("expected 1 question record, got %d", len(got.Questions))
	}
	if got.Questions[0].CorrectOptionIndex != 2 {
		t.Errorf("correct option index = %d, want 2", got.Questions[0].CorrectOptionIndex)
	}
}

func TestHistoryListNewestFirst(t *testing.T) {
	s := openTestStore(t)
	repo := s.HistoryRepo()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 3; i++ {
		item := testItem(fmt.Sprintf("sess-%d", i+1), base.Add(time.Duration(i)*time.Minute))
		if err := repo.InsertFront(ctx, item); err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
	}

	items, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].SessionID != "sess-3" {
		t.Errorf("first item = %q, want sess-3", items[0].SessionID)
	}
	if items[2].SessionID != "sess-1" {
		t.Errorf("last item = %q, want sess-1", items[2].SessionID)
	}
}

func TestHistoryEvictsBeyondCap(t *testing.T) {
	s := openTestStore(t)
	repo := s.HistoryRepo()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < history.MaxItems+1; i++ {
		item := testItem(fmt.Sprintf("sess-%d", i+1), base.Add(time.Duration(i)*time.Minute))
		if err := repo.InsertFront(ctx, item); err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
	}

	items, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != history.MaxItems {
		t.Fatalf("expected %d items after eviction, got %d", history.MaxItems, len(items))
	}
	// The newest survives, the oldest is gone.
	if items[0].SessionID != fmt.Sprintf("sess-%d", history.MaxItems+1) {
		t.Errorf("newest item = %q, want sess-%d", items[0].SessionID, history.MaxItems+1)
	}
	for _, it := range items {
		if it.SessionID == "sess-1" {
			t.Error("oldest item sess-1 should have been evicted")
		}
	}
}

func TestHistoryDeleteByID(t *testing.T) {
	s := openTestStore(t)
	repo := s.HistoryRepo()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	if err := repo.InsertFront(ctx, testItem("keep", now)); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := repo.InsertFront(ctx, testItem("drop", now.Add(time.Minute))); err != nil {
		t.Fatalf("insert: %v", err)
	}

	if err := repo.DeleteByID(ctx, "drop"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	items, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item after delete, got %d", len(items))
	}
	if items[0].SessionID != "keep" {
		t.Errorf("remaining item = %q, want keep", items[0].SessionID)
	}

	// Deleting an unknown id is a no-op.
	if err := repo.DeleteByID(ctx, "nope"); err != nil {
		t.Fatalf("delete unknown: %v", err)
	}
}

func TestEventAppendAndList(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider:     "mock",
			Model:        "mock-model",
			Purpose:      "question-gen",
			InputTokens:  100 + i,
			OutputTokens: 200 + i,
			LatencyMs:    int64(50 + i),
			Success:      true,
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	records, err := repo.ListLLMRequests(ctx, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	for _, rec := range records {
		if rec.Provider != "mock" || rec.Purpose != "question-gen" {
			t.Errorf("record = %+v, want provider mock / purpose question-gen", rec)
		}
		if !rec.Success {
			t.Error("expected success = true")
		}
	}

	limited, err := repo.ListLLMRequests(ctx, 2)
	if err != nil {
		t.Fatalf("list limited: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("expected 2 records with limit, got %d", len(limited))
	}
}

func TestEventAppendFailure(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider:     "anthropic",
		Model:        "claude",
		Purpose:      "answer-eval",
		Success:      false,
		ErrorMessage: "rate limited",
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	records, err := repo.ListLLMRequests(ctx, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Success {
		t.Error("expected success = false")
	}
	if records[0].ErrorMessage != "rate limited" {
		t.Errorf("error message = %q, want %q", records[0].ErrorMessage, "rate limited")
	}
}
