// Package history defines the contract for the persisted list of
// completed sessions. The quiz core and the screens only ever see this
// interface; the SQLite implementation lives in internal/store.
package history

import (
	"context"
	"time"
)

// MaxItems caps the history list. Inserting beyond the cap evicts the
// oldest entries.
const MaxItems = 50

// QuestionRecord is a self-contained copy of a question inside a history
// item, so past sessions can be replayed without a new generation call.
type QuestionRecord struct {
	ID                 string   `json:"id"`
	Kind               string   `json:"kind"`
	Prompt             string   `json:"prompt"`
	Options            []string `json:"options,omitempty"`
	CorrectOptionIndex int      `json:"correctOptionIndex,omitempty"`
	Explanation        string   `json:"explanation,omitempty"`
	ModelAnswer        string   `json:"modelAnswer,omitempty"`
}

// Item is a frozen snapshot of a completed session. Never mutated after
// creation.
type Item struct {
	SessionID      string
	Topic          string
	Mode           string
	Score          int
	TotalQuestions int
	Questions      []QuestionRecord
	CreatedAt      time.Time
}

// Store is the persistence surface for history items.
type Store interface {
	// InsertFront stores a new item at the front of the list and truncates
	// to the MaxItems most recent entries.
	InsertFront(ctx context.Context, item Item) error

	// ListAll returns all items, most recent first.
	ListAll(ctx context.Context) ([]Item, error)

	// DeleteByID removes the item with the given session id. Unknown ids
	// are a no-op.
	DeleteByID(ctx context.Context, sessionID string) error
}
