package store

import (
	"context"
	"fmt"

	"github.com/jackyw/quizcard/ent"
	"github.com/jackyw/quizcard/ent/historyitem"
	entschema "github.com/jackyw/quizcard/ent/schema"
	"github.com/jackyw/quizcard/internal/history"
)

// historyRepo implements history.Store using the ent client.
type historyRepo struct {
	client *ent.Client
}

func (r *historyRepo) InsertFront(ctx context.Context, item history.Item) error {
	qs := make([]entschema.QuestionRecord, len(item.Questions))
	for i, q := range item.Questions {
		qs[i] = entschema.QuestionRecord{
			ID:                 q.ID,
			Kind:               q.Kind,
			Prompt:             q.Prompt,
			Options:            q.Options,
			CorrectOptionIndex: q.CorrectOptionIndex,
			Explanation:        q.Explanation,
			ModelAnswer:        q.ModelAnswer,
		}
	}

	_, err := r.client.HistoryItem.Create().
		SetSessionID(item.SessionID).
		SetTopic(item.Topic).
		SetMode(item.Mode).
		SetScore(item.Score).
		SetTotalQuestions(item.TotalQuestions).
		SetQuestions(qs).
		SetTimestamp(item.CreatedAt).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("save history item: %w", err)
	}

	return r.prune(ctx)
}

func (r *historyRepo) ListAll(ctx context.Context) ([]history.Item, error) {
	rows, err := r.client.HistoryItem.Query().
		Order(ent.Desc(historyitem.FieldTimestamp)).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}

	items := make([]history.Item, len(rows))
	for i, row := range rows {
		items[i] = entItemToHistoryItem(row)
	}
	return items, nil
}

func (r *historyRepo) DeleteByID(ctx context.Context, sessionID string) error {
	_, err := r.client.HistoryItem.Delete().
		Where(historyitem.SessionID(sessionID)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete history item: %w", err)
	}
	return nil
}

// prune truncates the list to the history.MaxItems most recent entries.
func (r *historyRepo) prune(ctx context.Context) error {
	excess, err := r.client.HistoryItem.Query().
		Order(ent.Desc(historyitem.FieldTimestamp)).
		Offset(history.MaxItems).
		All(ctx)
	if err != nil {
		return fmt.Errorf("query history for prune: %w", err)
	}
	if len(excess) == 0 {
		return nil
	}

	ids := make([]int, len(excess))
	for i, row := range excess {
		ids[i] = row.ID
	}
	_, err = r.client.HistoryItem.Delete().
		Where(historyitem.IDIn(ids...)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("prune history: %w", err)
	}
	return nil
}

func entItemToHistoryItem(row *ent.HistoryItem) history.Item {
	qs := make([]history.QuestionRecord, len(row.Questions))
	for i, q := range row.Questions {
		qs[i] = history.QuestionRecord{
			ID:                 q.ID,
			Kind:               q.Kind,
			Prompt:             q.Prompt,
			Options:            q.Options,
			CorrectOptionIndex: q.CorrectOptionIndex,
			Explanation:        q.Explanation,
			ModelAnswer:        q.ModelAnswer,
		}
	}
	return history.Item{
		SessionID:      row.SessionID,
		Topic:          row.Topic,
		Mode:           row.Mode,
		Score:          row.Score,
		TotalQuestions: row.TotalQuestions,
		Questions:      qs,
		CreatedAt:      row.Timestamp,
	}
}
