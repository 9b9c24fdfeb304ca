package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// QuestionRecord is the JSON shape of one stored question inside a
// history item. History items are self-contained so past sessions can be
// replayed without another generation call.
type QuestionRecord struct {
	ID                 string   `json:"id"`
	Kind               string   `json:"kind"`
	Prompt             string   `json:"prompt"`
	Options            []string `json:"options,omitempty"`
	CorrectOptionIndex int      `json:"correctOptionIndex,omitempty"`
	Explanation        string   `json:"explanation,omitempty"`
	ModelAnswer        string   `json:"modelAnswer,omitempty"`
}

// HistoryItem is a frozen snapshot of a completed quiz session.
type HistoryItem struct {
	ent.Schema
}

func (HistoryItem) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			Unique().
			Immutable().
			Comment("Time-based id assigned at session creation"),
		field.String("topic").
			Comment("User-supplied quiz topic"),
		field.String("mode").
			Comment("Session mode: multiple-choice, open-ended, mixed"),
		field.Int("score").
			Comment("Total score captured at completion"),
		field.Int("total_questions").
			Comment("Question count captured at completion"),
		field.JSON("questions", []QuestionRecord{}).
			Comment("Full question list for replay"),
		field.Time("timestamp").
			Default(time.Now).
			Immutable().
			Comment("When the session completed"),
	}
}

func (HistoryItem) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("timestamp"),
	}
}
