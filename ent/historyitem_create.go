// Code generated by ent, DO NOT EDIT.

package ent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect/sql/sqlgraph"
	"entgo.io/ent/schema/field"
	"github.com/jackyw/quizcard/ent/historyitem"
	"github.com/jackyw/quizcard/ent/schema"
)

// HistoryItemCreate is the builder for creating a HistoryItem entity.
type HistoryItemCreate struct {
	config
	mutation *HistoryItemMutation
	hooks    []Hook
}

// SetSessionID sets the "session_id" field.
func (_c *HistoryItemCreate) SetSessionID(v string) *HistoryItemCreate {
	_c.mutation.SetSessionID(v)
	return _c
}

// SetTopic sets the "topic" field.
func (_c *HistoryItemCreate) SetTopic(v string) *HistoryItemCreate {
	_c.mutation.SetTopic(v)
	return _c
}

// SetMode sets the "mode" field.
func (_c *HistoryItemCreate) SetMode(v string) *HistoryItemCreate {
	_c.mutation.SetMode(v)
	return _c
}

// SetScore sets the "score" field.
func (_c *HistoryItemCreate) SetScore(v int) *HistoryItemCreate {
	_c.mutation.SetScore(v)
	return _c
}

// SetTotalQuestions sets the "total_questions" field.
func (_c *HistoryItemCreate) SetTotalQuestions(v int) *HistoryItemCreate {
	_c.mutation.SetTotalQuestions(v)
	return _c
}

// SetQuestions sets the "questions" field.
func (_c *HistoryItemCreate) SetQuestions(v []schema.QuestionRecord) *HistoryItemCreate {
	_c.mutation.SetQuestions(v)
	return _c
}

// SetTimestamp sets the "timestamp" field.
func (_c *HistoryItemCreate) SetTimestamp(v time.Time) *HistoryItemCreate {
	_c.mutation.SetTimestamp(v)
	return _c
}

// SetNillableTimestamp sets the "timestamp" field if the given value is not nil.
func (_c *HistoryItemCreate) SetNillableTimestamp(v *time.Time) *HistoryItemCreate {
	if v != nil {
		_c.SetTimestamp(*v)
	}
	return _c
}

// Mutation returns the HistoryItemMutation object of the builder.
func (_c *HistoryItemCreate) Mutation() *HistoryItemMutation {
	return _c.mutation
}

// Save creates the HistoryItem in the database.
func (_c *HistoryItemCreate) Save(ctx context.Context) (*HistoryItem, error) {
	_c.defaults()
	return withHooks(ctx, _c.sqlSave, _c.mutation, _c.hooks)
}

// SaveX calls Save and panics if Save returns an error.
func (_c *HistoryItemCreate) SaveX(ctx context.Context) *HistoryItem {
	v, err := _c.Save(ctx)
	if err != nil {
		panic(err)
	}
	return v
}

// Exec executes the query.
func (_c *HistoryItemCreate) Exec(ctx context.Context) error {
	_, err := _c.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_c *HistoryItemCreate) ExecX(ctx context.Context) {
	if err := _c.Exec(ctx); err != nil {
		panic(err)
	}
}

// defaults sets the default values of the builder before save.
func (_c *HistoryItemCreate) defaults() {
	if _, ok := _c.mutation.Timestamp(); !ok {
		v := historyitem.DefaultTimestamp()
		_c.mutation.SetTimestamp(v)
	}
}

// check runs all checks and user-defined validators on the builder.
func (_c *HistoryItemCreate) check() error {
	if _, ok := _c.mutation.SessionID(); !ok {
		return &ValidationError{Name: "session_id", err: errors.New(`ent: missing required field "HistoryItem.session_id"`)}
	}
	if _, ok := _c.mutation.Topic(); !ok {
		return &ValidationError{Name: "topic", err: errors.New(`ent: missing required field "HistoryItem.topic"`)}
	}
	if _, ok := _c.mutation.Mode(); !ok {
		return &ValidationError{Name: "mode", err: errors.New(`ent: missing required field "HistoryItem.mode"`)}
	}
	if _, ok := _c.mutation.Score(); !ok {
		return &ValidationError{Name: "score", err: errors.New(`ent: missing required field "HistoryItem.score"`)}
	}
	if _, ok := _c.mutation.TotalQuestions(); !ok {
		return &ValidationError{Name: "total_questions", err: errors.New(`ent: missing required field "HistoryItem.total_questions"`)}
	}
	if _, ok := _c.mutation.Questions(); !ok {
		return &ValidationError{Name: "questions", err: errors.New(`ent: missing required field "HistoryItem.questions"`)}
	}
	if _, ok := _c.mutation.Timestamp(); !ok {
		return &ValidationError{Name: "timestamp", err: errors.New(`ent: missing required field "HistoryItem.timestamp"`)}
	}
	return nil
}

func (_c *HistoryItemCreate) sqlSave(ctx context.Context) (*HistoryItem, error) {
	if err := _c.check(); err != nil {
		return nil, err
	}
	_node, _spec := _c.createSpec()
	if err := sqlgraph.CreateNode(ctx, _c.driver, _spec); err != nil {
		if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return nil, err
	}
	id := _spec.ID.Value.(int64)
	_node.ID = int(id)
	_c.mutation.id = &_node.ID
	_c.mutation.done = true
	return _node, nil
}

func (_c *HistoryItemCreate) createSpec() (*HistoryItem, *sqlgraph.CreateSpec) {
	var (
		_node = &HistoryItem{config: _c.config}
		_spec = sqlgraph.NewCreateSpec(historyitem.Table, sqlgraph.NewFieldSpec(historyitem.FieldID, field.TypeInt))
	)
	if value, ok := _c.mutation.SessionID(); ok {
		_spec.SetField(historyitem.FieldSessionID, field.TypeString, value)
		_node.SessionID = value
	}
	if value, ok := _c.mutation.Topic(); ok {
		_spec.SetField(historyitem.FieldTopic, field.TypeString, value)
		_node.Topic = value
	}
	if value, ok := _c.mutation.Mode(); ok {
		_spec.SetField(historyitem.FieldMode, field.TypeString, value)
		_node.Mode = value
	}
	if value, ok := _c.mutation.Score(); ok {
		_spec.SetField(historyitem.FieldScore, field.TypeInt, value)
		_node.Score = value
	}
	if value, ok := _c.mutation.TotalQuestions(); ok {
		_spec.SetField(historyitem.FieldTotalQuestions, field.TypeInt, value)
		_node.TotalQuestions = value
	}
	if value, ok := _c.mutation.Questions(); ok {
		_spec.SetField(historyitem.FieldQuestions, field.TypeJSON, value)
		_node.Questions = value
	}
	if value, ok := _c.mutation.Timestamp(); ok {
		_spec.SetField(historyitem.FieldTimestamp, field.TypeTime, value)
		_node.Timestamp = value
	}
	return _node, _spec
}

// HistoryItemCreateBulk is the builder for creating many HistoryItem entities in bulk.
type HistoryItemCreateBulk struct {
	config
	err      error
	builders []*HistoryItemCreate
}

// Save creates the HistoryItem entities in the database.
func (_c *HistoryItemCreateBulk) Save(ctx context.Context) ([]*HistoryItem, error) {
	if _c.err != nil {
		return nil, _c.err
	}
	specs := make([]*sqlgraph.CreateSpec, len(_c.builders))
	nodes := make([]*HistoryItem, len(_c.builders))
	mutators := make([]Mutator, len(_c.builders))
	for i := range _c.builders {
		func(i int, root context.Context) {
			builder := _c.builders[i]
			builder.defaults()
			var mut Mutator = MutateFunc(func(ctx context.Context, m Mutation) (Value, error) {
				mutation, ok := m.(*HistoryItemMutation)
				if !ok {
					return nil, fmt.Errorf("unexpected mutation type %T", m)
				}
				if err := builder.check(); err != nil {
					return nil, err
				}
				builder.mutation = mutation
				var err error
				nodes[i], specs[i] = builder.createSpec()
				if i < len(mutators)-1 {
					_, err = mutators[i+1].Mutate(root, _c.builders[i+1].mutation)
				} else {
					spec := &sqlgraph.BatchCreateSpec{Nodes: specs}
					// Invoke the actual operation on the latest mutation in the chain.
					if err = sqlgraph.BatchCreate(ctx, _c.driver, spec); err != nil {
						if sqlgraph.IsConstraintError(err) {
							err = &ConstraintError{msg: err.Error(), wrap: err}
						}
					}
				}
				if err != nil {
					return nil, err
				}
				mutation.id = &nodes[i].ID
				if specs[i].ID.Value != nil {
					id := specs[i].ID.Value.(int64)
					nodes[i].ID = int(id)
				}
				mutation.done = true
				return nodes[i], nil
			})
			for i := len(builder.hooks) - 1; i >= 0; i-- {
				mut = builder.hooks[i](mut)
			}
			mutators[i] = mut
		}(i, ctx)
	}
	if len(mutators) > 0 {
		if _, err := mutators[0].Mutate(ctx, _c.builders[0].mutation); err != nil {
			return nil, err
		}
	}
	return nodes, nil
}

// SaveX is like Save, but panics if an error occurs.
func (_c *HistoryItemCreateBulk) SaveX(ctx context.Context) []*HistoryItem {
	v, err := _c.Save(ctx)
	if err != nil {
		panic(err)
	}
	return v
}

// Exec executes the query.
func (_c *HistoryItemCreateBulk) Exec(ctx context.Context) error {
	_, err := _c.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_c *HistoryItemCreateBulk) ExecX(ctx context.Context) {
	if err := _c.Exec(ctx); err != nil {
		panic(err)
	}
}
