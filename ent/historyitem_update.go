// Code generated by ent, DO NOT EDIT.

package ent

import (
	"context"
	"errors"
	"fmt"

	"entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/sqlgraph"
	"entgo.io/ent/dialect/sql/sqljson"
	"entgo.io/ent/schema/field"
	"github.com/jackyw/quizcard/ent/historyitem"
	"github.com/jackyw/quizcard/ent/predicate"
	"github.com/jackyw/quizcard/ent/schema"
)

// HistoryItemUpdate is the builder for updating HistoryItem entities.
type HistoryItemUpdate struct {
	config
	hooks    []Hook
	mutation *HistoryItemMutation
}

// Where appends a list predicates to the HistoryItemUpdate builder.
func (_u *HistoryItemUpdate) Where(ps ...predicate.HistoryItem) *HistoryItemUpdate {
	_u.mutation.Where(ps...)
	return _u
}

// SetTopic sets the "topic" field.
func (_u *HistoryItemUpdate) SetTopic(v string) *HistoryItemUpdate {
	_u.mutation.SetTopic(v)
	return _u
}

// SetNillableTopic sets the "topic" field if the given value is not nil.
func (_u *HistoryItemUpdate) SetNillableTopic(v *string) *HistoryItemUpdate {
	if v != nil {
		_u.SetTopic(*v)
	}
	return _u
}

// SetMode sets the "mode" field.
func (_u *HistoryItemUpdate) SetMode(v string) *HistoryItemUpdate {
	_u.mutation.SetMode(v)
	return _u
}

// SetNillableMode sets the "mode" field if the given value is not nil.
func (_u *HistoryItemUpdate) SetNillableMode(v *string) *HistoryItemUpdate {
	if v != nil {
		_u.SetMode(*v)
	}
	return _u
}

// SetScore sets the "score" field.
func (_u *HistoryItemUpdate) SetScore(v int) *HistoryItemUpdate {
	_u.mutation.ResetScore()
	_u.mutation.SetScore(v)
	return _u
}

// SetNillableScore sets the "score" field if the given value is not nil.
func (_u *HistoryItemUpdate) SetNillableScore(v *int) *HistoryItemUpdate {
	if v != nil {
		_u.SetScore(*v)
	}
	return _u
}

// AddScore adds value to the "score" field.
func (_u *HistoryItemUpdate) AddScore(v int) *HistoryItemUpdate {
	_u.mutation.AddScore(v)
	return _u
}

// SetTotalQuestions sets the "total_questions" field.
func (_u *HistoryItemUpdate) SetTotalQuestions(v int) *HistoryItemUpdate {
	_u.mutation.ResetTotalQuestions()
	_u.mutation.SetTotalQuestions(v)
	return _u
}

// SetNillableTotalQuestions sets the "total_questions" field if the given value is not nil.
func (_u *HistoryItemUpdate) SetNillableTotalQuestions(v *int) *HistoryItemUpdate {
	if v != nil {
		_u.SetTotalQuestions(*v)
	}
	return _u
}

// AddTotalQuestions adds value to the "total_questions" field.
func (_u *HistoryItemUpdate) AddTotalQuestions(v int) *HistoryItemUpdate {
	_u.mutation.AddTotalQuestions(v)
	return _u
}

// SetQuestions sets the "questions" field.
func (_u *HistoryItemUpdate) SetQuestions(v []schema.QuestionRecord) *HistoryItemUpdate {
	_u.mutation.SetQuestions(v)
	return _u
}

// AppendQuestions appends value to the "questions" field.
func (_u *HistoryItemUpdate) AppendQuestions(v []schema.QuestionRecord) *HistoryItemUpdate {
	_u.mutation.AppendQuestions(v)
	return _u
}

// Mutation returns the HistoryItemMutation object of the builder.
func (_u *HistoryItemUpdate) Mutation() *HistoryItemMutation {
	return _u.mutation
}

// Save executes the query and returns the number of nodes affected by the update operation.
func (_u *HistoryItemUpdate) Save(ctx context.Context) (int, error) {
	return withHooks(ctx, _u.sqlSave, _u.mutation, _u.hooks)
}

// SaveX is like Save, but panics if an error occurs.
func (_u *HistoryItemUpdate) SaveX(ctx context.Context) int {
	affected, err := _u.Save(ctx)
	if err != nil {
		panic(err)
	}
	return affected
}

// Exec executes the query.
func (_u *HistoryItemUpdate) Exec(ctx context.Context) error {
	_, err := _u.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_u *HistoryItemUpdate) ExecX(ctx context.Context) {
	if err := _u.Exec(ctx); err != nil {
		panic(err)
	}
}

func (_u *HistoryItemUpdate) sqlSave(ctx context.Context) (_node int, err error) {
	_spec := sqlgraph.NewUpdateSpec(historyitem.Table, historyitem.Columns, sqlgraph.NewFieldSpec(historyitem.FieldID, field.TypeInt))
	if ps := _u.mutation.predicates; len(ps) > 0 {
		_spec.Predicate = func(selector *sql.Selector) {
			for i := range ps {
				ps[i](selector)
			}
		}
	}
	if value, ok := _u.mutation.Topic(); ok {
		_spec.SetField(historyitem.FieldTopic, field.TypeString, value)
	}
	if value, ok := _u.mutation.Mode(); ok {
		_spec.SetField(historyitem.FieldMode, field.TypeString, value)
	}
	if value, ok := _u.mutation.Score(); ok {
		_spec.SetField(historyitem.FieldScore, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedScore(); ok {
		_spec.AddField(historyitem.FieldScore, field.TypeInt, value)
	}
	if value, ok := _u.mutation.TotalQuestions(); ok {
		_spec.SetField(historyitem.FieldTotalQuestions, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedTotalQuestions(); ok {
		_spec.AddField(historyitem.FieldTotalQuestions, field.TypeInt, value)
	}
	if value, ok := _u.mutation.Questions(); ok {
		_spec.SetField(historyitem.FieldQuestions, field.TypeJSON, value)
	}
	if value, ok := _u.mutation.AppendedQuestions(); ok {
		_spec.AddModifier(func(u *sql.UpdateBuilder) {
			sqljson.Append(u, historyitem.FieldQuestions, value)
		})
	}
	if _node, err = sqlgraph.UpdateNodes(ctx, _u.driver, _spec); err != nil {
		if _, ok := err.(*sqlgraph.NotFoundError); ok {
			err = &NotFoundError{historyitem.Label}
		} else if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return 0, err
	}
	_u.mutation.done = true
	return _node, nil
}

// HistoryItemUpdateOne is the builder for updating a single HistoryItem entity.
type HistoryItemUpdateOne struct {
	config
	fields   []string
	hooks    []Hook
	mutation *HistoryItemMutation
}

// SetTopic sets the "topic" field.
func (_u *HistoryItemUpdateOne) SetTopic(v string) *HistoryItemUpdateOne {
	_u.mutation.SetTopic(v)
	return _u
}

// SetNillableTopic sets the "topic" field if the given value is not nil.
func (_u *HistoryItemUpdateOne) SetNillableTopic(v *string) *HistoryItemUpdateOne {
	if v != nil {
		_u.SetTopic(*v)
	}
	return _u
}

// SetMode sets the "mode" field.
func (_u *HistoryItemUpdateOne) SetMode(v string) *HistoryItemUpdateOne {
	_u.mutation.SetMode(v)
	return _u
}

// SetNillableMode sets the "mode" field if the given value is not nil.
func (_u *HistoryItemUpdateOne) SetNillableMode(v *string) *HistoryItemUpdateOne {
	if v != nil {
		_u.SetMode(*v)
	}
	return _u
}

// SetScore sets the "score" field.
func (_u *HistoryItemUpdateOne) SetScore(v int) *HistoryItemUpdateOne {
	_u.mutation.ResetScore()
	_u.mutation.SetScore(v)
	return _u
}

// SetNillableScore sets the "score" field if the given value is not nil.
func (_u *HistoryItemUpdateOne) SetNillableScore(v *int) *HistoryItemUpdateOne {
	if v != nil {
		_u.SetScore(*v)
	}
	return _u
}

// AddScore adds value to the "score" field.
func (_u *HistoryItemUpdateOne) AddScore(v int) *HistoryItemUpdateOne {
	_u.mutation.AddScore(v)
	return _u
}

// SetTotalQuestions sets the "total_questions" field.
func (_u *HistoryItemUpdateOne) SetTotalQuestions(v int) *HistoryItemUpdateOne {
	_u.mutation.ResetTotalQuestions()
	_u.mutation.SetTotalQuestions(v)
	return _u
}

// SetNillableTotalQuestions sets the "total_questions" field if the given value is not nil.
func (_u *HistoryItemUpdateOne) SetNillableTotalQuestions(v *int) *HistoryItemUpdateOne {
	if v != nil {
		_u.SetTotalQuestions(*v)
	}
	return _u
}

// AddTotalQuestions adds value to the "total_questions" field.
func (_u *HistoryItemUpdateOne) AddTotalQuestions(v int) *HistoryItemUpdateOne {
	_u.mutation.AddTotalQuestions(v)
	return _u
}

// SetQuestions sets the "questions" field.
func (_u *HistoryItemUpdateOne) SetQuestions(v []schema.QuestionRecord) *HistoryItemUpdateOne {
	_u.mutation.SetQuestions(v)
	return _u
}

// AppendQuestions appends value to the "questions" field.
func (_u *HistoryItemUpdateOne) AppendQuestions(v []schema.QuestionRecord) *HistoryItemUpdateOne {
	_u.mutation.AppendQuestions(v)
	return _u
}

// Mutation returns the HistoryItemMutation object of the builder.
func (_u *HistoryItemUpdateOne) Mutation() *HistoryItemMutation {
	return _u.mutation
}

// Where appends a list predicates to the HistoryItemUpdate builder.
func (_u *HistoryItemUpdateOne) Where(ps ...predicate.HistoryItem) *HistoryItemUpdateOne {
	_u.mutation.Where(ps...)
	return _u
}

// Select allows selecting one or more fields (columns) of the returned entity.
// The default is selecting all fields defined in the entity schema.
func (_u *HistoryItemUpdateOne) Select(field string, fields ...string) *HistoryItemUpdateOne {
	_u.fields = append([]string{field}, fields...)
	return _u
}

// Save executes the query and returns the updated HistoryItem entity.
func (_u *HistoryItemUpdateOne) Save(ctx context.Context) (*HistoryItem, error) {
	return withHooks(ctx, _u.sqlSave, _u.mutation, _u.hooks)
}

// SaveX is like Save, but panics if an error occurs.
func (_u *HistoryItemUpdateOne) SaveX(ctx context.Context) *HistoryItem {
	node, err := _u.Save(ctx)
	if err != nil {
		panic(err)
	}
	return node
}

// Exec executes the query on the entity.
func (_u *HistoryItemUpdateOne) Exec(ctx context.Context) error {
	_, err := _u.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_u *HistoryItemUpdateOne) ExecX(ctx context.Context) {
	if err := _u.Exec(ctx); err != nil {
		panic(err)
	}
}

func (_u *HistoryItemUpdateOne) sqlSave(ctx context.Context) (_node *HistoryItem, err error) {
	_spec := sqlgraph.NewUpdateSpec(historyitem.Table, historyitem.Columns, sqlgraph.NewFieldSpec(historyitem.FieldID, field.TypeInt))
	id, ok := _u.mutation.ID()
	if !ok {
		return nil, &ValidationError{Name: "id", err: errors.New(`ent: missing "HistoryItem.id" for update`)}
	}
	_spec.Node.ID.Value = id
	if fields := _u.fields; len(fields) > 0 {
		_spec.Node.Columns = make([]string, 0, len(fields))
		_spec.Node.Columns = append(_spec.Node.Columns, historyitem.FieldID)
		for _, f := range fields {
			if !historyitem.ValidColumn(f) {
				return nil, &ValidationError{Name: f, err: fmt.Errorf("ent: invalid field %q for query", f)}
			}
			if f != historyitem.FieldID {
				_spec.Node.Columns = append(_spec.Node.Columns, f)
			}
		}
	}
	if ps := _u.mutation.predicates; len(ps) > 0 {
		_spec.Predicate = func(selector *sql.Selector) {
			for i := range ps {
				ps[i](selector)
			}
		}
	}
	if value, ok := _u.mutation.Topic(); ok {
		_spec.SetField(historyitem.FieldTopic, field.TypeString, value)
	}
	if value, ok := _u.mutation.Mode(); ok {
		_spec.SetField(historyitem.FieldMode, field.TypeString, value)
	}
	if value, ok := _u.mutation.Score(); ok {
		_spec.SetField(historyitem.FieldScore, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedScore(); ok {
		_spec.AddField(historyitem.FieldScore, field.TypeInt, value)
	}
	if value, ok := _u.mutation.TotalQuestions(); ok {
		_spec.SetField(historyitem.FieldTotalQuestions, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedTotalQuestions(); ok {
		_spec.AddField(historyitem.FieldTotalQuestions, field.TypeInt, value)
	}
	if value, ok := _u.mutation.Questions(); ok {
		_spec.SetField(historyitem.FieldQuestions, field.TypeJSON, value)
	}
	if value, ok := _u.mutation.AppendedQuestions(); ok {
		_spec.AddModifier(func(u *sql.UpdateBuilder) {
			sqljson.Append(u, historyitem.FieldQuestions, value)
		})
	}
	_node = &HistoryItem{config: _u.config}
	_spec.Assign = _node.assignValues
	_spec.ScanValues = _node.scanValues
	if err = sqlgraph.UpdateNode(ctx, _u.driver, _spec); err != nil {
		if _, ok := err.(*sqlgraph.NotFoundError); ok {
			err = &NotFoundError{historyitem.Label}
		} else if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return nil, err
	}
	_u.mutation.done = true
	return _node, nil
}
