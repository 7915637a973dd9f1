package orm

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/jwalitptl/nutri-api/internal/model"
	"github.com/jwalitptl/nutri-api/internal/repository"
)

// Table implements repository.Table on top of gorm
type Table[T any] struct {
	db   *gorm.DB
	name string
}

func NewTable[T any](db *DB, name string) *Table[T] {
	return &Table[T]{db: db.DB, name: name}
}

func (t *Table[T]) Name() string {
	return t.name
}

func (t *Table[T]) scoped(ctx context.Context, q repository.Query) *gorm.DB {
	tx := t.db.WithContext(ctx).Table(t.name)
	if where, args := q.Where(); where != "" {
		tx = tx.Where(where, args...)
	}
	for _, o := range q.Orders() {
		tx = tx.Order(o.String())
	}
	if n := q.LimitValue(); n > 0 {
		tx = tx.Limit(n)
	}
	return tx
}

func (t *Table[T]) Find(ctx context.Context, q repository.Query) ([]T, error) {
	rows := make([]T, 0)
	if err := t.scoped(ctx, q).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", t.name, translate(err))
	}
	return rows, nil
}

func (t *Table[T]) First(ctx context.Context, q repository.Query) (T, error) {
	var zero T
	rows := make([]T, 0, 1)
	result := t.scoped(ctx, q.Limit(1)).Find(&rows)
	if result.Error != nil {
		return zero, fmt.Errorf("failed to query %s: %w", t.name, translate(result.Error))
	}
	if len(rows) == 0 {
		return zero, repository.ErrNotFound
	}
	return rows[0], nil
}

// Insert writes one row and reads it back, so database defaults and
// trigger-maintained columns are part of the result.
func (t *Table[T]) Insert(ctx context.Context, values repository.Values) (T, error) {
	var zero T
	id, ok := values[model.ColumnID]
	if !ok {
		return zero, fmt.Errorf("insert into %s: missing %s", t.name, model.ColumnID)
	}
	if err := t.db.WithContext(ctx).Table(t.name).Create(map[string]any(values)).Error; err != nil {
		return zero, fmt.Errorf("failed to insert into %s: %w", t.name, translate(err))
	}
	return t.First(ctx, repository.NewQuery().Eq(model.ColumnID, id))
}

func (t *Table[T]) Update(ctx context.Context, q repository.Query, values repository.Values) (int64, error) {
	result := t.scoped(ctx, q).Updates(map[string]any(values))
	if result.Error != nil {
		return 0, fmt.Errorf("failed to update %s: %w", t.name, translate(result.Error))
	}
	return result.RowsAffected, nil
}

func (t *Table[T]) Delete(ctx context.Context, q repository.Query) (int64, error) {
	result := t.scoped(ctx, q).Delete(new(T))
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete from %s: %w", t.name, translate(result.Error))
	}
	return result.RowsAffected, nil
}
