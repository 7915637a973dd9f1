package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/nutri-api/internal/repository"
)

// Table implements repository.Table with hand-built SQL over sqlx
type Table[T any] struct {
	db   *sqlx.DB
	name string
}

func NewTable[T any](db *sqlx.DB, name string) *Table[T] {
	return &Table[T]{db: db, name: name}
}

func (t *Table[T]) Name() string {
	return t.name
}

func (t *Table[T]) Find(ctx context.Context, q repository.Query) ([]T, error) {
	tail, args := q.SQL()
	query := t.db.Rebind("SELECT * FROM " + t.name + tail)

	rows := make([]T, 0)
	if err := t.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", t.name, translate(err))
	}
	return rows, nil
}

func (t *Table[T]) First(ctx context.Context, q repository.Query) (T, error) {
	var row T
	tail, args := q.Limit(1).SQL()
	query := t.db.Rebind("SELECT * FROM " + t.name + tail)

	if err := t.db.GetContext(ctx, &row, query, args...); err != nil {
		translated := translate(err)
		if translated == repository.ErrNotFound {
			return row, repository.ErrNotFound
		}
		return row, fmt.Errorf("failed to query %s: %w", t.name, translated)
	}
	return row, nil
}

func (t *Table[T]) Insert(ctx context.Context, values repository.Values) (T, error) {
	var row T
	cols := values.Columns()
	placeholders := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, col := range cols {
		placeholders[i] = "?"
		args[i] = values[col]
	}

	query := t.db.Rebind(fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		t.name,
		strings.Join(cols, ", "),
		strings.Join(placeholders, ", "),
	))
	if err := t.db.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		return row, fmt.Errorf("failed to insert into %s: %w", t.name, translate(err))
	}
	return row, nil
}

func (t *Table[T]) Update(ctx context.Context, q repository.Query, values repository.Values) (int64, error) {
	cols := values.Columns()
	if len(cols) == 0 {
		return 0, fmt.Errorf("update %s: no columns", t.name)
	}
	sets := make([]string, len(cols))
	args := make([]any, 0, len(cols))
	for i, col := range cols {
		sets[i] = col + " = ?"
		args = append(args, values[col])
	}

	where, whereArgs := q.Where()
	query := "UPDATE " + t.name + " SET " + strings.Join(sets, ", ")
	if where != "" {
		query += " WHERE " + where
		args = append(args, whereArgs...)
	}

	res, err := t.db.ExecContext(ctx, t.db.Rebind(query), args...)
	if err != nil {
		return 0, fmt.Errorf("failed to update %s: %w", t.name, translate(err))
	}
	return res.RowsAffected()
}

func (t *Table[T]) Delete(ctx context.Context, q repository.Query) (int64, error) {
	where, args := q.Where()
	query := "DELETE FROM " + t.name
	if where != "" {
		query += " WHERE " + where
	}

	res, err := t.db.ExecContext(ctx, t.db.Rebind(query), args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete from %s: %w", t.name, translate(err))
	}
	return res.RowsAffected()
}
