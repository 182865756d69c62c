package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jaekwang-park/todolist/internal/model"
)

// SQLTodoRepository stores records in the todo_items table. Queries use $n
// placeholders, which both lib/pq and go-sqlite3 accept.
type SQLTodoRepository struct {
	db *sql.DB
}

func NewSQLTodo(db *sql.DB) *SQLTodoRepository {
	return &SQLTodoRepository{db: db}
}

// Ping checks that the pool can still reach the database.
func (r *SQLTodoRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SQLTodoRepository) List(ctx context.Context) ([]model.TodoItem, error) {
	query := `
		SELECT id, title, description, is_completed, created_at, completed_at
		FROM todo_items
		ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	defer rows.Close()

	items := []model.TodoItem{}
	for rows.Next() {
		item, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate todos: %w", err)
	}

	return items, nil
}

func (r *SQLTodoRepository) GetByID(ctx context.Context, id int64) (model.TodoItem, error) {
	query := `
		SELECT id, title, description, is_completed, created_at, completed_at
		FROM todo_items
		WHERE id = $1`

	row := r.db.QueryRowContext(ctx, query, id)
	return scanTodo(row)
}

func (r *SQLTodoRepository) Create(ctx context.Context, item model.TodoItem) (model.TodoItem, error) {
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	// postgres keeps microseconds; match it so the returned record equals a later read
	item.CreatedAt = item.CreatedAt.UTC().Truncate(time.Microsecond)

	query := `
		INSERT INTO todo_items (title, description, is_completed, created_at, completed_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		item.Title, nullString(item.Description), item.IsCompleted, item.CreatedAt, nullTime(item.CompletedAt),
	).Scan(&item.ID)
	if err != nil {
		return model.TodoItem{}, fmt.Errorf("failed to create todo: %w", err)
	}

	return item, nil
}

// Update overwrites every mutable column. created_at is never written.
func (r *SQLTodoRepository) Update(ctx context.Context, item model.TodoItem) error {
	query := `
		UPDATE todo_items
		SET title = $1, description = $2, is_completed = $3, completed_at = $4
		WHERE id = $5`

	result, err := r.db.ExecContext(ctx, query,
		item.Title, nullString(item.Description), item.IsCompleted, nullTime(item.CompletedAt), item.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update todo: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("todo %d: %w", item.ID, sql.ErrNoRows)
	}

	return nil
}

func (r *SQLTodoRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM todo_items WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	return nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanTodo(row scannable) (model.TodoItem, error) {
	var (
		t           model.TodoItem
		description sql.NullString
		completedAt sql.NullTime
	)
	err := row.Scan(
		&t.ID, &t.Title, &description, &t.IsCompleted, &t.CreatedAt, &completedAt,
	)
	if err != nil {
		return model.TodoItem{}, fmt.Errorf("failed to scan todo: %w", err)
	}
	if description.Valid {
		t.Description = &description.String
	}
	if completedAt.Valid {
		t.CompletedAt = &completedAt.Time
	}
	return t, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// ensure compile-time interface compliance
var _ TodoRepository = (*SQLTodoRepository)(nil)
