package repository

import (
	"context"

	"github.com/jaekwang-park/todolist/internal/model"
)

// TodoRepository is the storage contract for to-do records.
// GetByID and Update report a missing id with a wrapped sql.ErrNoRows.
// Delete of a missing id is not an error.
type TodoRepository interface {
	List(ctx context.Context) ([]model.TodoItem, error)
	GetByID(ctx context.Context, id int64) (model.TodoItem, error)
	Create(ctx context.Context, item model.TodoItem) (model.TodoItem, error)
	Update(ctx context.Context, item model.TodoItem) error
	Delete(ctx context.Context, id int64) error
}
