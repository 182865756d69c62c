package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jaekwang-park/todolist/internal/model"
	"github.com/jaekwang-park/todolist/internal/repository"
)

// TodoService delegates to the repository and translates storage errors.
// It performs no validation of record contents.
type TodoService struct {
	repo repository.TodoRepository
}

func NewTodoService(repo repository.TodoRepository) *TodoService {
	return &TodoService{repo: repo}
}

func (s *TodoService) List(ctx context.Context) ([]model.TodoItem, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	return items, nil
}

func (s *TodoService) GetByID(ctx context.Context, id int64) (model.TodoItem, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.TodoItem{}, ErrNotFound
		}
		return model.TodoItem{}, fmt.Errorf("failed to get todo: %w", err)
	}
	return item, nil
}

// Create stores item under a fresh id; any id the caller supplied is discarded.
func (s *TodoService) Create(ctx context.Context, item model.TodoItem) (model.TodoItem, error) {
	item.ID = 0

	created, err := s.repo.Create(ctx, item)
	if err != nil {
		return model.TodoItem{}, fmt.Errorf("failed to create todo: %w", err)
	}
	return created, nil
}

// Update replaces the record at id with item. The ids must agree; the check
// happens before the repository is called.
func (s *TodoService) Update(ctx context.Context, id int64, item model.TodoItem) error {
	if id != item.ID {
		return ErrIDMismatch
	}

	if err := s.repo.Update(ctx, item); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update todo: %w", err)
	}
	return nil
}

// Delete removes the record at id. A missing id is not an error.
func (s *TodoService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	return nil
}

// pinger is implemented by stores that sit behind a connection.
type pinger interface {
	Ping(ctx context.Context) error
}

// Ping reports whether the store is reachable. Stores without a connection
// are always reachable.
func (s *TodoService) Ping(ctx context.Context) error {
	p, ok := s.repo.(pinger)
	if !ok {
		return nil
	}
	if err := p.Ping(ctx); err != nil {
		return fmt.Errorf("store unreachable: %w", err)
	}
	return nil
}
