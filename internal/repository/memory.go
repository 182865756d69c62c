package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jaekwang-park/todolist/internal/model"
)

// MemoryTodoRepository keeps records in process memory. Data is lost on restart.
type MemoryTodoRepository struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]model.TodoItem
	now    func() time.Time
}

func NewMemoryTodo() *MemoryTodoRepository {
	return &MemoryTodoRepository{
		items: make(map[int64]model.TodoItem),
		now:   time.Now,
	}
}

func (r *MemoryTodoRepository) List(ctx context.Context) ([]model.TodoItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := make([]model.TodoItem, 0, len(r.items))
	for _, item := range r.items {
		items = append(items, cloneTodo(item))
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (r *MemoryTodoRepository) GetByID(ctx context.Context, id int64) (model.TodoItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return model.TodoItem{}, fmt.Errorf("todo %d: %w", id, sql.ErrNoRows)
	}
	return cloneTodo(item), nil
}

func (r *MemoryTodoRepository) Create(ctx context.Context, item model.TodoItem) (model.TodoItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	item.ID = r.nextID
	if item.CreatedAt.IsZero() {
		item.CreatedAt = r.now()
	}
	item.CreatedAt = item.CreatedAt.UTC().Truncate(time.Microsecond)
	r.items[item.ID] = cloneTodo(item)
	return cloneTodo(item), nil
}

func (r *MemoryTodoRepository) Update(ctx context.Context, item model.TodoItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[item.ID]
	if !ok {
		return fmt.Errorf("todo %d: %w", item.ID, sql.ErrNoRows)
	}
	item.CreatedAt = existing.CreatedAt
	r.items[item.ID] = cloneTodo(item)
	return nil
}

func (r *MemoryTodoRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, id)
	return nil
}

func cloneTodo(t model.TodoItem) model.TodoItem {
	if t.Description != nil {
		d := *t.Description
		t.Description = &d
	}
	if t.CompletedAt != nil {
		c := *t.CompletedAt
		t.CompletedAt = &c
	}
	return t
}

var _ TodoRepository = (*MemoryTodoRepository)(nil)
