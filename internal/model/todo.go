package model

import "time"

type TodoItem struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	IsCompleted bool       `json:"isCompleted"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt"`
}

// Toggled returns the full replacement record for flipping IsCompleted.
// CompletedAt is set to now when the item becomes complete and cleared otherwise.
// The server stores whatever it receives, so callers are responsible for sending this.
func (t TodoItem) Toggled(now time.Time) TodoItem {
	out := t
	out.IsCompleted = !t.IsCompleted
	if out.IsCompleted {
		completedAt := now
		out.CompletedAt = &completedAt
	} else {
		out.CompletedAt = nil
	}
	return out
}

// DescriptionOrEmpty returns the description text, or "" when absent.
func (t TodoItem) DescriptionOrEmpty() string {
	if t.Description == nil {
		return ""
	}
	return *t.Description
}

// StringPtr returns nil for an empty string and a pointer to s otherwise.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
