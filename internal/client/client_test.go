package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jaekwang-park/todolist/internal/client"
	todohttp "github.com/jaekwang-park/todolist/internal/http"
	"github.com/jaekwang-park/todolist/internal/model"
	"github.com/jaekwang-park/todolist/internal/repository"
	"github.com/jaekwang-park/todolist/internal/service"
)

func newTestServer(t *testing.T) *client.Client {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.NewTodoService(repository.NewMemoryTodo())
	srv := httptest.NewServer(todohttp.NewHandler(logger, svc, ""))
	t.Cleanup(srv.Close)
	return client.New(srv.URL, srv.Client())
}

func TestClient_Lifecycle(t *testing.T) {
	c := newTestServer(t)
	ctx := context.Background()

	items, err := c.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty list, got %d", len(items))
	}

	created, err := c.Create(ctx, model.TodoItem{ID: 50, Title: "Buy milk", Description: model.StringPtr("2 litres")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != 1 {
		t.Errorf("expected server-assigned id=1, got %d", created.ID)
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected createdAt to be set by the server")
	}

	got, err := c.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Buy milk" || got.DescriptionOrEmpty() != "2 litres" {
		t.Errorf("unexpected record: %+v", got)
	}

	now := time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)
	if err := c.Update(ctx, got.ID, got.Toggled(now)); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err = c.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if !got.IsCompleted || got.CompletedAt == nil || !got.CompletedAt.Equal(now) {
		t.Errorf("update not applied: %+v", got)
	}

	if err := c.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := c.Get(ctx, created.ID); !errors.Is(err, client.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := c.Delete(ctx, created.ID); err != nil {
		t.Errorf("expected idempotent delete, got %v", err)
	}
}

func TestClient_UpdateMismatch(t *testing.T) {
	c := newTestServer(t)
	ctx := context.Background()

	created, err := c.Create(ctx, model.TodoItem{Title: "A"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	err = c.Update(ctx, created.ID+1, created)

	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest || apiErr.Code != "ID_MISMATCH" {
		t.Errorf("unexpected api error: %+v", apiErr)
	}
	if errors.Is(err, client.ErrNotFound) {
		t.Error("400 must not match ErrNotFound")
	}
}

func TestClient_CreateOmitsID(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":9,"title":"A","description":null,"isCompleted":false,"createdAt":"2025-01-01T00:00:00Z","completedAt":null}`))
	}))
	defer srv.Close()

	c := client.New(srv.URL+"/", nil)
	created, err := c.Create(context.Background(), model.TodoItem{ID: 3, Title: "A"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, ok := body["id"]; ok {
		t.Errorf("expected request without id, got %v", body)
	}
	if _, ok := body["createdAt"]; ok {
		t.Errorf("expected zero createdAt to be omitted, got %v", body)
	}
	if v, ok := body["description"]; !ok || v != nil {
		t.Errorf("expected description=null, got %v", body)
	}
	if created.ID != 9 {
		t.Errorf("expected id=9, got %d", created.ID)
	}
}

func TestClient_ErrorWithoutEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := client.New(srv.URL, nil).List(context.Background())

	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusBadGateway {
		t.Errorf("expected 502, got %d", apiErr.StatusCode)
	}
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	if _, err := client.New(url, nil).List(context.Background()); err == nil {
		t.Fatal("expected transport error, got nil")
	}
}
