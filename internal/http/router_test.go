package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	todohttp "github.com/jaekwang-park/todolist/internal/http"
	"github.com/jaekwang-park/todolist/internal/model"
	"github.com/jaekwang-park/todolist/internal/repository"
	"github.com/jaekwang-park/todolist/internal/service"
)

func newTestTodoSvc() *service.TodoService {
	return service.NewTodoService(repository.NewMemoryTodo())
}

func newTestHandler(t *testing.T, staticDir string) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return todohttp.NewHandler(logger, newTestTodoSvc(), staticDir)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, r)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRouter_HealthEndpoint(t *testing.T) {
	router := todohttp.NewRouter(newTestTodoSvc(), "")

	w := do(t, router, http.MethodGet, "/health", "")

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var result map[string]string
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result["status"] != "ok" {
		t.Errorf("expected status=ok, got %s", result["status"])
	}
}

func TestRouter_TodoEndpointRegistered(t *testing.T) {
	router := todohttp.NewRouter(newTestTodoSvc(), "")

	w := do(t, router, http.MethodGet, "/api/todo", "")

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d (body: %s)", w.Code, w.Body.String())
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	router := todohttp.NewRouter(newTestTodoSvc(), "")

	w := do(t, router, http.MethodGet, "/unknown", "")

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}

func TestRouter_StaticFallback(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>todo</html>"), 0o644); err != nil {
		t.Fatalf("write index: %v", err)
	}
	router := todohttp.NewRouter(newTestTodoSvc(), dir)

	w := do(t, router, http.MethodGet, "/some/client/route", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "<html>todo</html>") {
		t.Errorf("expected index.html fallback, got %d %q", w.Code, w.Body.String())
	}

	w = do(t, router, http.MethodGet, "/api/todo", "")
	if w.Code != http.StatusOK || strings.Contains(w.Body.String(), "<html>") {
		t.Errorf("API route shadowed by static handler: %d %q", w.Code, w.Body.String())
	}
}

// TestAPI_Scenario walks the full create, read, update, delete lifecycle.
func TestAPI_Scenario(t *testing.T) {
	h := newTestHandler(t, "")

	// create
	w := do(t, h, http.MethodPost, "/api/todo", `{"title":"Buy milk","description":null,"isCompleted":false}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d (%s)", w.Code, w.Body.String())
	}
	if loc := w.Header().Get("Location"); loc != "/api/todo/1" {
		t.Errorf("create: expected Location=/api/todo/1, got %q", loc)
	}
	var created model.TodoItem
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("create: decode: %v", err)
	}
	if created.ID != 1 {
		t.Errorf("create: expected id=1, got %d", created.ID)
	}
	if created.CreatedAt.IsZero() {
		t.Error("create: expected createdAt to be set")
	}

	// get
	w = do(t, h, http.MethodGet, "/api/todo/1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", w.Code)
	}
	var got model.TodoItem
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("get: decode: %v", err)
	}
	if got.Title != "Buy milk" || got.IsCompleted || got.CompletedAt != nil || got.Description != nil {
		t.Errorf("get: unexpected record %+v", got)
	}

	// update
	completedAt := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	updated := got
	updated.IsCompleted = true
	updated.CompletedAt = &completedAt
	body, _ := json.Marshal(updated)
	w = do(t, h, http.MethodPut, "/api/todo/1", string(body))
	if w.Code != http.StatusNoContent {
		t.Fatalf("update: expected 204, got %d (%s)", w.Code, w.Body.String())
	}

	// get reflects update
	w = do(t, h, http.MethodGet, "/api/todo/1", "")
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("get after update: decode: %v", err)
	}
	if !got.IsCompleted || got.CompletedAt == nil || !got.CompletedAt.Equal(completedAt) {
		t.Errorf("get after update: unexpected record %+v", got)
	}

	// delete
	w = do(t, h, http.MethodDelete, "/api/todo/1", "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", w.Code)
	}

	// gone
	w = do(t, h, http.MethodGet, "/api/todo/1", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("get after delete: expected 404, got %d", w.Code)
	}

	// delete again is idempotent
	w = do(t, h, http.MethodDelete, "/api/todo/1", "")
	if w.Code != http.StatusNoContent {
		t.Errorf("second delete: expected 204, got %d", w.Code)
	}
}

func TestAPI_UpdateUnknownIDDoesNotCreate(t *testing.T) {
	h := newTestHandler(t, "")

	w := do(t, h, http.MethodPut, "/api/todo/5", `{"id":5,"title":"ghost"}`)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}

	w = do(t, h, http.MethodGet, "/api/todo", "")
	if got := strings.TrimSpace(w.Body.String()); got != "[]" {
		t.Errorf("expected empty list, got %s", got)
	}
}

func TestAPI_UpdateMismatchLeavesRecordUntouched(t *testing.T) {
	h := newTestHandler(t, "")

	do(t, h, http.MethodPost, "/api/todo", `{"title":"A"}`)

	w := do(t, h, http.MethodPut, "/api/todo/1", `{"id":2,"title":"B"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	w = do(t, h, http.MethodGet, "/api/todo/1", "")
	var got model.TodoItem
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Title != "A" {
		t.Errorf("record was modified: %+v", got)
	}
}
