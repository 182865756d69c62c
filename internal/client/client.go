// Package client is a typed HTTP client for the /api/todo endpoints.
// Each method issues exactly one request; there is no retry or caching.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jaekwang-park/todolist/internal/model"
)

const basePath = "/api/todo"

// ErrNotFound matches (via errors.Is) any *APIError with status 404.
var ErrNotFound = errors.New("not found")

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d %s: %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d", e.StatusCode)
}

func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New returns a client for the server at baseURL (e.g. http://localhost:8080).
// A nil httpClient means http.DefaultClient.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *Client) List(ctx context.Context) ([]model.TodoItem, error) {
	var items []model.TodoItem
	if err := c.do(ctx, http.MethodGet, basePath, nil, http.StatusOK, &items); err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return items, nil
}

func (c *Client) Get(ctx context.Context, id int64) (model.TodoItem, error) {
	var item model.TodoItem
	if err := c.do(ctx, http.MethodGet, itemPath(id), nil, http.StatusOK, &item); err != nil {
		return model.TodoItem{}, fmt.Errorf("get todo %d: %w", id, err)
	}
	return item, nil
}

// createRequest is a TodoItem without its id.
type createRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	IsCompleted bool       `json:"isCompleted"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt"`
}

func (c *Client) Create(ctx context.Context, item model.TodoItem) (model.TodoItem, error) {
	req := createRequest{
		Title:       item.Title,
		Description: item.Description,
		IsCompleted: item.IsCompleted,
		CompletedAt: item.CompletedAt,
	}
	if !item.CreatedAt.IsZero() {
		req.CreatedAt = &item.CreatedAt
	}

	var created model.TodoItem
	if err := c.do(ctx, http.MethodPost, basePath, req, http.StatusCreated, &created); err != nil {
		return model.TodoItem{}, fmt.Errorf("create todo: %w", err)
	}
	return created, nil
}

// Update sends item as the full replacement for the record at id.
func (c *Client) Update(ctx context.Context, id int64, item model.TodoItem) error {
	if err := c.do(ctx, http.MethodPut, itemPath(id), item, http.StatusNoContent, nil); err != nil {
		return fmt.Errorf("update todo %d: %w", id, err)
	}
	return nil
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	if err := c.do(ctx, http.MethodDelete, itemPath(id), nil, http.StatusNoContent, nil); err != nil {
		return fmt.Errorf("delete todo %d: %w", id, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, wantStatus int, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		return decodeAPIError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var env errorEnvelope
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&env); err == nil {
		apiErr.Code = env.Error.Code
		apiErr.Message = env.Error.Message
	}
	return apiErr
}

func itemPath(id int64) string {
	return basePath + "/" + strconv.FormatInt(id, 10)
}
