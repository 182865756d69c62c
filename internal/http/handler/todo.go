package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/jaekwang-park/todolist/internal/service"
)

// BasePath is the collection path of the todo API.
const BasePath = "/api/todo"

type TodoHandler struct {
	svc *service.TodoService
}

func NewTodoHandler(svc *service.TodoService) *TodoHandler {
	return &TodoHandler{svc: svc}
}

// ServeHTTP routes /api/todo and /api/todo/{id}
func (h *TodoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rest, ok := strings.CutPrefix(r.URL.Path, BasePath)
	if !ok || (rest != "" && !strings.HasPrefix(rest, "/")) {
		writeNotFound(w)
		return
	}
	rawID := strings.TrimPrefix(rest, "/")

	// /api/todo
	if rawID == "" {
		switch r.Method {
		case http.MethodGet:
			h.handleList(w, r)
		case http.MethodPost:
			h.handleCreate(w, r)
		default:
			WriteMethodNotAllowed(w, http.MethodGet, http.MethodPost)
		}
		return
	}

	if strings.Contains(rawID, "/") {
		writeNotFound(w)
		return
	}

	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		WriteError(w, http.StatusBadRequest, CodeInvalidID, "id must be an integer")
		return
	}

	// /api/todo/{id}
	switch r.Method {
	case http.MethodGet:
		h.handleGetByID(w, r, id)
	case http.MethodPut:
		h.handleUpdate(w, r, id)
	case http.MethodDelete:
		h.handleDelete(w, r, id)
	default:
		WriteMethodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

func (h *TodoHandler) handleList(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, items)
}

func (h *TodoHandler) handleGetByID(w http.ResponseWriter, r *http.Request, id int64) {
	item, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, item)
}

func (h *TodoHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	item, err := decodeTodoItem(w, r)
	if err != nil {
		writeBodyError(w, err)
		return
	}

	created, err := h.svc.Create(r.Context(), item)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Location", ItemPath(created.ID))
	WriteJSON(w, http.StatusCreated, created)
}

func (h *TodoHandler) handleUpdate(w http.ResponseWriter, r *http.Request, id int64) {
	item, err := decodeTodoItem(w, r)
	if err != nil {
		writeBodyError(w, err)
		return
	}

	if err := h.svc.Update(r.Context(), id, item); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *TodoHandler) handleDelete(w http.ResponseWriter, r *http.Request, id int64) {
	if err := h.svc.Delete(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ItemPath returns the get-one path for id.
func ItemPath(id int64) string {
	return BasePath + "/" + strconv.FormatInt(id, 10)
}

func writeBodyError(w http.ResponseWriter, err error) {
	var be *bodyError
	if errors.As(err, &be) {
		WriteError(w, http.StatusBadRequest, be.Code, be.Message)
		return
	}
	WriteError(w, http.StatusBadRequest, CodeInvalidJSON, "invalid request body")
}

func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeNotFound(w)
	case errors.Is(err, service.ErrIDMismatch):
		WriteError(w, http.StatusBadRequest, CodeIDMismatch, "path id does not match body id")
	case errors.Is(err, service.ErrInvalidInput):
		WriteError(w, http.StatusBadRequest, CodeInvalidInput, err.Error())
	default:
		WriteError(w, http.StatusInternalServerError, CodeInternal, "internal server error")
	}
}
