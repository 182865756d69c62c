package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

const healthTimeout = 2 * time.Second

// StoreChecker reports whether the backing store answers.
type StoreChecker interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	store StoreChecker
}

// NewHealthHandler returns the /health handler. A nil store is always healthy.
func NewHealthHandler(store StoreChecker) *HealthHandler {
	return &HealthHandler{store: store}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		WriteMethodNotAllowed(w, http.MethodGet, http.MethodHead)
		return
	}

	if h.store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()
		if err := h.store.Ping(ctx); err != nil {
			slog.Warn("health check failed", "error", err)
			WriteError(w, http.StatusServiceUnavailable, CodeStoreUnavailable, "store is not reachable")
			return
		}
	}

	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
