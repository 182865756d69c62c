package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

// Error codes carried in ErrorBody.Code.
const (
	CodeNotFound         = "NOT_FOUND"
	CodeInvalidID        = "INVALID_ID"
	CodeIDMismatch       = "ID_MISMATCH"
	CodeInvalidJSON      = "INVALID_JSON"
	CodeInvalidBody      = "INVALID_BODY"
	CodeInvalidInput     = "INVALID_INPUT"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	CodeStoreUnavailable = "STORE_UNAVAILABLE"
	CodeInternal         = "INTERNAL_ERROR"
)

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func WriteError(w http.ResponseWriter, status int, code, message string) {
	WriteJSON(w, status, ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
		},
	})
}

// WriteMethodNotAllowed answers 405 and lists the accepted methods in Allow.
func WriteMethodNotAllowed(w http.ResponseWriter, allowed ...string) {
	list := strings.Join(allowed, ", ")
	w.Header().Set("Allow", list)
	WriteError(w, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "allowed methods: "+list)
}

func writeNotFound(w http.ResponseWriter) {
	WriteError(w, http.StatusNotFound, CodeNotFound, "resource not found")
}
