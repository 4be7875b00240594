// Package httpx holds the JSON response helpers shared by every handler.
// All responses are JSON: payloads as-is, errors in the {"error": code}
// envelope, list endpoints in the {"items", "total"} envelope.
package httpx

import (
	"encoding/json"
	"net/http"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

type ListResponse struct {
	Items any `json:"items"`
	Total int `json:"total"`
}

// JSON writes payload with the given status. The payload is marshalled
// before the status line goes out, so an encode failure never leaves a
// half-written body behind a 200.
func JSON(w http.ResponseWriter, status int, payload any) {
	body := []byte("null")
	if payload != nil {
		var err error
		if body, err = json.Marshal(payload); err != nil {
			http.Error(w, `{"error":"encode_error"}`, http.StatusInternalServerError)
			return
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// JSONError writes the error envelope with the given status.
func JSONError(w http.ResponseWriter, status int, msg string, details any) {
	JSON(w, status, ErrorResponse{Error: msg, Details: details})
}

// JSONList writes the list envelope used by collection endpoints.
func JSONList(w http.ResponseWriter, items any, total int) {
	JSON(w, http.StatusOK, ListResponse{Items: items, Total: total})
}
