// Package response writes the JSON envelopes the storefront frontend expects:
// successes as {"success": msg, "data": ...} and failures as {"error": msg}.
package response

import (
	"encoding/json"
	"net/http"
)

type successEnvelope struct {
	Success string      `json:"success"`
	Data    interface{} `json:"data,omitempty"`
}

type errorEnvelope struct {
	Error string `json:"error"`
}

func write(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

// Success sends a 200 with a success message and optional payload.
func Success(w http.ResponseWriter, message string, data interface{}) {
	write(w, http.StatusOK, successEnvelope{Success: message, Data: data})
}

// OK sends a 200 success with no data payload.
func OK(w http.ResponseWriter, message string) {
	write(w, http.StatusOK, successEnvelope{Success: message})
}

// JSON sends a bare payload without the envelope. Used by the
// products-by-category listing, which returns a raw array.
func JSON(w http.ResponseWriter, status int, data interface{}) {
	write(w, status, data)
}

// Error sends an {"error": message} body with the given status.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, status, errorEnvelope{Error: message})
}

// BadRequest sends a 400. Validation failures and rejected tokens both land
// here, matching the statuses the frontend was built against.
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, message)
}

// Unauthorized sends a 401.
func Unauthorized(w http.ResponseWriter, message string) {
	Error(w, http.StatusUnauthorized, message)
}

// NotFound sends a 404.
func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, message)
}

// Internal sends a detail-free 500.
func Internal(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, "Internal server error")
}

// HTML writes a rendered HTML page (reset-password form and confirmation).
func HTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(body) //nolint:errcheck
}
