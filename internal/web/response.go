// ABOUTME: JSON response envelope and helpers shared by every API handler.
// ABOUTME: Success carries data; failures carry an error code and message.
package web

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// APIError is the error half of the envelope.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// APIResponse wraps every JSON answer.
type APIResponse struct {
	Data  any            `json:"data,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
	Error *APIError      `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func handleSuccess(w http.ResponseWriter, data any, meta map[string]any) {
	writeJSON(w, http.StatusOK, APIResponse{Data: data, Meta: meta})
}

func handleError(w http.ResponseWriter, r *http.Request, log *zap.SugaredLogger, err error, status int, msg string) {
	log.Warnw(msg, "request_id", requestIDFrom(r.Context()), "status", status, "error", err)
	if err != nil {
		msg = msg + ": " + err.Error()
	}
	writeJSON(w, status, APIResponse{Error: &APIError{Code: status, Message: msg}})
}

// decodeBody reads a JSON request body into v. Unknown fields are ignored.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(v)
}
