package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
)

// ErrorEnvelope is the error body shape shared by the request API and the
// webhook ingress. Code is a stable machine-readable identifier
// (e.g. REQUEST_VALIDATION, WEBHOOK_SYNC_FAILED); Message is for humans and
// carries no more detail than the caller is entitled to.
type ErrorEnvelope struct {
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Meta    map[string]string `json:"meta,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	if w == nil {
		return nil
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(payload)
}

func WriteError(w http.ResponseWriter, status int, code, message string, meta map[string]string) error {
	if strings.TrimSpace(code) == "" {
		code = "INTERNAL_ERROR"
	}
	if strings.TrimSpace(message) == "" {
		message = http.StatusText(status)
	}
	return WriteJSON(w, status, &ErrorEnvelope{
		Code:    code,
		Message: message,
		Meta:    meta,
	})
}
