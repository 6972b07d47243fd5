package handler

import (
	"encoding/json"
	"net/http"
)

const msgInternal = "Internal server error"

// MessageEnvelope is the generic error wrapper.
type MessageEnvelope struct {
	Error string `json:"error"`
}

// VerifyEnvelope is the verify-totp response. ok is always present.
type VerifyEnvelope struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

// HealthEnvelope is the health-check response.
type HealthEnvelope struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}
