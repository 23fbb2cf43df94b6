// Package http
package http

import (
	"encoding/json"
	"net/http"
)

type APIResponse struct {
	Message string            `json:"message,omitempty"`
	Data    any               `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func JSONSuccess(w http.ResponseWriter, status int, res APIResponse) {
	writeJSON(w, status, res)
}

func JSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, APIResponse{Message: message})
}

func JSONValidationError(w http.ResponseWriter, errs map[string]string) {
	writeJSON(w, http.StatusUnprocessableEntity, APIResponse{
		Message: "validation failed",
		Errors:  errs,
	})
}
