package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/udhekryqi/udhekryqi-backend/internal/models"
)

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}

// writeError maps the service error taxonomy onto HTTP status codes. Every
// handler funnels failures through here so nothing reaches the transport
// layer unconverted.
func writeError(w http.ResponseWriter, err error) {
	var vErr *models.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeMessage(w, http.StatusBadRequest, vErr.Message)
	case errors.Is(err, models.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "Not found")
	case errors.Is(err, models.ErrForbidden):
		writeMessage(w, http.StatusForbidden, "Not authorized")
	case errors.Is(err, models.ErrConflict):
		writeMessage(w, http.StatusConflict, "Email already in use")
	case errors.Is(err, models.ErrInvalidCredentials):
		writeMessage(w, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, models.ErrNotVerified):
		writeMessage(w, http.StatusForbidden, "Please verify your email before logging in.")
	default:
		log.Printf("ERROR: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}
