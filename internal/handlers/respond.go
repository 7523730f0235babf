package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avelez/taskvault/internal/logger"
	"github.com/avelez/taskvault/internal/models"
	"github.com/avelez/taskvault/internal/service"
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, models.ErrorResponse{
		Error:   "error",
		Message: message,
	})
}

// respondServiceError maps the service error taxonomy onto status codes.
// ErrNotOwner deliberately shares the 404 body with ErrTaskNotFound so a
// non-owner cannot confirm that a task id exists.
func respondServiceError(w http.ResponseWriter, log *logger.Logger, err error) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		respondError(w, http.StatusBadRequest, validationErr.Error())
	case errors.Is(err, service.ErrUserExists):
		respondError(w, http.StatusBadRequest, service.ErrUserExists.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(w, http.StatusBadRequest, service.ErrInvalidCredentials.Error())
	case errors.Is(err, service.ErrUserNotFound):
		respondError(w, http.StatusNotFound, "user not found")
	case errors.Is(err, service.ErrTaskNotFound), errors.Is(err, service.ErrNotOwner):
		respondError(w, http.StatusNotFound, "task not found")
	default:
		log.Error("unexpected error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
