package handlers

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/greencycle/greencycle/backend/pkg/errors"
)

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithAppError maps a service error to its HTTP status. Internal
// details stay out of the response body.
func respondWithAppError(w http.ResponseWriter, err error) {
	if appErr, ok := err.(*apperrors.AppError); ok {
		switch appErr.Type {
		case apperrors.ErrorTypeInternal:
			respondWithError(w, appErr.HTTPStatus(), "internal server error")
		case apperrors.ErrorTypeExternal:
			respondWithError(w, appErr.HTTPStatus(), "upstream service unavailable")
		default:
			respondWithError(w, appErr.HTTPStatus(), appErr.Message)
		}
		return
	}
	respondWithError(w, http.StatusInternalServerError, "internal server error")
}
