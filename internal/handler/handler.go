package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/cosmic"
	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/service"
)

func writeJSON(w http.ResponseWriter, logger *zap.Logger, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// writeError maps a service error to a status code and JSON error body.
// Content-store failures are logged and reported as 502.
func writeError(w http.ResponseWriter, logger *zap.Logger, op string, err error) {
	switch {
	case service.IsValidation(err):
		writeJSON(w, logger, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrChefNotFound),
		cosmic.IsNotFound(err):
		writeJSON(w, logger, http.StatusNotFound, map[string]string{"error": notFoundMessage(err)})
	case errors.Is(err, service.ErrInvalidTransition):
		writeJSON(w, logger, http.StatusConflict, map[string]string{"error": err.Error()})
	default:
		logger.Error(op, zap.Error(err))
		writeJSON(w, logger, http.StatusBadGateway, map[string]string{"error": "content store unavailable"})
	}
}

func notFoundMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		return "order not found"
	case errors.Is(err, service.ErrChefNotFound):
		return "chef not found"
	}
	return "not found"
}
