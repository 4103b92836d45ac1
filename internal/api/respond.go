package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/pickpulse/internal/models"
	"github.com/yourusername/pickpulse/internal/repository"
	"github.com/yourusername/pickpulse/internal/upstream"
)

// Error kinds returned in the error body
const (
	KindInvalidInput  = "invalid_input"
	KindUnavailable   = "unavailable"
	KindUpstreamError = "upstream_error"
	KindInternalError = "internal_error"
)

// ErrorResponse is the JSON body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logrus.WithError(err).Error("Failed to encode response")
	}
}

func respondError(w http.ResponseWriter, status int, kind string, err error) {
	respondJSON(w, status, ErrorResponse{Error: err.Error(), Kind: kind})
}

// classify maps an error to its HTTP status and kind. upstreamFailure marks
// errors raised while talking to the model service.
func classify(err error, upstreamFailure bool) (int, string) {
	var validationErrors validator.ValidationErrors

	switch {
	case errors.Is(err, models.ErrInvalidInput), errors.As(err, &validationErrors):
		return http.StatusBadRequest, KindInvalidInput
	case errors.Is(err, upstream.ErrUpstreamDisabled),
		errors.Is(err, repository.ErrDatabaseDisabled):
		return http.StatusServiceUnavailable, KindUnavailable
	case upstreamFailure:
		return http.StatusBadGateway, KindUpstreamError
	default:
		return http.StatusInternalServerError, KindInternalError
	}
}
