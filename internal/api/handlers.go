// Package api exposes the decision engine and the grading aggregator over
// HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/pickpulse/internal/models"
)

const maxBodyBytes = 10 << 20

// DecisionService builds slates
type DecisionService interface {
	BuildSlate(ctx context.Context, req models.SlateRequest) models.Slate
	BuildFromUpstream(ctx context.Context, day string) (models.Slate, error)
}

// PerformanceService builds performance reports
type PerformanceService interface {
	Aggregate(req models.PerformanceRequest) models.Report
	Report(ctx context.Context, source, rangeKey string) (models.Report, error)
}

// performanceQuery holds the query parameters of GET /performance
type performanceQuery struct {
	Source string `validate:"required,oneof=live backtest"`
	Range  string `validate:"required,oneof=7d 30d season"`
}

// Handler contains dependencies for HTTP handlers
type Handler struct {
	decisions   DecisionService
	performance PerformanceService
	validate    *validator.Validate
	logger      *logrus.Logger
}

// NewHandler creates a new handler with dependencies
func NewHandler(decisions DecisionService, performance PerformanceService, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Handler{
		decisions:   decisions,
		performance: performance,
		validate:    validator.New(),
		logger:      logger,
	}
}

// BuildSlate builds a slate from the posted model output
func (h *Handler) BuildSlate(w http.ResponseWriter, r *http.Request) {
	var req models.SlateRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.fail(w, r, err, false)
		return
	}

	respondJSON(w, http.StatusOK, h.decisions.BuildSlate(r.Context(), req))
}

// GetSlate builds a slate from the upstream model slate
// Query params: day
func (h *Handler) GetSlate(w http.ResponseWriter, r *http.Request) {
	slate, err := h.decisions.BuildFromUpstream(r.Context(), r.URL.Query().Get("day"))
	if err != nil {
		h.fail(w, r, err, true)
		return
	}

	respondJSON(w, http.StatusOK, slate)
}

// AggregatePerformance grades the posted records
func (h *Handler) AggregatePerformance(w http.ResponseWriter, r *http.Request) {
	var req models.PerformanceRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.fail(w, r, err, false)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.fail(w, r, formatValidationErrors(err), false)
		return
	}

	respondJSON(w, http.StatusOK, h.performance.Aggregate(req))
}

// GetPerformance returns the stored report for a source and range
// Query params: source, range
func (h *Handler) GetPerformance(w http.ResponseWriter, r *http.Request) {
	query := performanceQuery{
		Source: r.URL.Query().Get("source"),
		Range:  r.URL.Query().Get("range"),
	}
	if err := h.validate.Struct(query); err != nil {
		h.fail(w, r, formatValidationErrors(err), false)
		return
	}

	report, err := h.performance.Report(r.Context(), query.Source, query.Range)
	if err != nil {
		h.fail(w, r, err, false)
		return
	}

	respondJSON(w, http.StatusOK, report)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, upstreamFailure bool) {
	status, kind := classify(err, upstreamFailure)

	entry := h.logger.WithError(err).WithFields(logrus.Fields{
		"path": r.URL.Path,
		"kind": kind,
	})
	if status >= http.StatusInternalServerError {
		entry.Error("Request failed")
	} else {
		entry.Debug("Request rejected")
	}

	respondError(w, status, kind, err)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, models.ErrInvalidInput) {
			return err
		}
		return models.NewInputError("body", fmt.Sprintf("is not valid JSON: %v", err))
	}
	return nil
}

// formatValidationErrors flattens validator errors into one InputError
func formatValidationErrors(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return models.NewInputError("", err.Error())
	}

	fe := validationErrors[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return models.NewInputError(lowerFirst(field), "is required")
	case "oneof":
		return models.NewInputError(lowerFirst(field), fmt.Sprintf("must be one of %s", fe.Param()))
	default:
		return models.NewInputError(lowerFirst(field), fmt.Sprintf("failed %s validation", fe.Tag()))
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]|0x20) + s[1:]
}
