package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/leadership-report/internal/analysis"
	"github.com/jonathan/leadership-report/internal/report"
	"github.com/jonathan/leadership-report/internal/schemas"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrNotFound indicates the requested resource does not exist.
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrPersistenceDisabled is returned by lookups when no store is configured.
var ErrPersistenceDisabled = errors.New("report storage is not configured")

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validation *ErrValidation
		notFound   *ErrNotFound
		schema     *schemas.ValidationError
		build      *analysis.BuildError
		invalid    *report.InvalidAnalysisError
	)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrPersistenceDisabled):
		return http.StatusServiceUnavailable
	case errors.As(err, &validation), errors.As(err, &invalid), errors.Is(err, report.ErrMissingGeneratedAt):
		return http.StatusBadRequest
	case errors.As(err, &schema), errors.As(err, &build):
		return http.StatusUnprocessableEntity
	case errors.As(err, &notFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
