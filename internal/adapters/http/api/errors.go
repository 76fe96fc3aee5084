package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	service "github.com/okian/liftrank/internal/app"
	"github.com/okian/liftrank/internal/domain/compare"
	"github.com/okian/liftrank/internal/domain/order"
	"github.com/okian/liftrank/internal/domain/scoring"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
)

func badRequest(err error) error {
	return fmt.Errorf("%w: %w", ErrBadRequest, err)
}

// statusFor maps an error to its HTTP status and error code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, scoring.ErrUnknownMetric):
		return http.StatusBadRequest, "unknown_metric"
	case errors.Is(err, order.ErrUnknownKind):
		return http.StatusBadRequest, "unknown_kind"
	case errors.Is(err, order.ErrMetricNotOrderable):
		return http.StatusBadRequest, "metric_not_orderable"
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, compare.ErrPrecondition):
		return http.StatusUnprocessableEntity, "precondition_failed"
	case errors.Is(err, service.ErrTooManyAthletes):
		return http.StatusRequestEntityTooLarge, "too_many_athletes"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, "cancelled"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

func fail(w http.ResponseWriter, err error) {
	status, code := statusFor(err)
	writeError(w, status, code, err)
}
