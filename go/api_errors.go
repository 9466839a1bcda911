package deliveryserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	ordersapp "github.com/shamskitchen/go-gin-delivery-server/internal/domains/orders/application"
	shiftsapp "github.com/shamskitchen/go-gin-delivery-server/internal/domains/shifts/application"
	apierrors "github.com/shamskitchen/go-gin-delivery-server/internal/shared/errors"
)

// respondProblem maps a ProblemDetail through the shared responder.
func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	apierrors.Respond(c, problem)
}

// respondError preserves plain call sites while returning RFC 7807 responses.
func respondError(c *gin.Context, status int, err error) {
	if err == nil {
		return
	}
	var problem apierrors.ProblemDetail
	switch status {
	case http.StatusBadRequest:
		problem = apierrors.ErrBadRequest.WithDetail(err.Error())
	case http.StatusNotFound:
		problem = apierrors.ErrNotFound.WithDetail(err.Error())
	case http.StatusConflict:
		problem = apierrors.ErrConflict.WithDetail(err.Error())
	default:
		problem = apierrors.ErrInternal.WithDetail(err.Error())
	}
	respondProblem(c, problem)
}

// respondOrderServiceError maps order application error kinds to problem
// responses. Storage internals never leak past the application layer.
func respondOrderServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ordersapp.ErrInvalidInput):
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
	case errors.Is(err, ordersapp.ErrUserNotFound),
		errors.Is(err, ordersapp.ErrAddressNotFound),
		errors.Is(err, ordersapp.ErrVariantNotFound),
		errors.Is(err, ordersapp.ErrOrderNotFound),
		errors.Is(err, ordersapp.ErrShiftNotFound):
		respondProblem(c, apierrors.ErrNotFound.WithDetail(err.Error()))
	case errors.Is(err, ordersapp.ErrVariantUnavailable):
		respondProblem(c, apierrors.ErrUnprocessable.WithDetail(err.Error()))
	case errors.Is(err, ordersapp.ErrInvalidTransition):
		respondProblem(c, apierrors.ErrConflict.WithDetail(err.Error()))
	case errors.Is(err, ordersapp.ErrConflict):
		respondProblem(c, apierrors.ErrConflict.WithDetail(err.Error()))
	default:
		respondProblem(c, apierrors.ErrInternal)
	}
}

// respondShiftServiceError maps shift application error kinds to problem
// responses.
func respondShiftServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, shiftsapp.ErrInvalidInput):
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
	case errors.Is(err, shiftsapp.ErrShiftNotFound):
		respondProblem(c, apierrors.ErrNotFound.WithDetail(err.Error()))
	case errors.Is(err, shiftsapp.ErrShiftConflict),
		errors.Is(err, shiftsapp.ErrShiftEnded):
		respondProblem(c, apierrors.ErrConflict.WithDetail(err.Error()))
	default:
		respondProblem(c, apierrors.ErrInternal)
	}
}

// parseIDParam reads a positive int64 path parameter, responding 400 itself
// on failure.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(name+" must be a positive integer"))
		return 0, false
	}
	return id, true
}

// parsePageQuery reads optional skip/limit query parameters.
func parsePageQuery(c *gin.Context) (skip, limit int, ok bool) {
	skip, ok = parseIntQuery(c, "skip")
	if !ok {
		return 0, 0, false
	}
	limit, ok = parseIntQuery(c, "limit")
	if !ok {
		return 0, 0, false
	}
	return skip, limit, true
}

func parseIntQuery(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(name+" must be a non-negative integer"))
		return 0, false
	}
	return value, true
}
