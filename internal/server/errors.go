package server

import (
	"errors"
	"net/http"
	"sort"

	"github.com/Sabyy027/hostel-core/internal/bookingflow"
	catalogdomain "github.com/Sabyy027/hostel-core/internal/catalog/domain"
	checkoutdomain "github.com/Sabyy027/hostel-core/internal/checkout/domain"
	gatewaydomain "github.com/Sabyy027/hostel-core/internal/gateway/domain"
	"github.com/Sabyy027/hostel-core/internal/media"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{Field: "request", Code: "invalid_request", Message: "invalid request"},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	switch {
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, errorPayload{
			Type:    "forbidden",
			Message: "forbidden",
		}
	case errors.Is(err, checkoutdomain.ErrAlreadyBooked):
		return http.StatusConflict, errorPayload{
			Type:    "already_booked",
			Message: "student already has an active booking",
		}
	case errors.Is(err, checkoutdomain.ErrConflict),
		errors.Is(err, catalogdomain.ErrRoomOccupied):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "the target is no longer available",
		}
	case errors.Is(err, checkoutdomain.ErrVerificationFailed):
		return http.StatusBadRequest, errorPayload{
			Type:    "verification_failed",
			Message: "payment signature verification failed",
		}
	case errors.Is(err, checkoutdomain.ErrOrderExpired):
		return http.StatusGone, errorPayload{
			Type:    "order_expired",
			Message: "the payment order can no longer be claimed",
		}
	case errors.Is(err, checkoutdomain.ErrOrderUnclaimable):
		return http.StatusGone, errorPayload{
			Type:    "order_unclaimable",
			Message: "the payment order already failed and cannot be claimed",
		}
	case errors.Is(err, checkoutdomain.ErrReconciliationRequired):
		return http.StatusInternalServerError, errorPayload{
			Type:    "reconciliation_required",
			Message: "payment captured but confirmation failed; flagged for follow-up",
		}
	case errors.Is(err, checkoutdomain.ErrRateLimited):
		return http.StatusTooManyRequests, errorPayload{
			Type:    "rate_limited",
			Message: "too many checkout attempts",
		}
	case errors.Is(err, gatewaydomain.ErrGatewayTimeout):
		return http.StatusGatewayTimeout, errorPayload{
			Type:    "gateway_timeout",
			Message: "payment gateway timed out; retry",
		}
	case errors.Is(err, gatewaydomain.ErrGatewayUnavailable):
		return http.StatusBadGateway, errorPayload{
			Type:    "gateway_unavailable",
			Message: "payment gateway unavailable",
		}
	case errors.Is(err, media.ErrUnsupportedType),
		errors.Is(err, media.ErrTooLarge):
		return http.StatusBadRequest, errorPayload{
			Type:    "invalid_image",
			Message: err.Error(),
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case isInvalidTransition(err):
		return http.StatusConflict, errorPayload{
			Type:    "invalid_transition",
			Message: err.Error(),
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

// asValidationErrors lifts both the server's own ValidationErrors and the
// booking flow's field-error maps into the shared response shape.
func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}

	var fieldErrs bookingflow.FieldErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fields := make([]string, 0, len(fieldErrs))
		for field := range fieldErrs {
			fields = append(fields, field)
		}
		sort.Strings(fields)

		out := &ValidationErrors{Errors: make([]ValidationError, 0, len(fields))}
		for _, field := range fields {
			out.Errors = append(out.Errors, ValidationError{
				Field:   field,
				Code:    "invalid_" + field,
				Message: fieldErrs[field],
			})
		}
		return out
	}

	return nil
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, checkoutdomain.ErrOrderNotFound),
		errors.Is(err, checkoutdomain.ErrUnknownSubject),
		errors.Is(err, catalogdomain.ErrRoomNotFound),
		errors.Is(err, catalogdomain.ErrPlanNotFound),
		errors.Is(err, catalogdomain.ErrDiscountNotFound),
		errors.Is(err, media.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func isInvalidTransition(err error) bool {
	var transitionErr *bookingflow.InvalidTransitionError
	return errors.As(err, &transitionErr)
}

func classifyErrorForLog(err error) (string, string) {
	status, payload := mapError(err)
	switch {
	case status >= http.StatusInternalServerError:
		return "server_error", payload.Type
	case status >= http.StatusBadRequest:
		return "client_error", payload.Type
	default:
		return "", payload.Type
	}
}
