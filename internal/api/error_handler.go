package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ordersuite/order-system/internal/api/handler"
	"github.com/ordersuite/order-system/internal/core/domain"
)

// kindStatus maps the closed error-kind set to HTTP statuses. Lifecycle and
// ownership violations are always caller-attributable (4xx).
var kindStatus = map[domain.ErrorKind]int{
	domain.KindUnauthorized:      http.StatusUnauthorized,
	domain.KindInvalidToken:      http.StatusUnauthorized,
	domain.KindForbidden:         http.StatusForbidden,
	domain.KindValidation:        http.StatusBadRequest,
	domain.KindNotFound:          http.StatusNotFound,
	domain.KindConflict:          http.StatusConflict,
	domain.KindInvalidTransition: http.StatusUnprocessableEntity,
	domain.KindRateLimited:       http.StatusTooManyRequests,
	domain.KindUnavailable:       http.StatusServiceUnavailable,
	domain.KindInternal:          http.StatusInternalServerError,
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that renders every
// error as the uniform {success,data,error} envelope. Known domain errors
// keep their code and message; anything unexpected is logged in full and
// redacted to INTERNAL_ERROR for the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var de *domain.Error
		if errors.As(err, &de) {
			status, ok := kindStatus[de.Kind]
			if !ok {
				status = http.StatusInternalServerError
			}
			_ = handler.Fail(c, status, &handler.ErrorBody{
				Code:    de.Code,
				Message: de.Message,
				Details: de.Details,
			})
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			_ = handler.Fail(c, he.Code, &handler.ErrorBody{
				Code:    codeForStatus(he.Code),
				Message: fmt.Sprintf("%v", he.Message),
			})
			return
		}

		log.Error().
			Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("unhandled error")

		_ = handler.Fail(c, http.StatusInternalServerError, &handler.ErrorBody{
			Code:    domain.ErrInternal.Code,
			Message: domain.ErrInternal.Message,
		})
	}
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case http.StatusTooManyRequests:
		return "RATE_LIMITED"
	case http.StatusServiceUnavailable:
		return "SERVICE_UNAVAILABLE"
	default:
		return "INTERNAL_ERROR"
	}
}
