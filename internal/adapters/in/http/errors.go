package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	CodeUnauthenticated    = "unauthenticated"
	CodeForbidden          = "forbidden"
	CodeNotFound           = "not_found"
	CodeInvalidTransition  = "invalid_transition"
	CodeVehicleUnavailable = "vehicle_unavailable"
	CodeConflict           = "conflict"
	CodeValidation         = "validation_error"
	CodeInternal           = "internal_error"
)

// StatusFor maps an error returned by a handler to its status and reason code.
func StatusFor(err error) (int, string) {
	var httpErr *echo.HTTPError

	switch {
	case errors.Is(err, errs.ErrUnauthenticated):
		return http.StatusUnauthorized, CodeUnauthenticated
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden, CodeForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, errs.ErrInvalidTransition):
		return http.StatusUnprocessableEntity, CodeInvalidTransition
	case errors.Is(err, errs.ErrVehicleUnavailable):
		return http.StatusLocked, CodeVehicleUnavailable
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict, CodeConflict
	case errs.IsValidation(err):
		return http.StatusBadRequest, CodeValidation
	case errors.As(err, &httpErr):
		return httpErr.Code, codeForStatus(httpErr.Code)
	}
	return http.StatusInternalServerError, CodeInternal
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return CodeValidation
	case http.StatusUnauthorized:
		return CodeUnauthenticated
	case http.StatusNotFound:
		return CodeNotFound
	}
	return strings.ReplaceAll(strings.ToLower(http.StatusText(status)), " ", "_")
}

// NewErrorHandler renders every error as {"error":{"code","message"}}.
// Internal failures are logged and their details kept out of the response.
func NewErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	logger = logger.With("component", "http")

	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, code := StatusFor(err)
		message := err.Error()

		var httpErr *echo.HTTPError
		switch {
		case status == http.StatusInternalServerError:
			logger.ErrorContext(c.Request().Context(), "request failed",
				"method", c.Request().Method, "path", c.Path(), "error", err)
			message = "internal server error"
		case errors.As(err, &httpErr):
			message = fmt.Sprint(httpErr.Message)
		}

		body := Error{Error: ErrorBody{Code: code, Message: message}}
		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			logger.WarnContext(c.Request().Context(), "error response not written", "error", err)
		}
	}
}
