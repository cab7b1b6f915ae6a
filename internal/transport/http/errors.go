package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/coursify/coursify/internal/apperr"
	"github.com/coursify/coursify/internal/logging"
)

// NewHTTPErrorHandler renders every error as {"success":false,"error":msg}.
// Domain errors surface their message verbatim; anything unexpected is
// logged with its cause and reported as a bare 500.
func NewHTTPErrorHandler(base *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		l := logging.FromContext(c.Request().Context())
		if base != nil && l == slog.Default() {
			l = base
		}

		status := http.StatusInternalServerError
		message := "Internal Server Error"

		var ae *apperr.Error
		var he *echo.HTTPError
		switch {
		case errors.As(err, &ae):
			status = ae.Status
			message = ae.Message
			if status >= 500 {
				l.Error("request_failed", "status", status, "error", err)
			}
		case errors.As(err, &he):
			status = he.Code
			if m, ok := he.Message.(string); ok {
				message = m
			}
		default:
			l.Error("unhandled_error", "error", err)
		}

		if jsonErr := c.JSON(status, echo.Map{"success": false, "error": message}); jsonErr != nil {
			l.Error("error_response_failed", "error", jsonErr)
		}
	}
}
