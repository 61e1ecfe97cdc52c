package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ovl11/club-payment/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps classified domain errors to their HTTP status codes.
//   - Passes payment processor messages through with a 500.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>", ...extra}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg, extra := resolveError(err, log, c)

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(code)
		} else if len(extra) == 0 {
			werr = c.JSON(code, errorResponse{Error: msg})
		} else {
			body := make(map[string]any, len(extra)+1)
			for k, v := range extra {
				body[k] = v
			}
			body["error"] = msg
			werr = c.JSON(code, body)
		}
		if werr != nil {
			log.Error().Err(werr).Msg("failed to write error response")
		}
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string, map[string]any) {
	// Echo's own errors (unknown route, method not allowed, body too large).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message), nil
	}

	var de *domain.Error
	if errors.As(err, &de) {
		code := statusFor(de.Kind)
		if code != 0 {
			ev := log.Warn()
			if code >= http.StatusInternalServerError {
				ev = log.Error()
			}
			ev.Str("method", c.Request().Method).
				Str("path", c.Path()).
				Int("status", code).
				Msg(de.Message)
			return code, de.Message, de.Extra
		}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error", nil
}

func statusFor(kind error) int {
	switch {
	case errors.Is(kind, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(kind, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(kind, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(kind, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(kind, domain.ErrUpstream):
		return http.StatusInternalServerError
	}
	return 0
}
