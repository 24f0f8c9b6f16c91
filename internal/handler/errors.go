package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"worktrack/internal/api"

	"github.com/labstack/echo/v4"
)

const msgInternal = "internal server error"

// InternalError 記錄錯誤細節並回傳不含內部資訊的 500
func InternalError(c echo.Context, msg string, err error) error {
	slog.ErrorContext(c.Request().Context(), msg,
		"error", err,
		"method", c.Request().Method,
		"path", c.Path(),
	)
	return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: msgInternal})
}

// ErrorHandler renders every error that reaches echo as {"error": "..."}.
// Messages of non-HTTP errors are never exposed.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := msgInternal
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if s, ok := he.Message.(string); ok {
			msg = s
		} else {
			msg = http.StatusText(code)
		}
	} else {
		slog.ErrorContext(c.Request().Context(), "unhandled error", "error", err, "path", c.Path())
	}

	var werr error
	if c.Request().Method == http.MethodHead {
		werr = c.NoContent(code)
	} else {
		werr = c.JSON(code, api.ErrorResponse{Error: msg})
	}
	if werr != nil {
		slog.ErrorContext(c.Request().Context(), "write error response", "error", werr)
	}
}
