package auth

import (
	"net/http"

	"worktrack/internal/api"
	"worktrack/internal/handler"
	"worktrack/internal/middleware"

	"github.com/labstack/echo/v4"
)

// LogoutHandler 將目前 token 加入撤銷清單
// @Summary     登出
// @Tags        auth
// @Success     204
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /logout [post]
func LogoutHandler(tokens TokenRevoker) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := middleware.CurrentClaims(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "missing token"})
		}
		if err := tokens.Revoke(c.Request().Context(), claims); err != nil {
			return handler.InternalError(c, "revoke token failed", err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}
