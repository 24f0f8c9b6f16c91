// File: internal/handler/auth/login.go
package auth

import (
	"errors"
	"net/http"

	"worktrack/internal/api"
	"worktrack/internal/database"
	"worktrack/internal/handler"
	"worktrack/internal/metrics"
	"worktrack/internal/service"
	"worktrack/internal/store"

	"github.com/labstack/echo/v4"
)

// LoginHandler 使用 Email/Password 驗證並回傳 token
// @Summary     登入使用者
// @Description 帳號不存在與密碼錯誤回傳相同的 401，避免帳號列舉
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     api.LoginRequest true "登入資料"
// @Success     200  {object} api.AuthResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /login [post]
func LoginHandler(db database.DB, hasher service.PasswordHasher, tokens TokenIssuer) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LoginRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		}
		ctx := c.Request().Context()

		// 查無帳號時 user 為 nil，交給 authenticateUser 一併回 ErrInvalidCredentials
		user, err := getUserByEmail(ctx, db, req.Email)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			metrics.ObserveLogin("error")
			return handler.InternalError(c, "login lookup failed", err)
		}

		authUser, err := authenticateUser(ctx, hasher, user, req.Password)
		if errors.Is(err, service.ErrInvalidCredentials) {
			metrics.ObserveLogin("invalid")
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid email or password"})
		}
		if err != nil {
			metrics.ObserveLogin("error")
			return handler.InternalError(c, "verify password failed", err)
		}

		token, expiresAt, err := tokens.Issue(*authUser)
		if err != nil {
			metrics.ObserveLogin("error")
			return handler.InternalError(c, "issue token failed", err)
		}
		metrics.ObserveLogin("success")
		return c.JSON(http.StatusOK, api.AuthResponse{
			Token:     token,
			ExpiresAt: expiresAt,
			User:      api.NewUserResponse(*authUser),
		})
	}
}
