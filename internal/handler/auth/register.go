package auth

import (
	"errors"
	"net/http"
	"strings"

	"worktrack/internal/api"
	"worktrack/internal/database"
	"worktrack/internal/handler"
	"worktrack/internal/model"
	"worktrack/internal/service"
	"worktrack/internal/store"

	"github.com/labstack/echo/v4"
)

// RegisterHandler 建立員工帳號並直接回傳登入 token
// @Summary     註冊使用者
// @Description 建立 role=employee 的帳號；department 省略時為 General
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     api.RegisterRequest true "註冊資料"
// @Success     201  {object} api.AuthResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /register [post]
func RegisterHandler(db database.DB, hasher service.PasswordHasher, tokens TokenIssuer) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.RegisterRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body"})
		}
		req.Name = strings.TrimSpace(req.Name)
		req.Department = strings.TrimSpace(req.Department)
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		}
		// validator 的 max 以字元計，bcrypt 以 byte 計
		if len(req.Password) > service.MaxPasswordBytes {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: service.ErrPasswordTooLong.Error()})
		}
		ctx := c.Request().Context()

		hash, err := hasher.Hash(ctx, req.Password)
		if errors.Is(err, service.ErrPasswordTooLong) {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		}
		if err != nil {
			return handler.InternalError(c, "hash password failed", err)
		}

		user, err := createUser(ctx, db, &model.User{
			Email:        req.Email,
			PasswordHash: hash,
			Name:         req.Name,
			Role:         model.RoleEmployee,
			Department:   req.Department,
		})
		if errors.Is(err, store.ErrDuplicateEmail) {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "email already registered"})
		}
		if err != nil {
			return handler.InternalError(c, "create user failed", err)
		}

		token, expiresAt, err := tokens.Issue(*user)
		if err != nil {
			return handler.InternalError(c, "issue token failed", err)
		}
		return c.JSON(http.StatusCreated, api.AuthResponse{
			Token:     token,
			ExpiresAt: expiresAt,
			User:      api.NewUserResponse(*user),
		})
	}
}
