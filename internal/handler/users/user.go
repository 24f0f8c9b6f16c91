package users

import (
	"errors"
	"net/http"
	"strconv"

	"worktrack/internal/api"
	"worktrack/internal/database"
	"worktrack/internal/handler"
	"worktrack/internal/middleware"
	"worktrack/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	listUsers          = store.ListUsers
	getUserByID        = store.GetUserByID
	listTimeLogsByUser = store.ListTimeLogsByUser
)

// ListUsersHandler 列出所有成員 (依名稱排序，不含密碼雜湊)
// @Summary     List team members
// @Tags        users
// @Produce     json
// @Success     200 {array}  api.UserResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /users [get]
func ListUsersHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		users, err := listUsers(c.Request().Context(), db)
		if err != nil {
			return handler.InternalError(c, "list users failed", err)
		}
		resp := make([]api.UserResponse, 0, len(users))
		for _, u := range users {
			resp = append(resp, api.NewUserResponse(u))
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// GetMeHandler 取得當前使用者資訊
// @Summary     Get current user info
// @Tags        users
// @Produce     json
// @Success     200 {object} api.UserResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /users/me [get]
func GetMeHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := middleware.CurrentClaims(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid or missing token"})
		}
		user, err := getUserByID(c.Request().Context(), db, claims.UserID)
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "user not found"})
		}
		if err != nil {
			return handler.InternalError(c, "get current user failed", err)
		}
		return c.JSON(http.StatusOK, api.NewUserResponse(*user))
	}
}

// UserLogsHandler 管理員查看指定成員的打卡紀錄
// @Summary     List a member's time logs (admin)
// @Tags        users
// @Produce     json
// @Param       user_id path     int true  "使用者 ID"
// @Param       limit   query    int false "最多筆數 (預設 100)"
// @Success     200     {array}  model.TimeLog
// @Failure     400     {object} api.ErrorResponse
// @Failure     401     {object} api.ErrorResponse
// @Failure     403     {object} api.ErrorResponse
// @Failure     404     {object} api.ErrorResponse
// @Failure     500     {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /users/{user_id}/logs [get]
func UserLogsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("user_id"))
		if err != nil || id <= 0 {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid user id"})
		}
		limit := store.DefaultLogLimit
		if v := c.QueryParam("limit"); v != "" {
			limit, err = strconv.Atoi(v)
			if err != nil || limit <= 0 || limit > store.DefaultLogLimit {
				return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "limit must be between 1 and 100"})
			}
		}

		ctx := c.Request().Context()
		if _, err := getUserByID(ctx, db, id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "user not found"})
			}
			return handler.InternalError(c, "get user failed", err)
		}
		logs, err := listTimeLogsByUser(ctx, db, id, limit)
		if err != nil {
			return handler.InternalError(c, "list user logs failed", err)
		}
		return c.JSON(http.StatusOK, logs)
	}
}
