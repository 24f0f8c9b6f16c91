// File: internal/router/router.go
package router

import (
	"github.com/labstack/echo/v4"

	"worktrack/internal/cache"
	"worktrack/internal/database"
	"worktrack/internal/handler"
	"worktrack/internal/handler/auth"
	"worktrack/internal/handler/timelogs"
	"worktrack/internal/handler/users"
	"worktrack/internal/metrics"
	"worktrack/internal/middleware"
	"worktrack/internal/service"
)

// Tokens is the full token lifecycle the routes need.
type Tokens interface {
	auth.TokenIssuer
	auth.TokenRevoker
	service.TokenVerifier
}

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, db database.DB, rdb cache.Cache, tokens Tokens, hasher service.PasswordHasher) {
	e.HTTPErrorHandler = handler.ErrorHandler
	e.Use(metrics.Middleware())
	e.GET("/metrics", metrics.Handler())

	requireAuth := middleware.RequireAuth(tokens)
	requireAdmin := middleware.RequireAdmin(tokens)

	api := e.Group("/api")

	// 健康檢查
	api.GET("/ping", handler.PingHandler(db, rdb))

	// 註冊、登入、登出
	api.POST("/register", auth.RegisterHandler(db, hasher, tokens))
	api.POST("/login", auth.LoginHandler(db, hasher, tokens))
	api.POST("/logout", auth.LogoutHandler(tokens), requireAuth)

	// 個人打卡
	api.POST("/track", timelogs.TrackHandler(db), requireAuth)
	api.GET("/status", timelogs.StatusHandler(db), requireAuth)
	api.GET("/logs", timelogs.LogsHandler(db), requireAuth)
	api.GET("/stats/today", timelogs.TodayStatsHandler(db), requireAuth)

	// 團隊名冊；查看他人紀錄需管理員
	api.GET("/users", users.ListUsersHandler(db), requireAuth)
	api.GET("/users/me", users.GetMeHandler(db), requireAuth)
	api.GET("/users/:user_id/logs", users.UserLogsHandler(db), requireAdmin)

	api.GET("/export", handler.ExportHandler(db), requireAuth)
}
