// Package timelogs serves the caller's own attendance endpoints.
package timelogs

import (
	"errors"
	"net/http"
	"time"

	"worktrack/internal/api"
	"worktrack/internal/database"
	"worktrack/internal/handler"
	"worktrack/internal/metrics"
	"worktrack/internal/middleware"
	"worktrack/internal/model"
	"worktrack/internal/service"
	"worktrack/internal/store"

	"github.com/labstack/echo/v4"
)

// 以下變數供測試覆寫
var (
	appendTimeLog       = store.AppendTimeLog
	listTimeLogsByUser  = store.ListTimeLogsByUser
	latestTimeLog       = store.LatestTimeLog
	countTimeLogsOnDate = store.CountTimeLogsOnDate
	timeNow             = time.Now
)

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid or missing token"})
}

// TrackHandler 記錄一筆 check-in / check-out
// @Summary     Record attendance event
// @Description check-in 只能在已簽退時、check-out 只能在已簽到時，否則回傳 409
// @Tags        timelogs
// @Accept      json
// @Produce     json
// @Param       body body     api.TrackRequest true "事件"
// @Success     200  {object} api.SuccessResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     403  {object} api.ErrorResponse
// @Failure     409  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /track [post]
func TrackHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := middleware.CurrentClaims(c)
		if !ok {
			return unauthorized(c)
		}
		var req api.TrackRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		}

		logType := model.LogType(req.Type)
		_, err := appendTimeLog(c.Request().Context(), db, claims.UserID, logType, req.Note, service.GuardTransition)
		switch {
		case err == nil:
			metrics.ObserveTimeLog(req.Type, "recorded")
			return c.JSON(http.StatusOK, api.SuccessResponse{Success: true})
		case errors.Is(err, service.ErrInvalidTransition):
			metrics.ObserveTimeLog(req.Type, "rejected")
			return c.JSON(http.StatusConflict, api.ErrorResponse{Error: transitionMessage(logType)})
		case errors.Is(err, service.ErrUnknownLogType):
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "type must be check-in or check-out"})
		case errors.Is(err, store.ErrNotFound):
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "user not found"})
		default:
			metrics.ObserveTimeLog(req.Type, "error")
			return handler.InternalError(c, "append time log failed", err)
		}
	}
}

func transitionMessage(t model.LogType) string {
	if t == model.LogTypeCheckIn {
		return "already checked in"
	}
	return "not checked in"
}

// LogsHandler 取得自己的打卡紀錄 (新到舊，最多 100 筆)
// @Summary     List my time logs
// @Tags        timelogs
// @Produce     json
// @Success     200 {array}  model.TimeLog
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /logs [get]
func LogsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := middleware.CurrentClaims(c)
		if !ok {
			return unauthorized(c)
		}
		logs, err := listTimeLogsByUser(c.Request().Context(), db, claims.UserID, store.DefaultLogLimit)
		if err != nil {
			return handler.InternalError(c, "list time logs failed", err)
		}
		return c.JSON(http.StatusOK, logs)
	}
}

// StatusHandler 目前出勤狀態
// @Summary     Current attendance state
// @Tags        timelogs
// @Produce     json
// @Success     200 {object} api.StatusResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /status [get]
func StatusHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := middleware.CurrentClaims(c)
		if !ok {
			return unauthorized(c)
		}
		last, err := latestTimeLog(c.Request().Context(), db, claims.UserID)
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusOK, api.StatusResponse{State: string(service.StateFromLast(nil))})
		}
		if err != nil {
			return handler.InternalError(c, "latest time log failed", err)
		}
		since := last.Timestamp
		return c.JSON(http.StatusOK, api.StatusResponse{
			State:    string(service.StateFromLast(&last.Type)),
			LastType: string(last.Type),
			Since:    &since,
		})
	}
}

// TodayStatsHandler 今天 (伺服器時區) 的打卡次數
// @Summary     Today's event count
// @Tags        timelogs
// @Produce     json
// @Success     200 {object} api.CountResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /stats/today [get]
func TodayStatsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := middleware.CurrentClaims(c)
		if !ok {
			return unauthorized(c)
		}
		n, err := countTimeLogsOnDate(c.Request().Context(), db, claims.UserID, timeNow())
		if err != nil {
			return handler.InternalError(c, "count time logs failed", err)
		}
		return c.JSON(http.StatusOK, api.CountResponse{Count: n})
	}
}
