package handler

import (
	"bytes"
	"net/http"

	"worktrack/internal/database"
	"worktrack/internal/export"
	"worktrack/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	listTimeLogsForExport = store.ListTimeLogsForExport
	writeXLSX             = export.WriteXLSX
)

// ExportHandler 匯出所有打卡紀錄 (含使用者資訊) 為 xlsx
// @Summary     Export time logs
// @Description 以試算表下載全部打卡紀錄，新到舊排序
// @Tags        export
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success     200 {file}   binary
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /export [get]
func ExportHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		rows, err := listTimeLogsForExport(c.Request().Context(), db)
		if err != nil {
			return InternalError(c, "export query failed", err)
		}

		// 先寫入 buffer，產生失敗時仍可回傳 JSON 錯誤
		var buf bytes.Buffer
		if err := writeXLSX(&buf, rows); err != nil {
			return InternalError(c, "export render failed", err)
		}

		c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+export.FileName+`"`)
		return c.Blob(http.StatusOK, export.ContentType, buf.Bytes())
	}
}
