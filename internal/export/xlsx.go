// Package export renders time logs as a spreadsheet download.
package export

import (
	"fmt"
	"io"
	"time"

	"worktrack/internal/model"

	"github.com/xuri/excelize/v2"
)

const (
	SheetName   = "Logs"
	FileName    = "work_logs.xlsx"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var header = []any{"Name", "Email", "Department", "Type", "Note", "Timestamp"}

// WriteXLSX 將 rows 依序寫入單一工作表；時間以伺服器當地時區 RFC3339 表示
func WriteXLSX(w io.Writer, rows []model.ExportRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("WriteXLSX: %w", err)
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("WriteXLSX: %w", err)
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("WriteXLSX: %w", err)
		}
		values := []any{
			r.Name,
			r.Email,
			r.Department,
			string(r.Type),
			r.Note,
			r.Timestamp.In(time.Local).Format(time.RFC3339),
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("WriteXLSX: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("WriteXLSX: %w", err)
	}
	return nil
}
