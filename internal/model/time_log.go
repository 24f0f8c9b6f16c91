// File: internal/model/time_log.go
package model

import "time"

// LogType 打卡事件種類
type LogType string

const (
	LogTypeCheckIn  LogType = "check-in"
	LogTypeCheckOut LogType = "check-out"
)

func (t LogType) Valid() bool {
	return t == LogTypeCheckIn || t == LogTypeCheckOut
}

// TimeLog is one append-only attendance event.
type TimeLog struct {
	ID        int       `db:"id" json:"id"`
	UserID    int       `db:"user_id" json:"user_id"`
	Type      LogType   `db:"type" json:"type"`
	Note      string    `db:"note" json:"note"`
	Timestamp time.Time `db:"timestamp" json:"timestamp"`
}

// ExportRow is a time log joined with its owner, as written to the spreadsheet.
type ExportRow struct {
	Name       string
	Email      string
	Department string
	Type       LogType
	Note       string
	Timestamp  time.Time
}
