package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"worktrack/internal/database"
	"worktrack/internal/model"

	"github.com/jackc/pgx/v5"
)

// DefaultLogLimit caps ListTimeLogsByUser when the caller passes limit <= 0.
const DefaultLogLimit = 100

// TransitionGuard decides whether next may follow last (nil when the user has no history).
type TransitionGuard func(last *model.LogType, next model.LogType) error

// AppendTimeLog 在單一交易內鎖定使用者列、讀取最後一筆類型、執行 guard 後寫入。
// 同一使用者的並行請求會在 FOR UPDATE 上排隊，guard 看到的一定是已提交的前一筆。
func AppendTimeLog(ctx context.Context, db database.DB, userID int, logType model.LogType, note string, guard TransitionGuard) (*model.TimeLog, error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("AppendTimeLog: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var lockedID int
	if err := tx.QueryRow(ctx,
		`SELECT id FROM users WHERE id = $1 FOR UPDATE`,
		userID,
	).Scan(&lockedID); err != nil {
		return nil, fmt.Errorf("AppendTimeLog: %w", translate(err))
	}

	var last *model.LogType
	var lastType model.LogType
	err = tx.QueryRow(ctx,
		`SELECT type FROM time_logs
		 WHERE user_id = $1
		 ORDER BY timestamp DESC, id DESC
		 LIMIT 1`,
		userID,
	).Scan(&lastType)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
	case err != nil:
		return nil, fmt.Errorf("AppendTimeLog: %w", err)
	default:
		last = &lastType
	}

	if guard != nil {
		if err := guard(last, logType); err != nil {
			return nil, fmt.Errorf("AppendTimeLog: %w", err)
		}
	}

	entry := &model.TimeLog{UserID: userID, Type: logType, Note: note}
	if err := tx.QueryRow(ctx,
		`INSERT INTO time_logs (user_id, type, note)
		 VALUES ($1, $2, $3)
		 RETURNING id, timestamp`,
		userID,
		logType,
		note,
	).Scan(&entry.ID, &entry.Timestamp); err != nil {
		return nil, fmt.Errorf("AppendTimeLog: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("AppendTimeLog: %w", err)
	}
	return entry, nil
}

func scanTimeLogs(rows pgx.Rows) ([]model.TimeLog, error) {
	defer rows.Close()
	logs := make([]model.TimeLog, 0)
	for rows.Next() {
		var l model.TimeLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.Type, &l.Note, &l.Timestamp); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// ListTimeLogsByUser 依時間新到舊，limit <= 0 時套用 DefaultLogLimit
func ListTimeLogsByUser(ctx context.Context, db database.DB, userID, limit int) ([]model.TimeLog, error) {
	if limit <= 0 {
		limit = DefaultLogLimit
	}
	rows, err := db.Query(ctx,
		`SELECT id, user_id, type, note, timestamp
		 FROM time_logs
		 WHERE user_id = $1
		 ORDER BY timestamp DESC, id DESC
		 LIMIT $2`,
		userID,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("ListTimeLogsByUser: %w", err)
	}
	logs, err := scanTimeLogs(rows)
	if err != nil {
		return nil, fmt.Errorf("ListTimeLogsByUser: %w", err)
	}
	return logs, nil
}

func LatestTimeLog(ctx context.Context, db database.DB, userID int) (*model.TimeLog, error) {
	l := &model.TimeLog{}
	if err := db.QueryRow(ctx,
		`SELECT id, user_id, type, note, timestamp
		 FROM time_logs
		 WHERE user_id = $1
		 ORDER BY timestamp DESC, id DESC
		 LIMIT 1`,
		userID,
	).Scan(&l.ID, &l.UserID, &l.Type, &l.Note, &l.Timestamp); err != nil {
		return nil, fmt.Errorf("LatestTimeLog: %w", translate(err))
	}
	return l, nil
}

// DayBounds returns [midnight, next midnight) of day in day's own location.
func DayBounds(day time.Time) (time.Time, time.Time) {
	y, m, d := day.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, day.Location())
	return start, start.AddDate(0, 0, 1)
}

// CountTimeLogsOnDate 計算使用者在 day 當天 (day 所屬時區) 的紀錄數
func CountTimeLogsOnDate(ctx context.Context, db database.DB, userID int, day time.Time) (int, error) {
	start, end := DayBounds(day)
	var n int
	if err := db.QueryRow(ctx,
		`SELECT COUNT(*) FROM time_logs
		 WHERE user_id = $1 AND timestamp >= $2 AND timestamp < $3`,
		userID,
		start,
		end,
	).Scan(&n); err != nil {
		return 0, fmt.Errorf("CountTimeLogsOnDate: %w", err)
	}
	return n, nil
}

func ListTimeLogsForExport(ctx context.Context, db database.DB) ([]model.ExportRow, error) {
	rows, err := db.Query(ctx,
		`SELECT u.name, u.email, u.department, t.type, t.note, t.timestamp
		 FROM time_logs t
		 JOIN users u ON u.id = t.user_id
		 ORDER BY t.timestamp DESC, t.id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("ListTimeLogsForExport: %w", err)
	}
	defer rows.Close()

	out := make([]model.ExportRow, 0)
	for rows.Next() {
		var r model.ExportRow
		if err := rows.Scan(&r.Name, &r.Email, &r.Department, &r.Type, &r.Note, &r.Timestamp); err != nil {
			return nil, fmt.Errorf("ListTimeLogsForExport: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListTimeLogsForExport: %w", err)
	}
	return out, nil
}
