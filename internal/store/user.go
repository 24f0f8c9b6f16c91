package store

import (
	"context"
	"errors"
	"fmt"

	"worktrack/internal/database"
	"worktrack/internal/model"

	"github.com/jackc/pgx/v5"
)

func scanUser(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	if err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.Name,
		&u.Role,
		&u.Department,
		&u.CreatedAt,
	); err != nil {
		return nil, err
	}
	return u, nil
}

func GetUserByID(ctx context.Context, db database.DB, userID int) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT id, email, password_hash, name, role, department, created_at
		 FROM users WHERE id = $1`,
		userID,
	)
	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("GetUserByID: %w", translate(err))
	}
	return u, nil
}

// GetUserByEmail 以 email 精確比對 (區分大小寫)，查無資料回傳 ErrNotFound
func GetUserByEmail(ctx context.Context, db database.DB, email string) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT id, email, password_hash, name, role, department, created_at
		 FROM users WHERE email = $1`,
		email,
	)
	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("GetUserByEmail: %w", translate(err))
	}
	return u, nil
}

// withDefaults fills role and department when the caller left them empty.
func withDefaults(u *model.User) {
	if u.Role == "" {
		u.Role = model.RoleEmployee
	}
	if u.Department == "" {
		u.Department = model.DefaultDepartment
	}
}

func CreateUser(ctx context.Context, db database.DB, u *model.User) (*model.User, error) {
	withDefaults(u)
	row := db.QueryRow(ctx,
		`INSERT INTO users (email, password_hash, name, role, department)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		u.Email,
		u.PasswordHash,
		u.Name,
		u.Role,
		u.Department,
	)
	if err := row.Scan(&u.ID, &u.CreatedAt); err != nil {
		return nil, fmt.Errorf("CreateUser: %w", translate(err))
	}
	return u, nil
}

// CreateUserIfAbsent 與 CreateUser 相同，但 email 已存在時不報錯，回傳 created=false
func CreateUserIfAbsent(ctx context.Context, db database.DB, u *model.User) (bool, error) {
	withDefaults(u)
	row := db.QueryRow(ctx,
		`INSERT INTO users (email, password_hash, name, role, department)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (email) DO NOTHING
		 RETURNING id, created_at`,
		u.Email,
		u.PasswordHash,
		u.Name,
		u.Role,
		u.Department,
	)
	if err := row.Scan(&u.ID, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("CreateUserIfAbsent: %w", err)
	}
	return true, nil
}

func AdminExists(ctx context.Context, db database.DB) (bool, error) {
	var exists bool
	err := db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE role = $1)`,
		model.RoleAdmin,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("AdminExists: %w", err)
	}
	return exists, nil
}

// ListUsers 回傳全部使用者 (依名稱排序)，不查 password_hash
func ListUsers(ctx context.Context, db database.DB) ([]model.User, error) {
	rows, err := db.Query(ctx,
		`SELECT id, email, name, role, department, created_at
		 FROM users ORDER BY name ASC, id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("ListUsers: %w", err)
	}
	defer rows.Close()

	users := make([]model.User, 0)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.Department, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("ListUsers: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListUsers: %w", err)
	}
	return users, nil
}
