package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"worktrack/internal/database"
	"worktrack/internal/model"
	"worktrack/internal/service"
	"worktrack/internal/store"
)

// 以下變數供測試覆寫
var (
	adminExists        = store.AdminExists
	createUserIfAbsent = store.CreateUserIfAbsent
)

// AdminAccount is the well-known administrator seeded on an empty install.
type AdminAccount struct {
	Email    string
	Password string
	Name     string
}

// EnsureAdmin 若資料庫內沒有任何 admin，建立預設管理員；已有 admin 時不做任何事。
// 回傳是否真的建立了帳號。
func EnsureAdmin(ctx context.Context, db database.DB, hasher service.PasswordHasher, acct AdminAccount) (bool, error) {
	if len(acct.Password) > service.MaxPasswordBytes {
		return false, fmt.Errorf("EnsureAdmin: %w", service.ErrPasswordTooLong)
	}
	exists, err := adminExists(ctx, db)
	if err != nil {
		return false, fmt.Errorf("EnsureAdmin: %w", err)
	}
	if exists {
		return false, nil
	}

	hash, err := hasher.Hash(ctx, acct.Password)
	if err != nil {
		return false, fmt.Errorf("EnsureAdmin: hash password: %w", err)
	}
	u := &model.User{
		Email:        acct.Email,
		PasswordHash: hash,
		Name:         acct.Name,
		Role:         model.RoleAdmin,
		Department:   "Management",
	}
	created, err := createUserIfAbsent(ctx, db, u)
	if err != nil {
		return false, fmt.Errorf("EnsureAdmin: %w", err)
	}
	if !created {
		// email 已被一般員工註冊走，不覆寫其角色
		slog.WarnContext(ctx, "admin bootstrap skipped: email already registered", "email", acct.Email)
		return false, nil
	}
	slog.InfoContext(ctx, "bootstrap admin created", "email", acct.Email, "user_id", u.ID)
	return true, nil
}
