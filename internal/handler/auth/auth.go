package auth

import (
	"context"
	"time"

	"worktrack/internal/model"
	"worktrack/internal/service"
	"worktrack/internal/store"
)

// 以下變數供測試覆寫
var (
	getUserByEmail   = store.GetUserByEmail
	createUser       = store.CreateUser
	authenticateUser = service.AuthenticateUser
)

// TokenIssuer mints a session token for a user.
type TokenIssuer interface {
	Issue(u model.User) (string, *time.Time, error)
}

type TokenRevoker interface {
	Revoke(ctx context.Context, c *service.Claims) error
}
