// File: internal/service/authentication.go
package service

import (
	"context"
	"errors"

	"worktrack/internal/model"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthenticateUser 比對使用者密碼；user 為 nil (查無此 email) 時仍對 dummyHash 驗證一次，
// 再回傳 ErrInvalidCredentials
func AuthenticateUser(ctx context.Context, hasher PasswordHasher, user *model.User, password string) (*model.User, error) {
	if user == nil {
		if _, err := hasher.Verify(ctx, dummyHash(), password); err != nil {
			return nil, err
		}
		return nil, ErrInvalidCredentials
	}
	ok, err := hasher.Verify(ctx, user.PasswordHash, password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
