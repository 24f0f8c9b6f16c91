// File: internal/service/password.go
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"worktrack/internal/worker"

	"golang.org/x/crypto/bcrypt"
)

// 以下變數供測試覆寫
var (
	bcryptGenerateFromPassword   = bcrypt.GenerateFromPassword
	bcryptCompareHashAndPassword = bcrypt.CompareHashAndPassword
	bcryptCost                   = bcrypt.DefaultCost
)

// MaxPasswordBytes bcrypt 只處理前 72 bytes，超過一律拒絕
const MaxPasswordBytes = 72

var ErrPasswordTooLong = errors.New("password must be at most 72 bytes")

// SetBcryptCost 設定雜湊成本，超出 bcrypt 允許範圍回傳錯誤
func SetBcryptCost(cost int) error {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	bcryptCost = cost
	return nil
}

// HashPassword 接收明文密碼，回傳 bcrypt 哈希字串 (每次呼叫使用新的 salt)
func HashPassword(password string) (string, error) {
	if len(password) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	hashBytes, err := bcryptGenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashBytes), nil
}

// VerifyPassword 比對明文與 bcrypt 哈希；哈希格式錯誤或為空時回傳 false
func VerifyPassword(hash, password string) bool {
	return bcryptCompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// dummyHash 供查無帳號時照樣跑一次 bcrypt，讓回應時間與密碼錯誤一致
var dummyHash = sync.OnceValue(func() string {
	h, _ := HashPassword("worktrack-dummy-password")
	return h
})

// PasswordHasher hashes and checks passwords under a request context.
type PasswordHasher interface {
	Hash(ctx context.Context, password string) (string, error)
	Verify(ctx context.Context, hash, password string) (bool, error)
}

// PooledHasher 將 bcrypt 運算排入 worker pool，限制同時進行的雜湊數量
type PooledHasher struct {
	pool worker.Pool
}

func NewPooledHasher(p worker.Pool) *PooledHasher {
	return &PooledHasher{pool: p}
}

func (h *PooledHasher) Hash(ctx context.Context, password string) (string, error) {
	return worker.Run(ctx, h.pool, func() (string, error) {
		return HashPassword(password)
	})
}

func (h *PooledHasher) Verify(ctx context.Context, hash, password string) (bool, error) {
	return worker.Run(ctx, h.pool, func() (bool, error) {
		return VerifyPassword(hash, password), nil
	})
}
