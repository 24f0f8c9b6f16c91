package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"worktrack/internal/cache"
	"worktrack/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrRevokedToken = errors.New("token revoked")
)

// 以下變數供測試覆寫
var (
	timeNow         = time.Now
	newJTI          = uuid.NewString
	parseWithClaims = jwt.ParseWithClaims
)

// Claims 定義 JWT 負載內容
type Claims struct {
	UserID     int        `json:"id"`
	Email      string     `json:"email"`
	Name       string     `json:"name"`
	Role       model.Role `json:"role"`
	Department string     `json:"department"`
	jwt.RegisteredClaims
}

func (c *Claims) IsAdmin() bool { return c.Role == model.RoleAdmin }

// TokenVerifier is what the auth middleware needs from TokenService.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*Claims, error)
}

// TokenService signs HS256 session tokens and checks them against the
// revocation list kept in Redis.
type TokenService struct {
	secret  []byte
	ttl     time.Duration
	revoked cache.Cache
}

// NewTokenService ttl <= 0 issues tokens without an exp claim.
func NewTokenService(secret []byte, ttl time.Duration, revoked cache.Cache) *TokenService {
	return &TokenService{secret: secret, ttl: ttl, revoked: revoked}
}

// Issue 依使用者資料簽發 token；有設定 TTL 時一併回傳到期時間
func (s *TokenService) Issue(u model.User) (string, *time.Time, error) {
	now := timeNow()
	claims := Claims{
		UserID:     u.ID,
		Email:      u.Email,
		Name:       u.Name,
		Role:       u.Role,
		Department: u.Department,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       newJTI(),
			Subject:  strconv.Itoa(u.ID),
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	var expiresAt *time.Time
	if s.ttl > 0 {
		exp := now.Add(s.ttl)
		claims.ExpiresAt = jwt.NewNumericDate(exp)
		expiresAt = &exp
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("Issue: %w", err)
	}
	return token, expiresAt, nil
}

// Verify 驗證簽章、演算法與到期時間，再查撤銷清單
func (s *TokenService) Verify(ctx context.Context, tokenString string) (*Claims, error) {
	token, err := parseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(timeNow),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.ID == "" {
		return nil, ErrInvalidToken
	}

	n, err := s.revoked.Exists(ctx, revokedKey(claims.ID)).Result()
	if err != nil {
		return nil, fmt.Errorf("Verify: revocation lookup: %w", err)
	}
	if n > 0 {
		return nil, ErrRevokedToken
	}
	return claims, nil
}

// Revoke 將 jti 寫入撤銷清單，保留到 token 原本的到期時間 (無到期則永久)
func (s *TokenService) Revoke(ctx context.Context, c *Claims) error {
	var ttl time.Duration
	if c.ExpiresAt != nil {
		ttl = c.ExpiresAt.Sub(timeNow())
		if ttl <= 0 {
			return nil
		}
	}
	if err := s.revoked.Set(ctx, revokedKey(c.ID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("Revoke: %w", err)
	}
	return nil
}

func revokedKey(jti string) string { return "revoked:" + jti }

type claimsKey struct{}

// WithClaims attaches the verified claim to ctx.
func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, c)
}

func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*Claims)
	return c, ok && c != nil
}
