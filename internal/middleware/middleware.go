package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"worktrack/internal/service"

	"github.com/labstack/echo/v4"
)

const ContextUserKey = "user"

// bearerToken 取出 Authorization: Bearer <token>；缺少或格式錯誤一律視為未認證 (401)
func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header format")
	}
	return strings.TrimSpace(parts[1]), nil
}

func extractClaims(c echo.Context, v service.TokenVerifier) (*service.Claims, error) {
	tokenString, err := bearerToken(c)
	if err != nil {
		return nil, err
	}
	claims, err := v.Verify(c.Request().Context(), tokenString)
	switch {
	case err == nil:
		return claims, nil
	case errors.Is(err, service.ErrRevokedToken):
		return nil, echo.NewHTTPError(http.StatusForbidden, "token revoked")
	case errors.Is(err, service.ErrInvalidToken):
		return nil, echo.NewHTTPError(http.StatusForbidden, "invalid token")
	default:
		slog.ErrorContext(c.Request().Context(), "token verification failed", "error", err)
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}

// RequireAuth 驗證 token，並將 claims 放入 request context 與 echo.Context
func RequireAuth(v service.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := extractClaims(c, v)
			if err != nil {
				return err
			}
			req := c.Request()
			c.SetRequest(req.WithContext(service.WithClaims(req.Context(), claims)))
			c.Set(ContextUserKey, claims)
			return next(c)
		}
	}
}

func RequireAdmin(v service.TokenVerifier) echo.MiddlewareFunc {
	auth := RequireAuth(v)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return auth(func(c echo.Context) error {
			claims, _ := CurrentClaims(c)
			if claims == nil || !claims.IsAdmin() {
				return echo.NewHTTPError(http.StatusForbidden, "admin privileges required")
			}
			return next(c)
		})
	}
}

// CurrentClaims returns the claims RequireAuth attached to c.
func CurrentClaims(c echo.Context) (*service.Claims, bool) {
	claims, ok := c.Get(ContextUserKey).(*service.Claims)
	return claims, ok && claims != nil
}
