package main

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"worktrack/internal/bootstrap"
	"worktrack/internal/cache"
	"worktrack/internal/config"
	"worktrack/internal/database"
	"worktrack/internal/service"
	"worktrack/internal/worker"
)

func restoreGlobals() {
	loadConfig = config.Load
	newPgxPool = database.NewPgxPool
	newRedisClient = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	newWorkerPool = worker.NewPool
	ensureAdmin = bootstrap.EnsureAdmin
	startServer = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	shutdownServer = func(ctx context.Context, e *echo.Echo) error { return e.Shutdown(ctx) }
	exitFunc = func(code int) {}
}

func testConfig() config.App {
	return config.App{
		Env:           "dev",
		Port:          "3999",
		DatabaseURL:   "db",
		RedisAddr:     "127",
		RedisPassword: "pw",
		RedisDB:       1,
		JWTSecret:     "s",
		TokenTTL:      time.Hour,
		WorkerCount:   2,
		BcryptCost:    4,
		AdminEmail:    config.DefaultAdminEmail,
		AdminPassword: config.DefaultAdminPassword,
		AdminName:     "Administrator",
	}
}

// stubAll 讓 run() 所有外部依賴都成功，並記錄呼叫情況
func stubAll(t *testing.T, called map[string]bool) {
	t.Helper()
	loadConfig = func() (config.App, error) { return testConfig(), nil }
	newPgxPool = func(ctx context.Context, url string) (database.DB, error) {
		called["pgx"] = true
		require.Equal(t, "db", url)
		return &database.FakeDB{CloseFn: func() { called["dbClose"] = true }}, nil
	}
	newRedisClient = func(ctx context.Context, addr, pwd string, db int) (cache.Cache, error) {
		called["redis"] = true
		require.Equal(t, "127", addr)
		require.Equal(t, "pw", pwd)
		require.Equal(t, 1, db)
		return &cache.FakeCache{CloseFn: func() error { called["redisClose"] = true; return nil }}, nil
	}
	runMigrationsFn = func(url string) error { called["migrate"] = true; return nil }
	newWorkerPool = func(n int) worker.Pool {
		called["pool"] = true
		require.Equal(t, 2, n)
		return worker.NewPool(n)
	}
	ensureAdmin = func(_ context.Context, _ database.DB, _ service.PasswordHasher, acct bootstrap.AdminAccount) (bool, error) {
		called["admin"] = true
		require.Equal(t, config.DefaultAdminEmail, acct.Email)
		return true, nil
	}
	startServer = func(e *echo.Echo, addr string) error {
		called["start"] = true
		require.Equal(t, ":3999", addr)
		return http.ErrServerClosed
	}
}

func TestCustomValidator(t *testing.T) {
	cv := &CustomValidator{validator: validator.New()}
	type s struct {
		Name string `validate:"required"`
	}
	require.NoError(t, cv.Validate(&s{Name: "ok"}))
	require.Error(t, cv.Validate(&s{}))
}

func TestRunSuccess(t *testing.T) {
	t.Cleanup(restoreGlobals)
	called := make(map[string]bool)
	stubAll(t, called)

	require.NoError(t, run(context.Background()))
	for _, k := range []string{"pgx", "redis", "migrate", "pool", "admin", "start", "dbClose", "redisClose"} {
		require.True(t, called[k], k)
	}
}

func TestRunErrors(t *testing.T) {
	t.Cleanup(restoreGlobals)
	fail := errors.New("fail")

	cases := []struct {
		name    string
		breakFn func()
	}{
		{"config", func() { loadConfig = func() (config.App, error) { return config.App{}, fail } }},
		{"bcrypt cost", func() {
			loadConfig = func() (config.App, error) { c := testConfig(); c.BcryptCost = 99; return c, nil }
		}},
		{"db", func() { newPgxPool = func(context.Context, string) (database.DB, error) { return nil, fail } }},
		{"redis", func() {
			newRedisClient = func(context.Context, string, string, int) (cache.Cache, error) { return nil, fail }
		}},
		{"migrate", func() { runMigrationsFn = func(string) error { return fail } }},
		{"admin", func() {
			ensureAdmin = func(context.Context, database.DB, service.PasswordHasher, bootstrap.AdminAccount) (bool, error) {
				return false, fail
			}
		}},
		{"server", func() { startServer = func(*echo.Echo, string) error { return fail } }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stubAll(t, map[string]bool{})
			tc.breakFn()
			require.Error(t, run(context.Background()))
		})
	}
}

func TestServeGracefulShutdown(t *testing.T) {
	t.Cleanup(restoreGlobals)
	stopped := make(chan struct{})
	startServer = func(*echo.Echo, string) error {
		<-stopped
		return http.ErrServerClosed
	}
	shutdownCalled := false
	shutdownServer = func(ctx context.Context, _ *echo.Echo) error {
		shutdownCalled = true
		_, hasDeadline := ctx.Deadline()
		require.True(t, hasDeadline)
		close(stopped)
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, serve(ctx, echo.New(), ":0"))
	require.True(t, shutdownCalled)
}

func TestServeShutdownError(t *testing.T) {
	t.Cleanup(restoreGlobals)
	block := make(chan struct{})
	defer close(block)
	startServer = func(*echo.Echo, string) error { <-block; return http.ErrServerClosed }
	shutdownServer = func(context.Context, *echo.Echo) error { return errors.New("timeout") }

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.Error(t, serve(ctx, echo.New(), ":0"))
}

func TestNewLogger(t *testing.T) {
	cfg := testConfig()
	require.NotNil(t, newLogger(cfg))
	cfg.Env = "prod"
	require.NotNil(t, newLogger(cfg))
}
