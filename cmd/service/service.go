// @title        WorkTrack API
// @version      1.0
// @description  員工打卡服務：註冊、登入、check-in / check-out 與紀錄匯出
// @host         localhost:3000
// @BasePath     /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer <token>
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"worktrack/internal/bootstrap"
	"worktrack/internal/cache"
	"worktrack/internal/config"
	"worktrack/internal/database"
	"worktrack/internal/router"
	"worktrack/internal/service"
	"worktrack/internal/worker"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "worktrack/docs" // 引入 swag 產出的 docs

	echoSwagger "github.com/swaggo/echo-swagger"
)

// CustomValidator wraps go-playground/validator for Echo
// swagger:ignore
type CustomValidator struct {
	validator *validator.Validate
}

// Validate calls the underlying validator
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

const shutdownTimeout = 10 * time.Second

var (
	loadConfig      = config.Load
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	newWorkerPool   = worker.NewPool
	ensureAdmin     = bootstrap.EnsureAdmin
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	shutdownServer  = func(ctx context.Context, e *echo.Echo) error { return e.Shutdown(ctx) }
	exitFunc        = os.Exit
)

func newLogger(cfg config.App) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func newEcho(cfg config.App) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Debug = !cfg.IsProduction()
	e.Validator = &CustomValidator{validator: validator.New()}
	e.Server.ReadHeaderTimeout = 5 * time.Second
	e.Server.ReadTimeout = 15 * time.Second
	e.Server.WriteTimeout = 30 * time.Second
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("1M"))
	return e
}

func run(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("設定載入失敗: %w", err)
	}
	slog.SetDefault(newLogger(cfg))

	if err := service.SetBcryptCost(cfg.BcryptCost); err != nil {
		return fmt.Errorf("無效的 BCRYPT_COST: %w", err)
	}

	db, err := newPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %w", err)
	}
	defer db.Close()

	rdb, err := newRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return fmt.Errorf("Redis 連線失敗: %w", err)
	}
	defer rdb.Close()

	if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %w", err)
	}

	wp := newWorkerPool(cfg.WorkerCount)
	defer wp.Stop()
	hasher := service.NewPooledHasher(wp)

	if cfg.UsingDefaultAdminPassword() {
		slog.Warn("bootstrap admin uses the default password; set ADMIN_PASSWORD", "email", cfg.AdminEmail)
	}
	if _, err := ensureAdmin(ctx, db, hasher, bootstrap.AdminAccount{
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
		Name:     cfg.AdminName,
	}); err != nil {
		return fmt.Errorf("管理員初始化失敗: %w", err)
	}

	tokens := service.NewTokenService([]byte(cfg.JWTSecret), cfg.TokenTTL, rdb)

	e := newEcho(cfg)
	router.Setup(e, db, rdb, tokens, hasher)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	slog.Info("server starting", "addr", cfg.Addr(), "env", cfg.Env)
	return serve(ctx, e, cfg.Addr())
}

// serve 在背景啟動 server；ctx 結束時優雅關閉並等待進行中的請求
func serve(ctx context.Context, e *echo.Echo, addr string) error {
	errCh := make(chan error, 1)
	go func() { errCh <- startServer(e, addr) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownServer(shutdownCtx, e); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()
	if err != nil {
		slog.Error("service exited", "error", err)
		exitFunc(1)
	}
}
