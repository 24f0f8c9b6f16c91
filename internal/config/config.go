package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// App holds the runtime configuration loaded from environment variables.
type App struct {
	Env           string
	Port          string
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	JWTSecret     string
	TokenTTL      time.Duration
	WorkerCount   int
	BcryptCost    int
	AdminEmail    string
	AdminPassword string
	AdminName     string
	LogLevel      slog.Level
}

const (
	DefaultAdminEmail    = "admin@worktrack.local"
	DefaultAdminPassword = "admin123"
)

// Load 讀取環境變數；必要值缺少或數值格式錯誤時回傳錯誤 (可能同時包含多個)
func Load() (App, error) {
	var errs []error
	required := func(key string) string {
		v := os.Getenv(key)
		if v == "" {
			errs = append(errs, fmt.Errorf("環境變數 %s 未設定", key))
		}
		return v
	}
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	cfg := App{
		Env:           getEnv("APP_ENV", "dev"),
		Port:          getEnv("PORT", "3000"),
		DatabaseURL:   required("DATABASE_URL"),
		RedisAddr:     required("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		JWTSecret:     required("JWT_SECRET"),
		AdminEmail:    getEnv("ADMIN_EMAIL", DefaultAdminEmail),
		AdminPassword: getEnv("ADMIN_PASSWORD", DefaultAdminPassword),
		AdminName:     getEnv("ADMIN_NAME", "Administrator"),
	}

	var err error
	cfg.RedisDB, err = intEnv("REDIS_DB", 0)
	collect(err)
	cfg.TokenTTL, err = durationEnv("TOKEN_TTL", 24*time.Hour)
	collect(err)
	cfg.WorkerCount, err = intEnv("WORKER_COUNT", 4)
	collect(err)
	cfg.BcryptCost, err = intEnv("BCRYPT_COST", 10)
	collect(err)
	cfg.LogLevel, err = levelEnv("LOG_LEVEL", slog.LevelInfo)
	collect(err)

	if cfg.TokenTTL < 0 {
		errs = append(errs, fmt.Errorf("無效的 TOKEN_TTL: %s", cfg.TokenTTL))
	}
	if cfg.WorkerCount <= 0 {
		errs = append(errs, fmt.Errorf("無效的 WORKER_COUNT: %d", cfg.WorkerCount))
	}
	if cfg.RedisDB < 0 {
		errs = append(errs, fmt.Errorf("無效的 REDIS_DB: %d", cfg.RedisDB))
	}

	if len(errs) > 0 {
		return App{}, errors.Join(errs...)
	}
	return cfg, nil
}

// IsProduction 決定 log 格式 (prod 用 JSON)
func (a App) IsProduction() bool {
	return a.Env == "prod" || a.Env == "production"
}

// Addr is the listen address for the HTTP server.
func (a App) Addr() string { return ":" + a.Port }

// UsingDefaultAdminPassword reports whether the bootstrap admin still has the
// well-known password.
func (a App) UsingDefaultAdminPassword() bool {
	return a.AdminPassword == DefaultAdminPassword
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return fallback, fmt.Errorf("無效的 %s: %w", key, err)
	}
	return d, nil
}

func intEnv(key string, fallback int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return fallback, fmt.Errorf("無效的 %s: %w", key, err)
	}
	return n, nil
}

func levelEnv(key string, fallback slog.Level) (slog.Level, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(val))); err != nil {
		return fallback, fmt.Errorf("無效的 %s: %w", key, err)
	}
	return lvl, nil
}
