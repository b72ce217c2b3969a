// cmd/main.go
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/functionasasin/projects-api/internal/config"
	"github.com/functionasasin/projects-api/internal/handlers"
	"github.com/functionasasin/projects-api/internal/repository"
	"github.com/functionasasin/projects-api/internal/service"

	"github.com/lmittmann/tint"
)

func main() {
	//　設定ファイル読み込み用の一時的なロガー設定
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(tempLogger)
	log.Println("Log Config Loading...")

	// リポジトリ直下からでも cmd/ からでも起動できるようにする
	configDir := "configs"
	if _, err := os.Stat(configDir); err != nil {
		configDir = "../configs"
	}
	if err := config.LoadConfig(configDir); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := newLogger(config.Cfg.Log.Level, os.Getenv("APP_ENV"), tempLogger)
	slog.SetDefault(logger)
	slog.Info("Application starting...", slog.String("app", config.AppName), slog.String("version", config.AppVersion))

	// 1. DB
	db, err := repository.NewDB(config.Cfg.Database.Driver, config.Cfg.Database.URL, logger)
	if err != nil {
		slog.Error("Error initializing database", slog.Any("error", err))
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("Error closing database connection", slog.Any("error", err))
		} else {
			slog.Info("Database connection closed.")
		}
	}()

	if config.Cfg.Database.AutoMigrate {
		if err := repository.Migrate(db); err != nil {
			slog.Error("Error migrating database", slog.Any("error", err))
			os.Exit(1)
		}
		slog.Info("Database migrated")
	}

	// 2. 強化ロック (Redis が無ければプロセス内のみ)
	var locker repository.EnhancementLocker = repository.NoopEnhancementLocker{}
	if config.Cfg.Redis.URL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		redisClient, err := repository.NewRedisClient(ctx, config.Cfg.Redis.URL)
		cancel()
		if err != nil {
			slog.Error("Error connecting to Redis", slog.Any("error", err))
			os.Exit(1)
		}
		defer redisClient.Close()
		locker = repository.NewRedisEnhancementLocker(redisClient, config.Cfg.Redis.LockTTL, config.Cfg.Redis.LockWait)
		slog.Info("Using Redis enhancement lock")
	}

	// 3. Dependency Injection
	projectRepo := repository.NewGormProjectRepository()
	enhancer := service.NewProjectEnhancer(&config.Cfg, logger)
	projectService := service.NewProjectService(db, projectRepo, enhancer, locker)
	projectHandler := handlers.NewProjectHandler(projectService, logger)

	// 4. Router
	r := handlers.NewRouter(projectHandler, sqlDB, handlers.RouterConfig{
		APIKey:         config.Cfg.Auth.APIKey,
		CORS:           config.Cfg.CORS,
		RequestTimeout: config.Cfg.Server.RequestTimeout,
	}, logger)

	// 5. Start Server
	// 強化は生成 API の応答待ちがあるので WriteTimeout はリクエストタイムアウトより長くとる
	server := &http.Server{
		Addr:         config.Cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: config.Cfg.Server.RequestTimeout + 5*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", slog.String("port", config.Cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen on port", slog.String("port", config.Cfg.Server.Port), slog.Any("error", err))
			os.Exit(1) // Listen失敗は致命的
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", slog.Any("error", err))
	}

	log.Println("Server exiting")
}

// newLogger は APP_ENV=dev なら tint、それ以外は JSON のハンドラでロガーを作ります
func newLogger(level, appEnv string, tempLogger *slog.Logger) *slog.Logger {
	logLevel := new(slog.LevelVar)
	switch strings.ToLower(level) {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "info":
		logLevel.Set(slog.LevelInfo)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo) // 不明な場合はInfo
		tempLogger.Warn("Unknown log level specified in config, defaulting to INFO", slog.String("level", level))
	}

	var handler slog.Handler
	if strings.ToLower(appEnv) == "dev" {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		})
		tempLogger.Info("Using TINT log handler", slog.String("APP_ENV", appEnv))
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		})
		tempLogger.Info("Using JSON log handler", slog.String("APP_ENV", appEnv))
	}
	return slog.New(handler)
}
