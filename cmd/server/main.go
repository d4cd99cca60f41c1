package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/tavolo/menu-catalog-service/config"
	"github.com/tavolo/menu-catalog-service/internal/app"
	"github.com/tavolo/menu-catalog-service/internal/database"
	"github.com/tavolo/menu-catalog-service/internal/logger"
	"github.com/tavolo/menu-catalog-service/internal/session"
	"github.com/tavolo/menu-catalog-service/internal/storage"
	"github.com/tavolo/menu-catalog-service/internal/translate"
)

// The catalog core has no transport of its own; this binary is the cache
// warmer. It prebuilds every restaurant's catalog into redis at startup and
// keeps one session per restaurant open so cached copies are dropped when
// another process publishes an invalidation.
func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.Config{
		Level:             cfg.Logger.Level,
		Encoding:          cfg.Logger.Encoding,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.Server.AppEnv == "development" {
		logConfig.Encoding = "console"
		logConfig.Level = "debug"
	}

	appLogger, err := logger.New(logConfig)
	if err != nil {
		panic(err)
	}
	defer appLogger.Sync()

	// 3. Connect to Database
	db, err := database.NewPostgres(&cfg.Postgres)
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	// 4. Initialize Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		appLogger.Fatal("Could not connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))

	// 4.5 Initialize Minio
	var uploader storage.Uploader
	minioStorage, err := storage.NewMinioStorage(context.Background(), &cfg.Minio, appLogger)
	if err != nil {
		appLogger.Warn("Could not connect to Minio (image upload disabled)", zap.Error(err))
	} else {
		uploader = minioStorage
		appLogger.Info("Connected to Minio", zap.String("endpoint", cfg.Minio.Endpoint))
	}

	// 4.8 Initialize Translator
	var translator translate.Translator
	if cfg.Translate.Endpoint != "" {
		translator = translate.NewHTTPTranslator(cfg.Translate.Endpoint, cfg.Translate.Timeout)
		appLogger.Info("Translation enabled", zap.String("endpoint", cfg.Translate.Endpoint))
	}

	// 5. Assemble the Service
	catalogApp := app.New(db, redisClient, uploader, translator, cfg.Catalog.CacheTTL, appLogger)

	// 6. Warm the Catalog Cache
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listCtx, cancelList := context.WithTimeout(ctx, cfg.Server.QueryTimeout)
	restaurants, err := catalogApp.RestaurantIDs(listCtx)
	cancelList()
	if err != nil {
		appLogger.Fatal("Could not list restaurants", zap.Error(err))
	}

	sessions := make([]*session.Session, 0, len(restaurants))
	for _, restaurantID := range restaurants {
		sess, err := catalogApp.OpenSession(ctx, restaurantID)
		if err != nil {
			appLogger.Error("Could not open warm session", zap.String("restaurant_id", restaurantID), zap.Error(err))
			continue
		}
		warmCtx, cancelWarm := context.WithTimeout(ctx, cfg.Server.QueryTimeout)
		if _, err := sess.Catalog(warmCtx); err != nil {
			appLogger.Error("Could not warm catalog", zap.String("restaurant_id", restaurantID), zap.Error(err))
		}
		cancelWarm()
		sessions = append(sessions, sess)
	}
	appLogger.Info("Catalog cache warmed", zap.Int("restaurants", len(sessions)))

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down...")
	for _, sess := range sessions {
		if err := sess.Close(); err != nil {
			appLogger.Warn("Session close failed", zap.Error(err))
		}
	}
	appLogger.Info("Stopped")
}
