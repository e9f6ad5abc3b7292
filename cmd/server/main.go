package main

import (
	"alcyxob/exercise-tracker/internal/api"
	"alcyxob/exercise-tracker/internal/config"
	"alcyxob/exercise-tracker/internal/logger"
	"alcyxob/exercise-tracker/internal/metrics"
	"alcyxob/exercise-tracker/internal/repository"
	"alcyxob/exercise-tracker/internal/repository/memory"
	"alcyxob/exercise-tracker/internal/repository/mongo"
	"alcyxob/exercise-tracker/internal/service"
	"alcyxob/exercise-tracker/internal/storage"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// @title Exercise Tracker API
// @version 1.0
// @description Users and their exercise logs.
// @host localhost:3000
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Fatalf("could not load config: %v", err)
	}
	logger.Init(cfg.Log.Level)
	logger.Infof("starting exercise tracker (log level %s)", logger.LevelString())

	// --- Repositories ---
	var (
		userRepo     repository.UserRepository
		exerciseRepo repository.ExerciseRepository
	)
	switch cfg.Store.Backend {
	case "mongo":
		dbClient, err := mongo.ConnectDB(cfg.Database.URI)
		if err != nil {
			logger.Fatalf("could not connect to MongoDB: %v", err)
		}
		defer func() {
			logger.Infof("disconnecting MongoDB...")
			if err := mongo.DisconnectDB(dbClient); err != nil {
				logger.Errorf("failed to disconnect MongoDB: %v", err)
			}
		}()
		appDB := dbClient.Database(cfg.Database.Name)

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
			defer cancel()
			if err := mongo.EnsureUserIndexes(ctx, appDB.Collection("users")); err != nil {
				logger.Warnf("user indexes: %v", err)
			}
			if err := mongo.EnsureExerciseIndexes(ctx, appDB.Collection("exercises")); err != nil {
				logger.Warnf("exercise indexes: %v", err)
			}
			logger.Debugf("index creation completed")
		}()

		userRepo = mongo.NewMongoUserRepository(appDB)
		exerciseRepo = mongo.NewMongoExerciseRepository(appDB)
		logger.Infof("using MongoDB store %q", cfg.Database.Name)
	case "memory", "":
		store := memory.NewStore()
		userRepo = store.Users()
		exerciseRepo = store.Exercises()
		logger.Infof("using in-memory store")
	default:
		logger.Fatalf("unknown store backend %q", cfg.Store.Backend)
	}

	// --- Services ---
	userService := service.NewUserService(userRepo)
	exerciseService := service.NewExerciseService(userRepo, exerciseRepo, service.ExerciseOptions{
		Strict: cfg.Validation.Strict,
	})
	tokenService := service.NewTokenService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)

	var fileStorage storage.FileStorage
	if cfg.Storage.BucketName != "" {
		fileStorage, err = storage.New(cfg.Storage)
		if err != nil {
			logger.Fatalf("failed to initialize %s storage: %v", cfg.Storage.Provider, err)
		}
		logger.Infof("log export enabled (bucket %s)", cfg.Storage.BucketName)
	}
	exportService := service.NewExportService(exerciseService, fileStorage, cfg.Storage.URLExpiry)

	// --- Gin Engine ---
	router := gin.Default()

	if cfg.RateLimit.Enabled {
		router.Use(rateLimiter(cfg))
	}

	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		metrics.RegisterCollectors(reg)
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	api.SetupRoutes(router, cfg.JWT.Secret, userService, exerciseService, tokenService, exportService)

	// --- HTTP Server ---
	addr := cfg.Server.ListenAddress()
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Infof("server listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Infof("shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Errorf("server forced to shutdown: %v", err)
	}
	logger.Infof("server exiting")
}

// rateLimiter picks the Redis limiter when it is configured and reachable,
// the in-process one otherwise.
func rateLimiter(cfg config.Config) gin.HandlerFunc {
	rl := cfg.RateLimit
	if rl.UseRedis && cfg.Redis.Address != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		err := client.Ping(ctx).Err()
		if err == nil {
			logger.Infof("rate limiting via redis at %s (%.1f rps, burst %d)", cfg.Redis.Address, rl.RPS, rl.Burst)
			return api.RedisRateLimitMiddleware(client, rl.RPS, rl.Burst, rl.Window)
		}
		logger.Warnf("redis unavailable at %s, using in-memory rate limiter: %v", cfg.Redis.Address, err)
		_ = client.Close()
	}
	logger.Infof("rate limiting in memory (%.1f rps, burst %d)", rl.RPS, rl.Burst)
	return api.RateLimitMiddleware(rl.RPS, rl.Burst)
}
