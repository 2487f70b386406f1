package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/mediahub/config"
	"github.com/d60-Lab/mediahub/internal/api"
	"github.com/d60-Lab/mediahub/internal/api/handler"
	"github.com/d60-Lab/mediahub/internal/repository"
	"github.com/d60-Lab/mediahub/internal/service"
	"github.com/d60-Lab/mediahub/pkg/database"
	"github.com/d60-Lab/mediahub/pkg/lock"
	"github.com/d60-Lab/mediahub/pkg/logger"
	"github.com/d60-Lab/mediahub/pkg/oss"
	"github.com/d60-Lab/mediahub/pkg/tracing"
)

func must[T any](v T, err error) T {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return v
}

func main() {
	cfg := must(config.Load())
	must(logger.Init(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}))
	defer logger.Sync()

	ctx := context.Background()
	shutdownTracing := must(tracing.Init(ctx, cfg.Tracing))

	sentryEnabled := cfg.Sentry.DSN != ""
	if sentryEnabled {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN, Environment: cfg.Sentry.Environment}); err != nil {
			logger.Warn("sentry disabled", zap.Error(err))
			sentryEnabled = false
		}
	}

	db := must(database.InitDB(cfg))
	uploader := must(oss.NewMinioUploader(ctx, cfg.Storage))

	var guard lock.Guard = lock.Noop{}
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unreachable, toggles rely on unique indexes only", zap.Error(err))
		} else {
			guard = lock.NewRedisGuard(rdb, "mediahub:toggle:", cfg.Redis.LockTTL)
		}
	}

	// repositories & services
	userRepo := repository.NewUserRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	tweetRepo := repository.NewTweetRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	h := handler.NewHandler(handler.Services{
		Video:        service.NewVideoService(videoRepo, uploader),
		Comment:      service.NewCommentService(commentRepo, videoRepo),
		Like:         service.NewLikeService(likeRepo, videoRepo, commentRepo, tweetRepo, guard),
		Subscription: service.NewSubscriptionService(subRepo, userRepo, guard),
		Analytics:    service.NewAnalyticsService(statsRepo, videoRepo),
	}, cfg.Server.MaxUploadMB<<20)

	gin.SetMode(cfg.Server.Mode)
	router := api.NewRouter(cfg, h, api.Options{Sentry: sentryEnabled, Tracing: cfg.Tracing.Enabled, DB: db})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", zap.Error(err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Warn("tracing shutdown", zap.Error(err))
	}
	if sentryEnabled {
		sentry.Flush(2 * time.Second)
	}
	if err := database.Close(db); err != nil {
		logger.Warn("database close", zap.Error(err))
	}
}
