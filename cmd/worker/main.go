// Package main runs the standalone email delivery worker.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/stillpoint-community/backend/config"
	"github.com/stillpoint-community/backend/internal/emaillogs"
	"github.com/stillpoint-community/backend/internal/worker"
	"github.com/stillpoint-community/backend/pkg/database"
	"github.com/stillpoint-community/backend/pkg/mail"
	"github.com/stillpoint-community/backend/pkg/queue"
	"github.com/stillpoint-community/backend/pkg/redis"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	var sender mail.Sender = mail.NewConsole(logger)
	if cfg.Email.APIKey != "" {
		sender = mail.NewSendGrid(cfg.Email.APIKey, cfg.Email.FromName, cfg.Email.FromAddress)
	}

	jobQueue := queue.NewQueue(rdb.Client, logger)
	emailLogsRepo := emaillogs.NewRepository(pool)
	processor := worker.NewEmailProcessor(jobQueue, sender, emailLogsRepo, logger)

	workerCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go processor.Run(workerCtx)
	logger.Info("worker started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	cancel()
	time.Sleep(2 * time.Second)
	logger.Info("worker stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
