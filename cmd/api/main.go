package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/avelez/taskvault/internal/config"
	"github.com/avelez/taskvault/internal/database"
	"github.com/avelez/taskvault/internal/logger"
	"github.com/avelez/taskvault/internal/redis"
	"github.com/avelez/taskvault/internal/server"
	"github.com/avelez/taskvault/internal/storage"
	goredis "github.com/redis/go-redis/v9"
)

func main() {
	log := logger.New("api")
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: %v", err)
	}

	dbManager, err := database.NewDBManager(ctx, database.Config{
		PrimaryDSN:      cfg.Database.PrimaryDSN,
		ReplicaDSNs:     cfg.Database.ReplicaDSNs,
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
	})
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer dbManager.Close()

	userStore, err := storage.NewPostgresUserStore(ctx, dbManager)
	if err != nil {
		log.Fatal("Failed to init user store: %v", err)
	}
	taskStore, err := storage.NewPostgresTaskStore(ctx, dbManager)
	if err != nil {
		log.Fatal("Failed to init task store: %v", err)
	}

	var redisClient *goredis.Client
	if cfg.Redis.Addr != "" {
		client, err := redis.NewClient(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal("Failed to connect to Redis: %v", err)
		}
		defer client.Close()
		redisClient = client.Raw()
	} else {
		log.Warn("REDIS_ADDR not set, auth rate limiting disabled")
	}

	srv := server.New(server.Options{
		Config:      cfg,
		Users:       userStore,
		Tasks:       taskStore,
		RedisClient: redisClient,
	})

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed: %v", err)
	}
	log.Info("Server stopped")
}
