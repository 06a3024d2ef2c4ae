package app

import (
	"context"
	"database/sql"

	"go-backoffice/internal/liststore"
	"go-backoffice/internal/messaging/kafka"
	"go-backoffice/internal/middleware"
	"go-backoffice/internal/recruitment"
	"go-backoffice/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// BuildApp connects the infrastructure, prepares the tables and mounts the
// API on router. The returned cleanup closes the connections.
func BuildApp(ctx context.Context, router *gin.Engine, cfg Config) (func(), error) {
	logger := zap.L().Named("app")

	gormDB, sqlDB, err := openDatabase(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = connection.ConnectRedisWithRetry(cfg.RedisAddr, connectRetries)
		if err != nil {
			sqlDB.Close()
			return nil, err
		}
	} else {
		logger.Warn("REDIS_ADDR not set, postings cache and idempotency disabled")
	}

	cleanup := func() {
		if rdb != nil {
			rdb.Close()
		}
		sqlDB.Close()
	}

	router.Use(
		middleware.RequestID(),
		middleware.RateLimitByIP(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst),
	)

	if err := registerModules(router, sqlDB, gormDB, rdb, cfg); err != nil {
		cleanup()
		return nil, err
	}

	return cleanup, nil
}

// openDatabase connects postgres and makes sure the postings list and the
// outbox table exist.
func openDatabase(ctx context.Context, cfg Config) (*gorm.DB, *sql.DB, error) {
	gormDB, err := connection.ConnectGORMWithRetry(cfg.DB, connectRetries)
	if err != nil {
		return nil, nil, err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, nil, err
	}

	store := liststore.NewGormStore(gormDB)
	if err := store.EnsureList(ctx, cfg.ListName, recruitment.CurrentSchema.Columns()); err != nil {
		sqlDB.Close()
		return nil, nil, err
	}
	if err := kafka.EnsureSchema(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, nil, err
	}

	return gormDB, sqlDB, nil
}

func newPostingService(sqlDB *sql.DB, gormDB *gorm.DB, rdb *redis.Client, cfg Config) recruitment.Service {
	repo := recruitment.NewRepository(liststore.NewGormStore(gormDB), cfg.ListName)
	outboxRepo := kafka.NewOutboxRepository(sqlDB)
	return recruitment.NewServiceWithOutbox(sqlDB, repo, outboxRepo, rdb, recruitment.CacheConfig{
		List: cfg.ListName,
		TTL:  cfg.CacheTTL,
	})
}
