package app

import (
	"context"

	"go-backoffice/internal/backoffice"
	"go-backoffice/internal/liststore"
	"go-backoffice/internal/recruitment"
	"go-backoffice/internal/shared/connection"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewConsoleData returns the posting store the console drives. With memory
// set it is a process-local list; otherwise it is the same service the API
// uses, so console edits also queue events and invalidate the API cache.
func NewConsoleData(ctx context.Context, cfg Config, memory bool) (backoffice.DataAccess, func(), error) {
	if memory {
		zap.L().Named("app.console").Info("using in-memory posting list", zap.String("list", cfg.ListName))
		return recruitment.NewRepository(liststore.NewMemoryStore(), cfg.ListName), func() {}, nil
	}

	gormDB, sqlDB, err := openDatabase(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = connection.ConnectRedisWithRetry(cfg.RedisAddr, connectRetries)
		if err != nil {
			sqlDB.Close()
			return nil, nil, err
		}
	}

	cleanup := func() {
		if rdb != nil {
			rdb.Close()
		}
		sqlDB.Close()
	}
	return newPostingService(sqlDB, gormDB, rdb, cfg), cleanup, nil
}
