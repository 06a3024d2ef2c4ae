package app

import (
	"database/sql"

	"go-backoffice/internal/recruitment"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	cfg Config,
) error {
	// --- Services ---
	postingService := newPostingService(db, gormDB, rdb, cfg)

	// --- Handlers ---
	postingHandler := recruitment.NewHandler(postingService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		recruitment.RegisterRoutes(api, postingHandler, rdb, zap.L())
	}

	return nil
}
