package recruitment

import (
	"go-backoffice/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	postings := r.Group("/postings")
	postings.Use(middleware.ContextLogger(logger))
	{
		postings.GET("", handler.GetAll)
		postings.POST("", middleware.Idempotency(rdb, logger), handler.Create)
		postings.PUT("/:id", handler.Update)
		postings.DELETE("/:id", handler.Delete)
	}
}
