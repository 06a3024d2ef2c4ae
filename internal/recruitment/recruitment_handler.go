package recruitment

import (
	"net/http"
	"strconv"

	recruitmenterrors "go-backoffice/internal/recruitment/errors"
	"go-backoffice/internal/shared/apperror"
	"go-backoffice/internal/shared/contextutil"
	"go-backoffice/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("recruitment.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("recruitment.handler")
	}
	return &Handler{service: service, logger: l}
}

// log prefers the request logger attached by middleware.ContextLogger.
func (h *Handler) log(c *gin.Context) *zap.Logger {
	return contextutil.GetLogger(c.Request.Context(), h.logger)
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.log(c).Warn("posting request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
		zap.Error(err),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) GetAll(c *gin.Context) {
	h.log(c).Debug("http get all postings")

	postings, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, mapToListResponse(postings))
}

func (h *Handler) Create(c *gin.Context) {
	h.log(c).Debug("http create posting")

	var req CreatePostingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log(c).Warn("http create posting validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	p, err := req.ToPosting()
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if err := h.service.Create(c.Request.Context(), p); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"created": true})
}

func (h *Handler) Update(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	h.log(c).Debug("http update posting", zap.Int("posting_id", id))

	var req UpdatePostingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log(c).Warn("http update posting validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	p, err := req.ToPosting(id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if err := h.service.Update(c.Request.Context(), p); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"updated": true})
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	h.log(c).Debug("http delete posting", zap.Int("posting_id", id))

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func parseID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, recruitmenterrors.ErrInvalidPostingID
	}
	return id, nil
}
