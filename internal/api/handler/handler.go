package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/blog-records/internal/model"
	"github.com/d60-Lab/blog-records/internal/repository"
	"github.com/d60-Lab/blog-records/internal/service"
	"github.com/d60-Lab/blog-records/pkg/response"
)

// HealthCheck reports whether the backing store is reachable.
type HealthCheck func(ctx context.Context) error

type Handler struct {
	authorService service.AuthorService
	postService   service.PostService
	health        HealthCheck
}

func NewHandler(authors service.AuthorService, posts service.PostService, health HealthCheck) *Handler {
	return &Handler{authorService: authors, postService: posts, health: health}
}

// Health 健康检查
// @Summary 健康检查
// @Tags 系统
// @Produce json
// @Success 200 {object} response.Response
// @Failure 503 {object} response.Response
// @Router /healthz [get]
func (h *Handler) Health(c *gin.Context) {
	if h.health != nil {
		if err := h.health(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, response.Response{Code: response.CodeUnavailable, Message: "database unavailable"})
			return
		}
	}
	response.Success(c, gin.H{"status": "ok"})
}

// fail 将领域错误映射为 HTTP 响应
func fail(c *gin.Context, err error) {
	if ve, ok := model.AsValidationError(err); ok {
		response.ValidationFailed(c, ve.Field, ve.Reason)
		return
	}
	if errors.Is(err, repository.ErrNotFound) {
		response.NotFound(c, "record not found")
		return
	}
	response.InternalError(c, err)
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "invalid id")
		return 0, false
	}
	return uint(id), true
}

type listQuery struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// optionalString tells an absent JSON key apart from an explicit null.
type optionalString struct {
	Set   bool
	Value *string
}

func (o *optionalString) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

func (o optionalString) toService() service.Optional[string] {
	return service.Optional[string]{Set: o.Set, Value: o.Value}
}
