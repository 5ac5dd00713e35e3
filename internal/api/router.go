package api

import (
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/d60-Lab/blog-records/config"
	_ "github.com/d60-Lab/blog-records/docs"
	"github.com/d60-Lab/blog-records/internal/api/handler"
	"github.com/d60-Lab/blog-records/internal/api/middleware"
)

// NewRouter 组装中间件与路由
func NewRouter(cfg *config.Config, h *handler.Handler) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.AccessLog(), middleware.Recovery())
	if cfg.Sentry.DSN != "" {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	if cfg.Tracing.Enabled {
		r.Use(otelgin.Middleware(cfg.Tracing.ServiceName))
	}
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	r.GET("/healthz", h.Health)
	if cfg.Server.Mode != gin.ReleaseMode {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := r.Group("/api/v1", middleware.RateLimit(cfg.Server.RateLimit, cfg.Server.Burst))
	write := middleware.RequireJWT(cfg.Auth.JWTSecret)

	authors := v1.Group("/authors")
	{
		authors.GET("", h.ListAuthors)
		authors.GET("/:id", h.GetAuthor)
		authors.POST("", write, h.CreateAuthor)
		authors.POST("/batch", write, h.CreateAuthorBatch)
		authors.PATCH("/:id", write, h.UpdateAuthor)
		authors.DELETE("/:id", write, h.DeleteAuthor)
	}

	posts := v1.Group("/posts")
	{
		posts.GET("", h.ListPosts)
		posts.GET("/:id", h.GetPost)
		posts.POST("", write, h.CreatePost)
		posts.PATCH("/:id", write, h.UpdatePost)
		posts.DELETE("/:id", write, h.DeletePost)
	}

	return r
}
