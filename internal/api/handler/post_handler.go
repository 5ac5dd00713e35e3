package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/blog-records/internal/service"
	"github.com/d60-Lab/blog-records/pkg/response"
)

type createPostRequest struct {
	Title    string  `json:"title"`
	Content  *string `json:"content"`
	Summary  *string `json:"summary"`
	Category *string `json:"category"`
}

type updatePostRequest struct {
	Title    *string        `json:"title"`
	Content  optionalString `json:"content" swaggertype:"string"`
	Summary  optionalString `json:"summary" swaggertype:"string"`
	Category optionalString `json:"category" swaggertype:"string"`
}

type listPostsQuery struct {
	listQuery
	Category string `form:"category"`
}

// CreatePost 创建文章
// @Summary 创建文章（标题不可为标题党，正文 ≥250 字，摘要 ≤250 字）
// @Tags 文章
// @Accept json
// @Produce json
// @Param request body createPostRequest true "文章信息"
// @Success 201 {object} response.Response{data=model.Post}
// @Failure 400 {object} response.Response
// @Failure 422 {object} response.Response{data=response.FieldError}
// @Router /api/v1/posts [post]
func (h *Handler) CreatePost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	p, err := h.postService.Create(c.Request.Context(), service.CreatePostInput{
		Title:    req.Title,
		Content:  req.Content,
		Summary:  req.Summary,
		Category: req.Category,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, p)
}

// GetPost 查询文章
// @Summary 查询文章
// @Tags 文章
// @Produce json
// @Param id path int true "文章ID"
// @Success 200 {object} response.Response{data=model.Post}
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{id} [get]
func (h *Handler) GetPost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	p, err := h.postService.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, p)
}

// ListPosts 文章列表
// @Summary 文章列表（可按分类过滤）
// @Tags 文章
// @Produce json
// @Param category query string false "分类" Enums(Fiction, Non-Fiction)
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Success 200 {object} response.Response
// @Failure 422 {object} response.Response{data=response.FieldError}
// @Router /api/v1/posts [get]
func (h *Handler) ListPosts(c *gin.Context) {
	var q listPostsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}
	page, err := h.postService.List(c.Request.Context(), q.Category, q.Page, q.PageSize)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, page)
}

// UpdatePost 更新文章（部分字段）
// @Summary 更新文章
// @Tags 文章
// @Accept json
// @Produce json
// @Param id path int true "文章ID"
// @Param request body updatePostRequest true "待更新字段，可选字段传 null 清空"
// @Success 200 {object} response.Response{data=model.Post}
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response{data=response.FieldError}
// @Router /api/v1/posts/{id} [patch]
func (h *Handler) UpdatePost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	p, err := h.postService.Update(c.Request.Context(), id, service.UpdatePostInput{
		Title:    req.Title,
		Content:  req.Content.toService(),
		Summary:  req.Summary.toService(),
		Category: req.Category.toService(),
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, p)
}

// DeletePost 删除文章
// @Summary 删除文章
// @Tags 文章
// @Param id path int true "文章ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{id} [delete]
func (h *Handler) DeletePost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.postService.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, nil)
}
