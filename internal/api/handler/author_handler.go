package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/blog-records/internal/service"
	"github.com/d60-Lab/blog-records/pkg/response"
)

type createAuthorRequest struct {
	Name        string  `json:"name"`
	PhoneNumber *string `json:"phone_number"`
}

func (r createAuthorRequest) toInput() service.CreateAuthorInput {
	return service.CreateAuthorInput{Name: r.Name, PhoneNumber: r.PhoneNumber}
}

type createAuthorBatchRequest struct {
	Authors []createAuthorRequest `json:"authors" binding:"required,min=1,max=100"`
}

type updateAuthorRequest struct {
	Name        *string        `json:"name"`
	PhoneNumber optionalString `json:"phone_number" swaggertype:"string"`
}

// CreateAuthor 创建作者
// @Summary 创建作者（名称唯一，电话可选且为 10 位数字）
// @Tags 作者
// @Accept json
// @Produce json
// @Param request body createAuthorRequest true "作者信息"
// @Success 201 {object} response.Response{data=model.Author}
// @Failure 400 {object} response.Response
// @Failure 422 {object} response.Response{data=response.FieldError}
// @Router /api/v1/authors [post]
func (h *Handler) CreateAuthor(c *gin.Context) {
	var req createAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	a, err := h.authorService.Create(c.Request.Context(), req.toInput())
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, a)
}

// CreateAuthorBatch 批量创建作者（全部成功或全部失败）
// @Summary 批量创建作者
// @Tags 作者
// @Accept json
// @Produce json
// @Param request body createAuthorBatchRequest true "作者列表"
// @Success 201 {object} response.Response{data=[]model.Author}
// @Failure 400 {object} response.Response
// @Failure 422 {object} response.Response{data=response.FieldError}
// @Router /api/v1/authors/batch [post]
func (h *Handler) CreateAuthorBatch(c *gin.Context) {
	var req createAuthorBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	in := make([]service.CreateAuthorInput, len(req.Authors))
	for i, r := range req.Authors {
		in[i] = r.toInput()
	}
	authors, err := h.authorService.CreateBatch(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, authors)
}

// GetAuthor 查询作者
// @Summary 查询作者
// @Tags 作者
// @Produce json
// @Param id path int true "作者ID"
// @Success 200 {object} response.Response{data=model.Author}
// @Failure 404 {object} response.Response
// @Router /api/v1/authors/{id} [get]
func (h *Handler) GetAuthor(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	a, err := h.authorService.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, a)
}

// ListAuthors 作者列表
// @Summary 作者列表
// @Tags 作者
// @Produce json
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Success 200 {object} response.Response
// @Router /api/v1/authors [get]
func (h *Handler) ListAuthors(c *gin.Context) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}
	page, err := h.authorService.List(c.Request.Context(), q.Page, q.PageSize)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, page)
}

// UpdateAuthor 更新作者（部分字段）
// @Summary 更新作者
// @Tags 作者
// @Accept json
// @Produce json
// @Param id path int true "作者ID"
// @Param request body updateAuthorRequest true "待更新字段，phone_number 传 null 清空"
// @Success 200 {object} response.Response{data=model.Author}
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response{data=response.FieldError}
// @Router /api/v1/authors/{id} [patch]
func (h *Handler) UpdateAuthor(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req updateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	a, err := h.authorService.Update(c.Request.Context(), id, service.UpdateAuthorInput{
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber.toService(),
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, a)
}

// DeleteAuthor 删除作者
// @Summary 删除作者
// @Tags 作者
// @Param id path int true "作者ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/authors/{id} [delete]
func (h *Handler) DeleteAuthor(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.authorService.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, nil)
}
