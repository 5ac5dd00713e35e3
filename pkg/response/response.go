package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/d60-Lab/blog-records/pkg/logger"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// FieldError 单字段错误明细
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

const (
	CodeOK           = 0
	CodeBadRequest   = 40000
	CodeUnauthorized = 40100
	CodeNotFound     = 40400
	CodeTooMany      = 42900
	CodeValidation   = 42200
	CodeInternal     = 50000
	CodeUnavailable  = 50300
)

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: CodeOK, Message: "ok", Data: data})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Code: CodeOK, Message: "created", Data: data})
}

func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, Response{Code: CodeBadRequest, Message: msg})
}

// BindError 将 gin binding（validator）错误展开为字段明细
func BindError(c *gin.Context, err error) {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		BadRequest(c, err.Error())
		return
	}
	details := make([]FieldError, 0, len(ves))
	for _, fe := range ves {
		details = append(details, FieldError{Field: fe.Field(), Reason: "failed on " + fe.Tag()})
	}
	c.JSON(http.StatusBadRequest, Response{Code: CodeBadRequest, Message: "invalid request", Data: details})
}

// ValidationFailed 记录字段校验不通过
func ValidationFailed(c *gin.Context, field, reason string) {
	c.JSON(http.StatusUnprocessableEntity, Response{
		Code:    CodeValidation,
		Message: reason,
		Data:    FieldError{Field: field, Reason: reason},
	})
}

func NotFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, Response{Code: CodeNotFound, Message: msg})
}

func Unauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, Response{Code: CodeUnauthorized, Message: msg})
}

func TooManyRequests(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, Response{Code: CodeTooMany, Message: "too many requests"})
}

func InternalError(c *gin.Context, err error) {
	logger.Error("internal error", zap.String("path", c.FullPath()), zap.Error(err))
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, Response{Code: CodeInternal, Message: "internal server error"})
}
