package response

import (
	"errors"
	"net/http"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/mediahub/pkg/apperrors"
	"github.com/d60-Lab/mediahub/pkg/logger"
)

// Response 统一响应结构
type Response struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Error      *ErrorBody  `json:"error,omitempty"`
}

// Pagination 分页信息
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// ErrorBody 错误详情
type ErrorBody struct {
	Kind  apperrors.Kind `json:"kind"`
	Input interface{}    `json:"input,omitempty"`
}

// Success 200
func Success(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, Response{StatusCode: http.StatusOK, Data: data, Message: message})
}

// Created 201
func Created(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, Response{StatusCode: http.StatusCreated, Data: data, Message: message})
}

// Paged 200 with pagination metadata
func Paged(c *gin.Context, items interface{}, page, limit int, total int64, message string) {
	c.JSON(http.StatusOK, Response{
		StatusCode: http.StatusOK,
		Data:       items,
		Message:    message,
		Pagination: &Pagination{Page: page, Limit: limit, Total: total},
	})
}

// NoContent 204, no body
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error writes err using its kind's status. Unexpected failures are logged
// and reported to Sentry; client errors are not.
func Error(c *gin.Context, err error) {
	kind := apperrors.KindOf(err)
	status := apperrors.HTTPStatus(kind)

	body := Response{StatusCode: status, Message: err.Error(), Error: &ErrorBody{Kind: kind}}
	if appErr, ok := asAppError(err); ok {
		body.Message = appErr.Message
		body.Error.Input = appErr.Input
	}

	if status >= http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.String("kind", string(kind)),
			zap.Error(err))
		if hub := sentrygin.GetHubFromContext(c); hub != nil {
			hub.WithScope(func(scope *sentry.Scope) {
				scope.SetTag("error.kind", string(kind))
				hub.CaptureException(err)
			})
		}
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, body)
}

// Unauthorized 401, outside the domain taxonomy
func Unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, Response{StatusCode: http.StatusUnauthorized, Message: message})
}

func asAppError(err error) (*apperrors.Error, bool) {
	var appErr *apperrors.Error
	ok := errors.As(err, &appErr)
	return appErr, ok
}
