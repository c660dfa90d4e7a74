package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ChaitanyaDhiman/ResumeForge/internal/pkg/apperr"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/pkg/logger"
)

// 错误码定义
const (
	CodeSuccess          = 0
	CodeParamError       = 1000
	CodeAuthFailed       = 1001
	CodePermissionDenied = 1002
	CodeResourceNotFound = 1003
	CodeQuotaExceeded    = 1004
	CodeDuplicateAction  = 1005
	CodeTooManyRequests  = 1006
	CodeUpstreamError    = 5002
	CodeServerError      = 5000
)

// 错误码对应的默认消息
var codeMessages = map[int]string{
	CodeSuccess:          "success",
	CodeParamError:       "Invalid request",
	CodeAuthFailed:       "Unauthorized",
	CodePermissionDenied: "Forbidden",
	CodeResourceNotFound: "Not found",
	CodeQuotaExceeded:    "Usage limit reached",
	CodeDuplicateAction:  "Already exists",
	CodeTooManyRequests:  "Too many requests",
	CodeUpstreamError:    "Upstream service unavailable",
	CodeServerError:      "Internal server error",
}

// 错误码对应的 HTTP 状态码
var codeStatus = map[int]int{
	CodeSuccess:          http.StatusOK,
	CodeParamError:       http.StatusBadRequest,
	CodeAuthFailed:       http.StatusUnauthorized,
	CodePermissionDenied: http.StatusForbidden,
	CodeResourceNotFound: http.StatusNotFound,
	CodeQuotaExceeded:    http.StatusPaymentRequired,
	CodeDuplicateAction:  http.StatusConflict,
	CodeTooManyRequests:  http.StatusTooManyRequests,
	CodeUpstreamError:    http.StatusBadGateway,
	CodeServerError:      http.StatusInternalServerError,
}

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    CodeSuccess,
		Message: "success",
		Data:    data,
	})
}

// SuccessWithMessage 带自定义消息的成功响应
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    CodeSuccess,
		Message: message,
		Data:    data,
	})
}

// Created 资源创建成功
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    CodeSuccess,
		Message: message,
		Data:    data,
	})
}

// Error 错误响应，HTTP 状态码由业务码决定
func Error(c *gin.Context, code int, message string) {
	ErrorWithData(c, code, message, nil)
}

// ErrorWithData 携带附加数据的错误响应
func ErrorWithData(c *gin.Context, code int, message string, data interface{}) {
	if message == "" {
		message = codeMessages[code]
	}
	status, ok := codeStatus[code]
	if !ok {
		status = http.StatusInternalServerError
	}
	c.AbortWithStatusJSON(status, Response{
		Code:    code,
		Message: message,
		Data:    data,
	})
}

// ParamError 参数错误
func ParamError(c *gin.Context, message string) {
	Error(c, CodeParamError, message)
}

// FieldError 字段校验失败
func FieldError(c *gin.Context, field, message string) {
	if field == "" {
		Error(c, CodeParamError, message)
		return
	}
	ErrorWithData(c, CodeParamError, message, gin.H{"field": field})
}

// AuthError 认证失败
func AuthError(c *gin.Context, message string) {
	Error(c, CodeAuthFailed, message)
}

// PermissionError 权限不足
func PermissionError(c *gin.Context, message string) {
	Error(c, CodePermissionDenied, message)
}

// NotFoundError 资源不存在
func NotFoundError(c *gin.Context, message string) {
	Error(c, CodeResourceNotFound, message)
}

// QuotaError 配额不足，remaining 固定为 0
func QuotaError(c *gin.Context, message string) {
	ErrorWithData(c, CodeQuotaExceeded, message, gin.H{"remaining": 0})
}

// DuplicateError 重复操作
func DuplicateError(c *gin.Context, message string) {
	Error(c, CodeDuplicateAction, message)
}

// TooManyRequests 触发限流
func TooManyRequests(c *gin.Context, message string, resetAt time.Time) {
	var data interface{}
	if !resetAt.IsZero() {
		data = gin.H{"reset_time": resetAt.UTC().Format(time.RFC3339)}
	}
	ErrorWithData(c, CodeTooManyRequests, message, data)
}

// UpstreamError 下游服务失败
func UpstreamError(c *gin.Context, message string) {
	Error(c, CodeUpstreamError, message)
}

// ServerError 服务器错误
func ServerError(c *gin.Context, message string) {
	Error(c, CodeServerError, message)
}

// FromError 将业务错误翻译为响应，内部细节只写日志
func FromError(c *gin.Context, err error) {
	e, ok := apperr.As(err)
	if !ok {
		logger.FromContext(c.Request.Context()).Error().Err(err).Msg("unhandled error")
		ServerError(c, "")
		return
	}

	switch e.Kind {
	case apperr.KindAuthentication:
		AuthError(c, e.Message)
	case apperr.KindAuthorization:
		PermissionError(c, e.Message)
	case apperr.KindRateLimit:
		TooManyRequests(c, e.Message, e.ResetAt)
	case apperr.KindQuotaExceeded:
		QuotaError(c, e.Message)
	case apperr.KindValidation:
		FieldError(c, e.Field, e.Message)
	case apperr.KindConflict:
		DuplicateError(c, e.Message)
	case apperr.KindUpstream:
		logger.FromContext(c.Request.Context()).Error().Err(e.Err).Msg(e.Message)
		UpstreamError(c, "")
	case apperr.KindPersistence:
		logger.FromContext(c.Request.Context()).Error().Err(e.Err).Msg("persistence failure")
		ServerError(c, "")
	default:
		logger.FromContext(c.Request.Context()).Error().Err(err).Msg("unhandled error")
		ServerError(c, "")
	}
}
