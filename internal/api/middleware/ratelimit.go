package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ChaitanyaDhiman/ResumeForge/internal/pkg/apperr"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/pkg/logger"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/pkg/ratelimit"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/pkg/response"
)

const (
	HeaderRateLimitLimit     = "X-RateLimit-Limit"
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"
	HeaderRateLimitReset     = "X-RateLimit-Reset"
)

var rateLimitHeaders = []string{HeaderRateLimitLimit, HeaderRateLimitRemaining, HeaderRateLimitReset}

// KeyFunc 提取限流标识，返回空字符串表示不限流
type KeyFunc func(c *gin.Context) string

// ByClientIP 按客户端 IP 限流
func ByClientIP(prefix string) KeyFunc {
	return func(c *gin.Context) string {
		return prefix + ":" + c.ClientIP()
	}
}

// ByUserEmail 按会话中的邮箱限流，须放在 Auth 之后
func ByUserEmail(prefix string) KeyFunc {
	return func(c *gin.Context) string {
		claims, ok := GetClaims(c)
		if !ok {
			return ""
		}
		return prefix + ":" + claims.Email
	}
}

// RateLimit 固定窗口限流中间件
func RateLimit(limiter *ratelimit.Limiter, cfg ratelimit.Config, key KeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := key(c)
		if id == "" {
			c.Next()
			return
		}

		if !Allow(c, limiter, id, cfg) {
			return
		}
		c.Next()
	}
}

// Allow 执行一次限流检查并写入限流响应头；被拒绝时已写入 429 响应。
// 存储不可用时放行并记录日志。
func Allow(c *gin.Context, limiter *ratelimit.Limiter, id string, cfg ratelimit.Config) bool {
	result, err := limiter.Check(c.Request.Context(), id, cfg)
	if err != nil {
		logger.FromContext(c.Request.Context()).Warn().Err(err).Str("key", id).Msg("rate limiter unavailable, allowing request")
		return true
	}

	SetRateLimitHeaders(c, result)
	if !result.Allowed {
		response.FromError(c, apperr.RateLimited("Too many requests. Please try again later.", result.ResetAt))
		return false
	}
	return true
}

// SetRateLimitHeaders 写入 X-RateLimit-* 响应头，重置时间为 ISO-8601
func SetRateLimitHeaders(c *gin.Context, result ratelimit.Result) {
	c.Header(HeaderRateLimitLimit, strconv.Itoa(result.Limit))
	c.Header(HeaderRateLimitRemaining, strconv.Itoa(result.Remaining))
	c.Header(HeaderRateLimitReset, result.ResetAt.UTC().Format(time.RFC3339))
}
