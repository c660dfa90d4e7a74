package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ChaitanyaDhiman/ResumeForge/internal/pkg/logger"
)

const (
	RequestIDKey    = "requestID"
	HeaderRequestID = "X-Request-ID"
)

// RequestLogger 为每个请求生成 request id，并把带 request id 的 logger 写入 context
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}

		reqLog := log.With(map[string]interface{}{"request_id": requestID})
		c.Request = c.Request.WithContext(reqLog.WithContext(c.Request.Context()))
		c.Set(RequestIDKey, requestID)
		c.Header(HeaderRequestID, requestID)

		start := time.Now()
		c.Next()

		event := reqLog.Info()
		if c.Writer.Status() >= 500 {
			event = reqLog.Error()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("request")
	}
}
