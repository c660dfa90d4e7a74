package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ChaitanyaDhiman/ResumeForge/internal/model"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/pkg/jwt"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/pkg/response"
)

const (
	UserIDKey = "userID"
	ClaimsKey = "claims"
)

// Auth JWT 认证中间件
func Auth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.AuthError(c, "Authentication required")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			response.AuthError(c, "Invalid authorization header")
			c.Abort()
			return
		}

		claims, err := jwt.ParseToken(tokenString, jwtSecret)
		if err != nil {
			response.AuthError(c, "Session is invalid or has expired")
			c.Abort()
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// RequireVerified 要求邮箱已验证，依据 token 中的状态，不访问存储
func RequireVerified() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok {
			response.AuthError(c, "")
			c.Abort()
			return
		}
		if !claims.EmailVerified {
			response.PermissionError(c, "Please verify your email before continuing")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole 要求角色在给定列表中
func RequireRole(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok {
			response.AuthError(c, "")
			c.Abort()
			return
		}
		for _, role := range roles {
			if claims.Role == role.String() {
				c.Next()
				return
			}
		}
		response.PermissionError(c, "")
		c.Abort()
	}
}

// GetUserID 从上下文获取用户 ID
func GetUserID(c *gin.Context) (int64, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := userID.(int64)
	return id, ok
}

// GetClaims 从上下文获取会话声明
func GetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get(ClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	return claims, ok
}
