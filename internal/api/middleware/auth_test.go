package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChaitanyaDhiman/ResumeForge/internal/model"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/pkg/jwt"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testJWTSecret = "test-secret-key-for-middleware"

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	return resp
}

func testToken(t *testing.T, id jwt.Identity, secret string, hours int) string {
	t.Helper()
	token, err := jwt.GenerateToken(id, secret, hours)
	require.NoError(t, err)
	return token
}

func verifiedIdentity(userID int64) jwt.Identity {
	return jwt.Identity{
		UserID:        userID,
		Email:         "user@example.com",
		Role:          "FREE",
		EmailVerified: true,
	}
}

func TestAuth_Success(t *testing.T) {
	router := gin.New()
	router.Use(Auth(testJWTSecret))
	router.GET("/test", func(c *gin.Context) {
		userID, ok := GetUserID(c)
		assert.True(t, ok)
		assert.Equal(t, int64(123), userID)

		claims, ok := GetClaims(c)
		assert.True(t, ok)
		assert.Equal(t, "user@example.com", claims.Email)
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+testToken(t, verifiedIdentity(123), testJWTSecret, 24))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuth_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		header func(t *testing.T) string
	}{
		{"missing header", func(t *testing.T) string { return "" }},
		{"no bearer prefix", func(t *testing.T) string { return "some-token-without-bearer" }},
		{"invalid token", func(t *testing.T) string { return "Bearer invalid-token" }},
		{"wrong secret", func(t *testing.T) string {
			return "Bearer " + testToken(t, verifiedIdentity(123), "different-secret", 24)
		}},
		{"expired token", func(t *testing.T) string {
			return "Bearer " + testToken(t, verifiedIdentity(123), testJWTSecret, -1)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(Auth(testJWTSecret))
			router.GET("/test", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{})
			})

			req := httptest.NewRequest("GET", "/test", nil)
			if h := tt.header(t); h != "" {
				req.Header.Set("Authorization", h)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			resp := parseResponse(t, w)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, response.CodeAuthFailed, resp.Code)
		})
	}
}

func mustToken(id jwt.Identity) string {
	token, err := jwt.GenerateToken(id, testJWTSecret, 24)
	if err != nil {
		panic(err)
	}
	return token
}

func TestRequireVerified(t *testing.T) {
	unverified := verifiedIdentity(1)
	unverified.EmailVerified = false

	tests := []struct {
		name     string
		identity jwt.Identity
		status   int
		code     int
	}{
		{"verified", verifiedIdentity(1), http.StatusOK, response.CodeSuccess},
		{"unverified", unverified, http.StatusForbidden, response.CodePermissionDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(Auth(testJWTSecret), RequireVerified())
			router.GET("/test", func(c *gin.Context) {
				response.Success(c, nil)
			})

			req := httptest.NewRequest("GET", "/test", nil)
			req.Header.Set("Authorization", "Bearer "+mustToken(tt.identity))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, parseResponse(t, w).Code)
		})
	}
}

func TestRequireVerified_WithoutAuth(t *testing.T) {
	router := gin.New()
	router.Use(RequireVerified())
	router.GET("/test", func(c *gin.Context) {
		response.Success(c, nil)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/test", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	admin := verifiedIdentity(1)
	admin.Role = "ADMIN"

	tests := []struct {
		name     string
		identity jwt.Identity
		status   int
	}{
		{"admin allowed", admin, http.StatusOK},
		{"free denied", verifiedIdentity(2), http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(Auth(testJWTSecret), RequireRole(model.RoleAdmin))
			router.GET("/test", func(c *gin.Context) {
				response.Success(c, nil)
			})

			req := httptest.NewRequest("GET", "/test", nil)
			req.Header.Set("Authorization", "Bearer "+mustToken(tt.identity))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestGetUserID_NotSet(t *testing.T) {
	router := gin.New()
	router.GET("/test", func(c *gin.Context) {
		userID, ok := GetUserID(c)
		assert.False(t, ok)
		assert.Equal(t, int64(0), userID)

		_, ok = GetClaims(c)
		assert.False(t, ok)
		c.JSON(http.StatusOK, gin.H{})
	})

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetUserID_WrongType(t *testing.T) {
	router := gin.New()
	router.GET("/test", func(c *gin.Context) {
		c.Set(UserIDKey, "not-an-int64") // Wrong type
		userID, ok := GetUserID(c)
		assert.False(t, ok)
		assert.Equal(t, int64(0), userID)
		c.JSON(http.StatusOK, gin.H{})
	})

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
