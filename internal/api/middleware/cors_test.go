package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/ChaitanyaDhiman/ResumeForge/config"
)

func corsRouter(origins []string) *gin.Engine {
	router := gin.New()
	router.Use(CORS(config.CORSConfig{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}))
	router.POST("/api/v1/optimize", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestCORS_Origins(t *testing.T) {
	tests := []struct {
		name        string
		allowed     []string
		origin      string
		expectAllow string
	}{
		{"listed origin echoed", []string{"https://resumeforge.app"}, "https://resumeforge.app", "https://resumeforge.app"},
		{"unlisted origin dropped", []string{"https://resumeforge.app"}, "https://evil.example", ""},
		{"wildcard echoes caller", []string{"*"}, "https://preview.resumeforge.app", "https://preview.resumeforge.app"},
		{"wildcard without origin header", []string{"*"}, "", ""},
		{"empty allow list", nil, "https://resumeforge.app", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/v1/optimize", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			w := httptest.NewRecorder()
			corsRouter(tt.allowed).ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.expectAllow, w.Header().Get("Access-Control-Allow-Origin"))
			if tt.expectAllow != "" {
				assert.Equal(t, "Origin", w.Header().Get("Vary"))
			} else {
				assert.Empty(t, w.Header().Get("Vary"))
			}
		})
	}
}

func TestCORS_ExposesRateLimitHeaders(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/v1/optimize", nil)
	req.Header.Set("Origin", "https://resumeforge.app")
	w := httptest.NewRecorder()
	corsRouter([]string{"https://resumeforge.app"}).ServeHTTP(w, req)

	assert.Equal(t, "X-RateLimit-Limit, X-RateLimit-Remaining, X-RateLimit-Reset",
		w.Header().Get("Access-Control-Expose-Headers"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORS_PreflightShortCircuits(t *testing.T) {
	handlerRan := false
	router := gin.New()
	router.Use(CORS(config.CORSConfig{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}))
	router.OPTIONS("/api/v1/optimize", func(c *gin.Context) {
		handlerRan = true
	})

	req := httptest.NewRequest("OPTIONS", "/api/v1/optimize", nil)
	req.Header.Set("Origin", "https://resumeforge.app")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.False(t, handlerRan)
	assert.Equal(t, "GET, POST", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type, Authorization", w.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "86400", w.Header().Get("Access-Control-Max-Age"))
}
