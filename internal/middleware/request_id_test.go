package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yassen717/ModBlog/internal/middleware"
)

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		clientID string
		reuse    bool
	}{
		{"generates when absent", "", false},
		{"reuses client id", "client-provided-id-12345", true},
		{"rejects ids with spaces", "two words", false},
		{"rejects control characters", "id\x01", false},
		{"rejects overlong ids", strings.Repeat("a", 129), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(middleware.RequestID())

			var fromGin, fromCtx string
			router.GET("/test", func(c *gin.Context) {
				fromGin = middleware.GetRequestID(c)
				fromCtx = middleware.RequestIDFromContext(c.Request.Context())
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.clientID != "" {
				req.Header.Set(middleware.RequestIDHeader, tt.clientID)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			header := w.Header().Get(middleware.RequestIDHeader)
			if tt.reuse {
				assert.Equal(t, tt.clientID, header)
			} else {
				assert.Len(t, header, 36)
			}
			assert.Equal(t, header, fromGin)
			assert.Equal(t, header, fromCtx)
		})
	}
}

func TestRequestID_DifferentPerRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.RequestID())
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
		seen[w.Header().Get(middleware.RequestIDHeader)] = true
	}
	assert.Len(t, seen, 3)
}

func TestGetRequestID_Unset(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Empty(t, middleware.GetRequestID(c))

	c.Set(middleware.RequestIDKey, 12345)
	assert.Empty(t, middleware.GetRequestID(c), "non-string values are ignored")
}
