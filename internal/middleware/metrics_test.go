package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/Yassen717/ModBlog/internal/metrics"
)

func serve(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("labels by route template", func(t *testing.T) {
		router := gin.New()
		router.Use(Metrics())
		router.GET("/api/posts/:id", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"id": c.Param("id")})
		})

		counter := metrics.HTTPRequestsTotal.WithLabelValues("GET", "/api/posts/:id", "200")
		initial := testutil.ToFloat64(counter)
		initialInFlight := testutil.ToFloat64(metrics.HTTPRequestsInFlight)

		serve(router, http.MethodGet, "/api/posts/1")
		serve(router, http.MethodGet, "/api/posts/2")

		assert.Equal(t, initial+2, testutil.ToFloat64(counter))
		assert.Equal(t, initialInFlight, testutil.ToFloat64(metrics.HTTPRequestsInFlight))
	})

	t.Run("records status codes", func(t *testing.T) {
		router := gin.New()
		router.Use(Metrics())
		router.DELETE("/api/posts/:id", func(c *gin.Context) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		})

		counter := metrics.HTTPRequestsTotal.WithLabelValues("DELETE", "/api/posts/:id", "404")
		initial := testutil.ToFloat64(counter)

		w := serve(router, http.MethodDelete, "/api/posts/missing")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, initial+1, testutil.ToFloat64(counter))
	})

	t.Run("unmatched routes share one label", func(t *testing.T) {
		router := gin.New()
		router.Use(Metrics())

		counter := metrics.HTTPRequestsTotal.WithLabelValues("GET", "unmatched", "404")
		initial := testutil.ToFloat64(counter)

		serve(router, http.MethodGet, "/wp-login.php")
		serve(router, http.MethodGet, "/.env")

		assert.Equal(t, initial+2, testutil.ToFloat64(counter))
	})

	t.Run("skips listed routes", func(t *testing.T) {
		router := gin.New()
		router.Use(Metrics("/metrics", "/live"))
		router.GET("/live", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "alive"})
		})

		counter := metrics.HTTPRequestsTotal.WithLabelValues("GET", "/live", "200")
		initial := testutil.ToFloat64(counter)

		w := serve(router, http.MethodGet, "/live")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, initial, testutil.ToFloat64(counter))
	})
}
