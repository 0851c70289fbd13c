package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

// TestMiddleware expects requests to be counted per route template and status.
func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.ReleaseMode)
	m := New("customer")
	router := gin.New()
	router.Use(m.Middleware())
	router.GET("/api/customer/:id", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})

	for _, url := range []string{"/api/customer/1", "/api/customer/2", "/elsewhere"} {
		request, _ := http.NewRequest("GET", url, nil)
		router.ServeHTTP(httptest.NewRecorder(), request)
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/customer/:id", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "unmatched", "404")))
}

// TestHandler expects the upstream counter in the exposition.
func TestHandler(t *testing.T) {
	m := New("dashboard")
	m.ObserveUpstream("find_all", "success")

	recorder := httptest.NewRecorder()
	request, _ := http.NewRequest("GET", "/metrics", nil)
	m.Handler().ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(),
		`upstream_requests_total{operation="find_all",outcome="success",service="dashboard"} 1`)
}
