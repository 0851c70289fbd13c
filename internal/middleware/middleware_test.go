package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/dirk.krummacker/customer-dashboard/internal/logging"
)

func newRouter(logger zerolog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(RequestID(), RequestLogger(logger))
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(logging.REQUEST_ID))
	})
	return router
}

// TestRequestIDGenerated expects a fresh uuid when the client did not send one.
func TestRequestIDGenerated(t *testing.T) {
	recorder := httptest.NewRecorder()
	request, _ := http.NewRequest("GET", "/ping", nil)
	newRouter(zerolog.Nop()).ServeHTTP(recorder, request)

	id := recorder.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
	assert.Equal(t, id, recorder.Body.String())
}

// TestRequestIDPropagated expects the id of the client to be kept.
func TestRequestIDPropagated(t *testing.T) {
	recorder := httptest.NewRecorder()
	request, _ := http.NewRequest("GET", "/ping", nil)
	request.Header.Set(RequestIDHeader, "abc-123")
	newRouter(zerolog.Nop()).ServeHTTP(recorder, request)

	assert.Equal(t, "abc-123", recorder.Header().Get(RequestIDHeader))
	assert.Equal(t, "abc-123", recorder.Body.String())
}

// TestRequestLogger expects one structured line with method, path and status.
func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	recorder := httptest.NewRecorder()
	request, _ := http.NewRequest("GET", "/ping", nil)
	request.Header.Set(RequestIDHeader, "abc-123")
	newRouter(zerolog.New(&buf)).ServeHTTP(recorder, request)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/ping", entry["path"])
	assert.Equal(t, 200.0, entry["status"])
	assert.Equal(t, "abc-123", entry[logging.REQUEST_ID])
}

// TestRequestIDInContext expects the id to reach the request context used for outbound calls.
func TestRequestIDInContext(t *testing.T) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(RequestID())
	router.GET("/ctx", func(c *gin.Context) {
		c.String(http.StatusOK, RequestIDFrom(c.Request.Context()))
	})

	recorder := httptest.NewRecorder()
	request, _ := http.NewRequest("GET", "/ctx", nil)
	request.Header.Set(RequestIDHeader, "from-client")
	router.ServeHTTP(recorder, request)
	assert.Equal(t, "from-client", recorder.Body.String())
}
