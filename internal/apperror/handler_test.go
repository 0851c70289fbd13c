package apperror

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/dirk.krummacker/customer-dashboard/internal/logging"
	"gitlab.com/dirk.krummacker/customer-dashboard/pkg/model"
)

// runWithError serves a single request against a router whose only handler fails with err.
func runWithError(t *testing.T, describe DescribeFunc, err error) (*httptest.ResponseRecorder, model.ErrorDTO) {
	gin.SetMode(gin.ReleaseMode)
	fixed := time.Date(2024, time.March, 2, 10, 0, 0, 0, time.UTC)
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = time.Now })

	router := gin.New()
	router.Use(Recovery(describe), Handler(describe))
	router.GET("/api/customer/:id", func(c *gin.Context) {
		if err == nil {
			panic("boom")
		}
		c.Error(err)
	})

	recorder := httptest.NewRecorder()
	request, _ := http.NewRequest("GET", "/api/customer/999", nil)
	router.ServeHTTP(recorder, request)

	var body model.ErrorDTO
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, fixed, body.Timestamp)
	return recorder, body
}

// TestHandlerNotFound expects a 404 with the message of the error.
func TestHandlerNotFound(t *testing.T) {
	recorder, body := runWithError(t, DescribeURI, NewCustomerNotFound(999))
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "Customer not found with id: 999", body.Message)
	assert.Equal(t, "uri=/api/customer/999", body.Details)
}

// TestHandlerBadRequest expects a 400 with all violation messages.
func TestHandlerBadRequest(t *testing.T) {
	recorder, body := runWithError(t, DescribeURI,
		NewBadRequest("First Name must not be blank", "Last Name must not be blank"))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "First Name must not be blank; Last Name must not be blank", body.Message)
}

// TestHandlerUpstream expects the upstream status code to be passed on unchanged.
func TestHandlerUpstream(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusNotFound, http.StatusConflict, http.StatusServiceUnavailable} {
		recorder, body := runWithError(t, DescribeURIAndClient, &UpstreamError{StatusCode: status})
		assert.Equal(t, status, recorder.Code)
		assert.Contains(t, body.Message, http.StatusText(status))
		assert.Contains(t, body.Details, "uri=/api/customer/999;client=")
	}
}

// TestHandlerUnknownError expects a 500 for errors without classification.
func TestHandlerUnknownError(t *testing.T) {
	recorder, body := runWithError(t, DescribeURI, errors.New("connection reset"))
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Equal(t, "connection reset", body.Message)
}

// TestRecovery expects a panic to be answered with a 500 error body.
func TestRecovery(t *testing.T) {
	recorder, body := runWithError(t, DescribeURI, nil)
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Equal(t, "boom", body.Message)
}

func TestIsKind(t *testing.T) {
	assert.True(t, IsKind(NewCustomerNotFound(1), NotFound))
	assert.True(t, IsKind(NewBadRequest("x"), BadRequest))
	assert.True(t, IsKind(&UpstreamError{StatusCode: 404}, UpstreamClient))
	assert.True(t, IsKind(&UpstreamError{StatusCode: 502}, UpstreamServer))
	assert.True(t, IsKind(errors.New("plain"), Internal))
	assert.False(t, IsKind(errors.New("plain"), NotFound))
}

func TestUpstreamErrorMessage(t *testing.T) {
	err := &UpstreamError{StatusCode: 404, Message: "Customer not found with id: 5"}
	assert.Equal(t, "404 Not Found: Customer not found with id: 5", err.Error())
}

// TestRespondLogLevel expects failures of our own or of the upstream service at error level and
// rejected requests at info level.
func TestRespondLogLevel(t *testing.T) {
	cases := []struct {
		err   error
		level string
	}{
		{NewCustomerNotFound(1), `"level":"info"`},
		{NewBadRequest("id: must be a number"), `"level":"info"`},
		{&UpstreamError{StatusCode: http.StatusConflict}, `"level":"info"`},
		{&UpstreamError{StatusCode: http.StatusBadGateway}, `"level":"error"`},
		{NewInternal(errors.New("disk full")), `"level":"error"`},
		{errors.New("unclassified"), `"level":"error"`},
	}
	t.Cleanup(func() { logging.Setup("info", nil) })
	for _, tc := range cases {
		var out bytes.Buffer
		logging.Setup("info", &out)
		runWithError(t, DescribeURI, tc.err)
		assert.Contains(t, out.String(), tc.level, tc.err.Error())
	}
}
