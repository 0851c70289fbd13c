package apperror

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gitlab.com/dirk.krummacker/customer-dashboard/internal/logging"
	"gitlab.com/dirk.krummacker/customer-dashboard/pkg/model"
)

// DescribeFunc renders the request for the details field of an error body.
type DescribeFunc func(c *gin.Context) string

// DescribeURI renders "uri=/api/customer/7".
func DescribeURI(c *gin.Context) string {
	return "uri=" + c.Request.URL.Path
}

// DescribeURIAndClient renders "uri=/dashboard/customer/7;client=10.0.0.1".
func DescribeURIAndClient(c *gin.Context) string {
	return fmt.Sprintf("uri=%s;client=%s", c.Request.URL.Path, c.ClientIP())
}

// now is replaced in tests.
var now = time.Now

// Handler translates the last error recorded by a handler into a status code and an error body.
// Handlers record errors with c.Error and return without writing a response.
func Handler(describe DescribeFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		Respond(c, c.Errors.Last().Err, describe)
	}
}

// Recovery turns a panic into an internal error answered with the usual error body.
func Recovery(describe DescribeFunc) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		Respond(c, NewInternal(fmt.Errorf("%v", recovered)), describe)
	})
}

// Respond writes the error body for err and aborts the chain.
func Respond(c *gin.Context, err error, describe DescribeFunc) {
	status := StatusOf(err)
	logger := logging.NewPackageLogger("apperror")
	var event *zerolog.Event
	if IsKind(err, Internal) || IsKind(err, UpstreamServer) {
		event = logger.Error()
	} else {
		event = logger.Info()
	}
	event.Err(err).
		Int("status", status).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Str(logging.REQUEST_ID, c.GetString(logging.REQUEST_ID)).
		Msg("request failed")

	c.AbortWithStatusJSON(status, model.ErrorDTO{
		Timestamp: now(),
		Message:   err.Error(),
		Details:   describe(c),
	})
}
