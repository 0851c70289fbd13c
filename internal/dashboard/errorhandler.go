package dashboard

import (
	"io"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"
	"gitlab.com/dirk.krummacker/customer-dashboard/internal/apperror"
	"gitlab.com/dirk.krummacker/customer-dashboard/pkg/model"
)

// ResponseErrorHandler decides which upstream responses are failures and turns them into
// errors before the calling code sees the response.
type ResponseErrorHandler interface {
	HasError(resp *http.Response) bool
	HandleError(method string, url string, resp *http.Response) error
}

// StatusErrorHandler treats every 4xx and 5xx response as a failure and reports it as an
// *apperror.UpstreamError with the upstream status code.
type StatusErrorHandler struct {
	logger zerolog.Logger
}

// NewStatusErrorHandler returns the default handler.
func NewStatusErrorHandler(logger zerolog.Logger) *StatusErrorHandler {
	return &StatusErrorHandler{logger: logger}
}

func (h *StatusErrorHandler) HasError(resp *http.Response) bool {
	return resp.StatusCode >= 400 && resp.StatusCode < 600
}

func (h *StatusErrorHandler) HandleError(method string, url string, resp *http.Response) error {
	upstreamErr := &apperror.UpstreamError{
		StatusCode: resp.StatusCode,
		Method:     method,
		URL:        url,
	}
	// The error body of the customer service is optional information, a body that cannot be
	// read or parsed still yields the status code.
	if data, err := io.ReadAll(resp.Body); err == nil && len(data) > 0 {
		var body model.ErrorDTO
		if sonic.Unmarshal(data, &body) == nil {
			upstreamErr.Message = body.Message
		}
	}
	h.logger.Error().
		Str("url", url).
		Str("method", method).
		Int("status", resp.StatusCode).
		Str("upstream_message", upstreamErr.Message).
		Msg("customer service answered with an error")
	return upstreamErr
}
