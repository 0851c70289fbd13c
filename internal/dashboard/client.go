package dashboard

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"
	"gitlab.com/dirk.krummacker/customer-dashboard/internal/apperror"
	"gitlab.com/dirk.krummacker/customer-dashboard/internal/logging"
	"gitlab.com/dirk.krummacker/customer-dashboard/internal/middleware"
	"gitlab.com/dirk.krummacker/customer-dashboard/pkg/model"
)

// UpstreamObserver is told about the outcome of every call to the customer service.
type UpstreamObserver interface {
	ObserveUpstream(operation string, outcome string)
}

type nopObserver struct{}

func (nopObserver) ObserveUpstream(string, string) {}

// outcomes of an upstream call
const (
	outcomeSuccess        = "success"
	outcomeClientError    = "client_error"
	outcomeServerError    = "server_error"
	outcomeTransportError = "transport_error"
)

// CustomerClient calls the REST API of the customer service. Every method issues exactly one
// request; nothing is retried.
type CustomerClient struct {
	baseURI      string
	httpClient   *http.Client
	errorHandler ResponseErrorHandler
	observer     UpstreamObserver
	logger       zerolog.Logger
}

// ClientOption customizes a CustomerClient.
type ClientOption func(*CustomerClient)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(cl *CustomerClient) {
		cl.httpClient = httpClient
	}
}

// WithErrorHandler replaces the StatusErrorHandler.
func WithErrorHandler(h ResponseErrorHandler) ClientOption {
	return func(cl *CustomerClient) {
		cl.errorHandler = h
	}
}

// WithObserver registers an observer for upstream calls.
func WithObserver(o UpstreamObserver) ClientOption {
	return func(cl *CustomerClient) {
		cl.observer = o
	}
}

// NewCustomerClient returns a client for the customer service whose customer endpoints live
// below baseURI, e.g. "http://customer:8080/api/customer".
func NewCustomerClient(baseURI string, opts ...ClientOption) *CustomerClient {
	logger := logging.NewPackageLogger("dashboard")
	cl := &CustomerClient{
		baseURI:      strings.TrimRight(baseURI, "/"),
		httpClient:   http.DefaultClient,
		errorHandler: NewStatusErrorHandler(logger),
		observer:     nopObserver{},
		logger:       logger,
	}
	for _, opt := range opts {
		opt(cl)
	}
	return cl
}

// FindCustomers fetches all customers.
func (cl *CustomerClient) FindCustomers(ctx context.Context) ([]model.CustomerDTO, error) {
	cl.logger.Info().Msg("fetching customers")
	var customers []model.CustomerDTO
	if err := cl.exchange(ctx, "find_all", http.MethodGet, "/all", nil, &customers); err != nil {
		return nil, err
	}
	if customers == nil {
		// a null body
		customers = []model.CustomerDTO{}
	}
	return customers, nil
}

// FindCustomerByID fetches the customer with the id. The customer service answers with a list
// of one element, or with 404.
func (cl *CustomerClient) FindCustomerByID(ctx context.Context, id int64) ([]model.CustomerDTO, error) {
	cl.logger.Info().Int64("id", id).Msg("fetching customer")
	var customers []model.CustomerDTO
	if err := cl.exchange(ctx, "find_by_id", http.MethodGet, "/"+strconv.FormatInt(id, 10), nil, &customers); err != nil {
		return nil, err
	}
	if customers == nil {
		// a null body
		customers = []model.CustomerDTO{}
	}
	return customers, nil
}

// SaveCustomer creates a customer.
func (cl *CustomerClient) SaveCustomer(ctx context.Context, dto model.CustomerDTO) (model.CustomerDTO, error) {
	cl.logCustomer(dto).Msg("creating new customer")
	var saved model.CustomerDTO
	if err := cl.exchange(ctx, "save", http.MethodPost, "/save", dto, &saved); err != nil {
		return model.CustomerDTO{}, err
	}
	return saved, nil
}

// UpdateCustomer replaces the customer identified by the id of dto.
func (cl *CustomerClient) UpdateCustomer(ctx context.Context, dto model.CustomerDTO) (model.CustomerDTO, error) {
	if dto.ID == nil {
		return model.CustomerDTO{}, apperror.NewBadRequest("id: must not be null")
	}
	cl.logCustomer(dto).Msg("updating customer")
	var saved model.CustomerDTO
	path := "/update/" + strconv.FormatInt(*dto.ID, 10)
	if err := cl.exchange(ctx, "update", http.MethodPut, path, dto, &saved); err != nil {
		return model.CustomerDTO{}, err
	}
	return saved, nil
}

func (cl *CustomerClient) logCustomer(dto model.CustomerDTO) *zerolog.Event {
	event := cl.logger.Info().
		Str("first_name", dto.FirstName).
		Str("last_name", dto.LastName)
	if dto.ID != nil {
		event = event.Int64("id", *dto.ID)
	}
	if dto.MiddleName != nil {
		event = event.Str("middle_name", *dto.MiddleName)
	}
	return event
}

// exchange performs one call. A failed response is handed to the error handler, a successful
// one is decoded into out.
func (cl *CustomerClient) exchange(ctx context.Context, operation string, method string, path string, in interface{}, out interface{}) error {
	url := cl.baseURI + path

	var body io.Reader
	if in != nil {
		data, err := sonic.Marshal(in)
		if err != nil {
			return apperror.NewInternal(fmt.Errorf("encode request: %w", err))
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return apperror.NewInternal(err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id := middleware.RequestIDFrom(ctx); id != "" {
		req.Header.Set(middleware.RequestIDHeader, id)
	}

	resp, err := cl.httpClient.Do(req)
	if err != nil {
		cl.observer.ObserveUpstream(operation, outcomeTransportError)
		return apperror.NewInternal(err)
	}
	defer resp.Body.Close()

	if cl.errorHandler.HasError(resp) {
		err := cl.errorHandler.HandleError(method, url, resp)
		if apperror.IsKind(err, apperror.UpstreamClient) {
			cl.observer.ObserveUpstream(operation, outcomeClientError)
		} else {
			cl.observer.ObserveUpstream(operation, outcomeServerError)
		}
		return err
	}
	cl.observer.ObserveUpstream(operation, outcomeSuccess)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("read response of %s %s: %w", method, url, err))
	}
	if err := sonic.Unmarshal(data, out); err != nil {
		return apperror.NewInternal(fmt.Errorf("decode response of %s %s: %w", method, url, err))
	}
	return nil
}
