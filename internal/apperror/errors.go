package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies an error for the boundary handler.
type Kind int

const (
	Internal Kind = iota
	BadRequest
	NotFound
	UpstreamClient
	UpstreamServer
)

// Error is a classified failure. The message is what the client sees.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewBadRequest joins the violation messages into one client error.
func NewBadRequest(violations ...string) error {
	return &Error{Kind: BadRequest, Message: strings.Join(violations, "; ")}
}

// NewCustomerNotFound reports that no customer with the id exists.
func NewCustomerNotFound(id int64) error {
	return &Error{Kind: NotFound, Message: fmt.Sprintf("Customer not found with id: %d", id)}
}

// NewInternal wraps an unexpected failure.
func NewInternal(err error) error {
	return &Error{Kind: Internal, Err: err}
}

// UpstreamError is a non-2xx answer of a service we called. The status code is passed on to our
// own caller unchanged.
type UpstreamError struct {
	StatusCode int
	Method     string
	URL        string
	// Message is the message of the upstream error body, if it had one.
	Message string
}

func (e *UpstreamError) Error() string {
	text := fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	if e.Message != "" {
		text += ": " + e.Message
	}
	return text
}

// Kind tells whether the upstream rejected the request or failed itself.
func (e *UpstreamError) Kind() Kind {
	if e.StatusCode >= 400 && e.StatusCode < 500 {
		return UpstreamClient
	}
	return UpstreamServer
}

// StatusOf maps an error to the HTTP status the boundary handler answers with.
func StatusOf(err error) int {
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		return upstream.StatusCode
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		switch appErr.Kind {
		case BadRequest:
			return http.StatusBadRequest
		case NotFound:
			return http.StatusNotFound
		}
	}
	return http.StatusInternalServerError
}

// IsKind reports whether err carries the given classification.
func IsKind(err error, kind Kind) bool {
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		return upstream.Kind() == kind
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return kind == Internal
}
