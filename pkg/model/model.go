package model

import "time"

// CustomerDTO is the customer shape served by the dashboard. It mirrors the transfer object of
// the customer service field by field but is its own type, so that clients of the dashboard do
// not depend on the internals of the customer service.
type CustomerDTO struct {
	ID         *int64  `json:"id"`
	FirstName  string  `json:"firstName"`
	MiddleName *string `json:"middleName"`
	LastName   string  `json:"lastName"`
}

// ErrorDTO is the body of every failed response of both services.
type ErrorDTO struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
	Details   string    `json:"details"`
}
