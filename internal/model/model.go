package model

import "time"

// Customer is a row of the CUSTOMER table. The audit fields are maintained by the repository and
// are never taken from a request.
type Customer struct {
	ID               int64      `db:"id"`
	FirstName        string     `db:"first_name"`
	MiddleName       *string    `db:"middle_name"`
	LastName         string     `db:"last_name"`
	CreatedDatetime  time.Time  `db:"created_datetime"`
	CreatedBy        string     `db:"created_by"`
	ModifiedDatetime *time.Time `db:"modified_datetime"`
	ModifiedBy       *string    `db:"modified_by"`
}

// CustomerDTO is the data structure exchanged with the clients of the customer service.
// The id is absent on create requests.
type CustomerDTO struct {
	ID         *int64  `json:"id"`
	FirstName  string  `json:"firstName"`
	MiddleName *string `json:"middleName"`
	LastName   string  `json:"lastName"`
}

// ToDTO copies the client visible fields of a customer into a transfer object.
func ToDTO(customer Customer) CustomerDTO {
	id := customer.ID
	return CustomerDTO{
		ID:         &id,
		FirstName:  customer.FirstName,
		MiddleName: copyString(customer.MiddleName),
		LastName:   customer.LastName,
	}
}

// FromDTO builds a customer from a transfer object. A missing id maps to zero, which the
// repository treats as "not persisted yet".
func FromDTO(dto CustomerDTO) Customer {
	var id int64
	if dto.ID != nil {
		id = *dto.ID
	}
	return Customer{
		ID:         id,
		FirstName:  dto.FirstName,
		MiddleName: copyString(dto.MiddleName),
		LastName:   dto.LastName,
	}
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
