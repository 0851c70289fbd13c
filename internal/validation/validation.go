package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"gitlab.com/dirk.krummacker/customer-dashboard/internal/apperror"
	"gitlab.com/dirk.krummacker/customer-dashboard/internal/model"
)

// MaxNameLength is the longest first or last name we accept, counted in characters.
const MaxNameLength = 150

// Violations collects the messages of all failed checks of one request.
type Violations []string

// Err returns a BadRequest error carrying all violations, or nil if there are none.
func (v Violations) Err() error {
	if len(v) == 0 {
		return nil
	}
	return apperror.NewBadRequest(v...)
}

// ValidateID checks an id path parameter.
func ValidateID(name string, id int64) Violations {
	if id < 1 {
		return Violations{fmt.Sprintf("%s: must be greater than or equal to 1", name)}
	}
	return nil
}

// ValidateCustomer checks the fields of a customer sent by a client. The middle name is
// optional and not checked.
func ValidateCustomer(dto model.CustomerDTO) Violations {
	var v Violations
	v = append(v, requiredName("First Name", dto.FirstName)...)
	v = append(v, requiredName("Last Name", dto.LastName)...)
	return v
}

func requiredName(label string, value string) Violations {
	var v Violations
	if strings.TrimSpace(value) == "" {
		v = append(v, label+" must not be blank")
	}
	if utf8.RuneCountInString(value) > MaxNameLength {
		v = append(v, fmt.Sprintf("%s must not exceed %d characters", label, MaxNameLength))
	}
	return v
}
