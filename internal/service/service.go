package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/dirk.krummacker/customer-dashboard/internal/logging"
	"gitlab.com/dirk.krummacker/customer-dashboard/internal/model"
	"gitlab.com/dirk.krummacker/customer-dashboard/internal/repository"
)

// CustomerService holds the business operations on customers. It assumes that its input has
// already been validated.
type CustomerService struct {
	repo   repository.CustomerRepository
	logger zerolog.Logger
}

// NewCustomerService returns a service on top of repo.
func NewCustomerService(repo repository.CustomerRepository) *CustomerService {
	return &CustomerService{
		repo:   repo,
		logger: logging.NewPackageLogger("service"),
	}
}

// FindCustomers returns all customers. The result is empty, never nil, if there are none.
func (s *CustomerService) FindCustomers(ctx context.Context) ([]model.CustomerDTO, error) {
	s.logger.Info().Msg("fetching all customers")
	customers, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]model.CustomerDTO, 0, len(customers))
	for _, customer := range customers {
		dtos = append(dtos, model.ToDTO(customer))
	}
	return dtos, nil
}

// FindCustomerByID returns a slice with the customer, or an empty slice if the id is unknown.
func (s *CustomerService) FindCustomerByID(ctx context.Context, id int64) ([]model.CustomerDTO, error) {
	s.logger.Info().Int64("id", id).Msg("fetching customer")
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return []model.CustomerDTO{}, nil
	}
	return []model.CustomerDTO{model.ToDTO(*customer)}, nil
}

// CountCustomerWithID returns 1 if a customer with the id exists and 0 otherwise.
func (s *CustomerService) CountCustomerWithID(ctx context.Context, id int64) (int, error) {
	return s.repo.CountWithID(ctx, id)
}

// SaveCustomer creates the customer if the DTO has no id and replaces the stored customer
// otherwise. Leading and trailing whitespace is removed from all names first.
func (s *CustomerService) SaveCustomer(ctx context.Context, dto model.CustomerDTO) (model.CustomerDTO, error) {
	event := s.logger.Info()
	if dto.ID != nil {
		event = event.Int64("id", *dto.ID)
	}
	event.Msg("saving customer")

	customer := model.FromDTO(trimNames(dto))
	saved, err := s.repo.Save(ctx, &customer)
	if err != nil {
		return model.CustomerDTO{}, err
	}
	return model.ToDTO(*saved), nil
}

func trimNames(dto model.CustomerDTO) model.CustomerDTO {
	dto.FirstName = strings.TrimSpace(dto.FirstName)
	dto.LastName = strings.TrimSpace(dto.LastName)
	if dto.MiddleName != nil {
		middle := strings.TrimSpace(*dto.MiddleName)
		dto.MiddleName = &middle
	}
	return dto
}
