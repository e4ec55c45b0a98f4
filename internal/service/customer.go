package service

import (
	"context"

	"github.com/deppfellow/storefront/internal/model"
	"github.com/deppfellow/storefront/internal/server"
	"github.com/deppfellow/storefront/internal/validation"
)

// CustomerRepository is the customer storage used by CustomerService.
type CustomerRepository interface {
	ListCustomers(ctx context.Context) ([]model.Customer, error)
	GetCustomer(ctx context.Context, id int64) (*model.Customer, error)
	CreateCustomer(ctx context.Context, payload *model.CustomerPayload) (*model.Customer, error)
	UpdateCustomer(ctx context.Context, id int64, payload *model.CustomerPayload) (*model.Customer, error)
	DeleteCustomer(ctx context.Context, id int64) error
}

type CustomerService struct {
	server *server.Server
	repo   CustomerRepository
}

func NewCustomerService(s *server.Server, repo CustomerRepository) *CustomerService {
	return &CustomerService{server: s, repo: repo}
}

func (s *CustomerService) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	return s.repo.ListCustomers(ctx)
}

func (s *CustomerService) GetCustomer(ctx context.Context, id int64) (*model.Customer, error) {
	return s.repo.GetCustomer(ctx, id)
}

func (s *CustomerService) CreateCustomer(ctx context.Context, payload *model.CustomerPayload) (*model.Customer, error) {
	return s.repo.CreateCustomer(ctx, payload)
}

// UpdateCustomer answers 404 for an unknown id before looking at the
// payload, then overwrites every field.
func (s *CustomerService) UpdateCustomer(ctx context.Context, id int64, payload *model.CustomerPayload) (*model.Customer, error) {
	if _, err := s.repo.GetCustomer(ctx, id); err != nil {
		return nil, err
	}

	if err := validation.Validate(payload); err != nil {
		return nil, err
	}

	return s.repo.UpdateCustomer(ctx, id, payload)
}

func (s *CustomerService) DeleteCustomer(ctx context.Context, id int64) error {
	return s.repo.DeleteCustomer(ctx, id)
}
