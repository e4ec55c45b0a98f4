package service

import (
	"github.com/deppfellow/storefront/internal/repository"
	"github.com/deppfellow/storefront/internal/server"
)

type Services struct {
	Customer *CustomerService
	Product  *ProductService
	Order    *OrderService
}

// NewServices wires the services onto the PostgreSQL repositories.
func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	return NewServicesWithStores(s, repos.Customer, repos.Product, repos.Order)
}

// NewServicesWithStores wires the services onto any storage implementation.
// Confirmation emails are scheduled only when s.Job is set.
func NewServicesWithStores(s *server.Server, customers CustomerRepository, products ProductRepository, orders OrderRepository) *Services {
	var notifier OrderNotifier
	if s.Job != nil {
		notifier = s.Job
	}

	return &Services{
		Customer: NewCustomerService(s, customers),
		Product:  NewProductService(s, products),
		Order:    NewOrderService(s, orders, customers, notifier),
	}
}
