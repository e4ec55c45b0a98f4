package repository

import (
	"github.com/deppfellow/storefront/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Customer *CustomerRepository
	Product  *ProductRepository
	Order    *OrderRepository
}

// NewRepositories builds every repository on top of s.DB.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Customer: NewCustomerRepository(s),
		Product:  NewProductRepository(s),
		Order:    NewOrderRepository(s),
	}
}
