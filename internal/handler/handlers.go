package handler

import (
	"github.com/deppfellow/storefront/internal/server"
	"github.com/deppfellow/storefront/internal/service"
)

// Handlers groups every HTTP handler so the router takes a single value.
type Handlers struct {
	Health   *HealthHandler
	OpenAPI  *OpenAPIHandler
	Customer *CustomerHandler
	Product  *ProductHandler
	Order    *OrderHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(s),
		OpenAPI:  NewOpenAPIHandler(s),
		Customer: NewCustomerHandler(s, services.Customer),
		Product:  NewProductHandler(s, services.Product),
		Order:    NewOrderHandler(s, services.Order),
	}
}
