package handler

import (
	"github.com/deppfellow/storefront/internal/model"
	"github.com/deppfellow/storefront/internal/server"
	"github.com/deppfellow/storefront/internal/service"
	"github.com/labstack/echo/v4"
)

type CustomerHandler struct {
	Handler
	customerService *service.CustomerService
}

func NewCustomerHandler(s *server.Server, customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		Handler:         NewHandler(s),
		customerService: customerService,
	}
}

func (h *CustomerHandler) ListCustomers(c echo.Context, _ *model.NoParams) ([]model.Customer, error) {
	return h.customerService.ListCustomers(c.Request().Context())
}

func (h *CustomerHandler) GetCustomer(c echo.Context, req *model.IDParam) (*model.Customer, error) {
	return h.customerService.GetCustomer(c.Request().Context(), req.ID)
}

func (h *CustomerHandler) CreateCustomer(c echo.Context, payload *model.CustomerPayload) (*model.MessageResponse, error) {
	customer, err := h.customerService.CreateCustomer(c.Request().Context(), payload)
	if err != nil {
		return nil, err
	}

	return &model.MessageResponse{Message: "Customer created successfully", ID: customer.ID}, nil
}

func (h *CustomerHandler) UpdateCustomer(c echo.Context, req *model.UpdateCustomerRequest) (*model.MessageResponse, error) {
	customer, err := h.customerService.UpdateCustomer(c.Request().Context(), req.ID, &req.CustomerPayload)
	if err != nil {
		return nil, err
	}

	return &model.MessageResponse{Message: "Customer updated successfully", ID: customer.ID}, nil
}

func (h *CustomerHandler) DeleteCustomer(c echo.Context, req *model.IDParam) (*model.MessageResponse, error) {
	if err := h.customerService.DeleteCustomer(c.Request().Context(), req.ID); err != nil {
		return nil, err
	}

	return &model.MessageResponse{Message: "Customer deleted successfully", ID: req.ID}, nil
}
