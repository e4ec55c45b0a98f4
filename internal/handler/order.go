package handler

import (
	"github.com/deppfellow/storefront/internal/model"
	"github.com/deppfellow/storefront/internal/server"
	"github.com/deppfellow/storefront/internal/service"
	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	Handler
	orderService *service.OrderService
}

func NewOrderHandler(s *server.Server, orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{
		Handler:      NewHandler(s),
		orderService: orderService,
	}
}

func (h *OrderHandler) PlaceOrder(c echo.Context, payload *model.PlaceOrderPayload) (*model.PlaceOrderResponse, error) {
	return h.orderService.PlaceOrder(c.Request().Context(), payload)
}

func (h *OrderHandler) GetOrderItems(c echo.Context, req *model.IDParam) ([]model.Product, error) {
	return h.orderService.GetOrderItems(c.Request().Context(), req.ID)
}

func (h *OrderHandler) TrackOrder(c echo.Context, req *model.IDParam) (*model.OrderTracking, error) {
	return h.orderService.TrackOrder(c.Request().Context(), req.ID)
}
