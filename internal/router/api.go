package router

import (
	"net/http"

	"github.com/deppfellow/storefront/internal/handler"
	"github.com/deppfellow/storefront/internal/model"
	"github.com/labstack/echo/v4"
)

func registerCustomerRoutes(r *echo.Echo, h *handler.Handlers) {
	ch := h.Customer
	g := r.Group("/customers")

	g.GET("", handler.Handle(ch.Handler, ch.ListCustomers, http.StatusOK, &model.NoParams{}))
	g.POST("", handler.Handle(ch.Handler, ch.CreateCustomer, http.StatusCreated, &model.CustomerPayload{}))
	g.GET("/:id", handler.Handle(ch.Handler, ch.GetCustomer, http.StatusOK, &model.IDParam{}))
	g.PUT("/:id", handler.Handle(ch.Handler, ch.UpdateCustomer, http.StatusOK, &model.UpdateCustomerRequest{}))
	g.DELETE("/:id", handler.Handle(ch.Handler, ch.DeleteCustomer, http.StatusOK, &model.IDParam{}))
}

func registerProductRoutes(r *echo.Echo, h *handler.Handlers) {
	ph := h.Product
	g := r.Group("/products")

	g.GET("", handler.Handle(ph.Handler, ph.ListProducts, http.StatusOK, &model.NoParams{}))
	g.POST("", handler.Handle(ph.Handler, ph.CreateProduct, http.StatusCreated, &model.ProductPayload{}))
	g.GET("/:id", handler.Handle(ph.Handler, ph.GetProduct, http.StatusOK, &model.IDParam{}))
	g.PUT("/:id", handler.Handle(ph.Handler, ph.UpdateProduct, http.StatusOK, &model.UpdateProductRequest{}))
	g.DELETE("/:id", handler.Handle(ph.Handler, ph.DeleteProduct, http.StatusOK, &model.IDParam{}))
}

func registerOrderRoutes(r *echo.Echo, h *handler.Handlers) {
	oh := h.Order

	r.POST("/orders", handler.Handle(oh.Handler, oh.PlaceOrder, http.StatusCreated, &model.PlaceOrderPayload{}))
	r.GET("/orders/:id/track", handler.Handle(oh.Handler, oh.TrackOrder, http.StatusOK, &model.IDParam{}))
	r.GET("/order_items/:id", handler.Handle(oh.Handler, oh.GetOrderItems, http.StatusOK, &model.IDParam{}))
}
