package handler

import (
	"github.com/deppfellow/storefront/internal/model"
	"github.com/deppfellow/storefront/internal/server"
	"github.com/deppfellow/storefront/internal/service"
	"github.com/labstack/echo/v4"
)

type ProductHandler struct {
	Handler
	productService *service.ProductService
}

func NewProductHandler(s *server.Server, productService *service.ProductService) *ProductHandler {
	return &ProductHandler{
		Handler:        NewHandler(s),
		productService: productService,
	}
}

func (h *ProductHandler) ListProducts(c echo.Context, _ *model.NoParams) ([]model.Product, error) {
	return h.productService.ListProducts(c.Request().Context())
}

func (h *ProductHandler) GetProduct(c echo.Context, req *model.IDParam) (*model.Product, error) {
	return h.productService.GetProduct(c.Request().Context(), req.ID)
}

func (h *ProductHandler) CreateProduct(c echo.Context, payload *model.ProductPayload) (*model.MessageResponse, error) {
	product, err := h.productService.CreateProduct(c.Request().Context(), payload)
	if err != nil {
		return nil, err
	}

	return &model.MessageResponse{Message: "Product created successfully", ID: product.ID}, nil
}

func (h *ProductHandler) UpdateProduct(c echo.Context, req *model.UpdateProductRequest) (*model.MessageResponse, error) {
	product, err := h.productService.UpdateProduct(c.Request().Context(), req.ID, &req.ProductPayload)
	if err != nil {
		return nil, err
	}

	return &model.MessageResponse{Message: "Product updated successfully", ID: product.ID}, nil
}

func (h *ProductHandler) DeleteProduct(c echo.Context, req *model.IDParam) (*model.MessageResponse, error) {
	if err := h.productService.DeleteProduct(c.Request().Context(), req.ID); err != nil {
		return nil, err
	}

	return &model.MessageResponse{Message: "Product deleted successfully", ID: req.ID}, nil
}
