package service

import (
	"context"

	"github.com/deppfellow/storefront/internal/model"
	"github.com/deppfellow/storefront/internal/server"
	"github.com/deppfellow/storefront/internal/validation"
)

// ProductRepository is the product storage used by ProductService.
type ProductRepository interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	GetProduct(ctx context.Context, id int64) (*model.Product, error)
	CreateProduct(ctx context.Context, payload *model.ProductPayload) (*model.Product, error)
	UpdateProduct(ctx context.Context, id int64, payload *model.ProductPayload) (*model.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

type ProductService struct {
	server *server.Server
	repo   ProductRepository
}

func NewProductService(s *server.Server, repo ProductRepository) *ProductService {
	return &ProductService{server: s, repo: repo}
}

func (s *ProductService) ListProducts(ctx context.Context) ([]model.Product, error) {
	return s.repo.ListProducts(ctx)
}

func (s *ProductService) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	return s.repo.GetProduct(ctx, id)
}

func (s *ProductService) CreateProduct(ctx context.Context, payload *model.ProductPayload) (*model.Product, error) {
	return s.repo.CreateProduct(ctx, payload)
}

// UpdateProduct follows the same order as UpdateCustomer: 404, then 400.
func (s *ProductService) UpdateProduct(ctx context.Context, id int64, payload *model.ProductPayload) (*model.Product, error) {
	if _, err := s.repo.GetProduct(ctx, id); err != nil {
		return nil, err
	}

	if err := validation.Validate(payload); err != nil {
		return nil, err
	}

	return s.repo.UpdateProduct(ctx, id, payload)
}

func (s *ProductService) DeleteProduct(ctx context.Context, id int64) error {
	return s.repo.DeleteProduct(ctx, id)
}
