package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/storefront/internal/errs"
	"github.com/deppfellow/storefront/internal/metrics"
	"github.com/deppfellow/storefront/internal/model"
	"github.com/deppfellow/storefront/internal/server"
	"github.com/deppfellow/storefront/internal/sqlerr"
	"github.com/doug-martin/goqu/v9"
)

var productColumns = []any{"id", "product_name", "price"}

type ProductRepository struct {
	server *server.Server
}

func NewProductRepository(s *server.Server) *ProductRepository {
	return &ProductRepository{server: s}
}

func (r *ProductRepository) ListProducts(ctx context.Context) ([]model.Product, error) {
	defer metrics.ObserveDBQuery(tableProducts, opSelect, time.Now())

	products, err := collect[model.Product](ctx, r.server.DB.Pool, buildListProducts())
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (r *ProductRepository) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	defer metrics.ObserveDBQuery(tableProducts, opSelect, time.Now())

	product, err := collectOne[model.Product](ctx, r.server.DB.Pool, buildGetProduct(id))
	if err != nil {
		if isNoRows(err) {
			return nil, sqlerr.NoRows(tableProducts, "product id=%d", id)
		}
		return nil, fmt.Errorf("failed to get product id=%d: %w", id, err)
	}
	return product, nil
}

func (r *ProductRepository) CreateProduct(ctx context.Context, payload *model.ProductPayload) (*model.Product, error) {
	defer metrics.ObserveDBQuery(tableProducts, opInsert, time.Now())

	product, err := collectOne[model.Product](ctx, r.server.DB.Pool, buildCreateProduct(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

func (r *ProductRepository) UpdateProduct(ctx context.Context, id int64, payload *model.ProductPayload) (*model.Product, error) {
	defer metrics.ObserveDBQuery(tableProducts, opUpdate, time.Now())

	product, err := collectOne[model.Product](ctx, r.server.DB.Pool, buildUpdateProduct(id, payload))
	if err != nil {
		if isNoRows(err) {
			return nil, sqlerr.NoRows(tableProducts, "product id=%d", id)
		}
		return nil, fmt.Errorf("failed to update product id=%d: %w", id, err)
	}
	return product, nil
}

// DeleteProduct refuses to remove a product that is part of any order.
func (r *ProductRepository) DeleteProduct(ctx context.Context, id int64) error {
	defer metrics.ObserveDBQuery(tableProducts, opDelete, time.Now())

	affected, err := exec(ctx, r.server.DB.Pool, dialect.Delete(tableProducts).Prepared(true).Where(goqu.C("id").Eq(id)))
	if err != nil {
		return ProductDeleteError(id, err)
	}
	if affected == 0 {
		return sqlerr.NoRows(tableProducts, "product id=%d", id)
	}
	return nil
}

func buildListProducts() sqlBuilder {
	return dialect.From(tableProducts).Prepared(true).
		Select(productColumns...).
		Order(goqu.C("id").Asc())
}

func buildGetProduct(id int64) sqlBuilder {
	return dialect.From(tableProducts).Prepared(true).
		Select(productColumns...).
		Where(goqu.C("id").Eq(id))
}

func productRecord(payload *model.ProductPayload) goqu.Record {
	return goqu.Record{
		"product_name": payload.ProductName,
		"price":        *payload.Price,
	}
}

func buildCreateProduct(payload *model.ProductPayload) sqlBuilder {
	return dialect.Insert(tableProducts).Prepared(true).
		Rows(productRecord(payload)).
		Returning(productColumns...)
}

func buildUpdateProduct(id int64, payload *model.ProductPayload) sqlBuilder {
	return dialect.Update(tableProducts).Prepared(true).
		Set(productRecord(payload)).
		Where(goqu.C("id").Eq(id)).
		Returning(productColumns...)
}

// ProductDeleteError maps a failed product DELETE. A foreign key violation
// means the product is attached to an order.
func ProductDeleteError(id int64, err error) error {
	if sqlerr.Is(err, sqlerr.ForeignKeyViolation) {
		return ProductInOrderError()
	}
	return fmt.Errorf("failed to delete product id=%d: %w", id, err)
}

// ProductInOrderError is the 409 returned when deleting a product that is part of an order.
func ProductInOrderError() *errs.HTTPError {
	code := "PRODUCT_IN_ORDER"
	return errs.NewConflictError("Product is part of an order and cannot be deleted", true, &code)
}
