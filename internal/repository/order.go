package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/storefront/internal/metrics"
	"github.com/deppfellow/storefront/internal/model"
	"github.com/deppfellow/storefront/internal/server"
	"github.com/deppfellow/storefront/internal/sqlerr"
	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5"
)

type OrderRepository struct {
	server *server.Server
}

func NewOrderRepository(s *server.Server) *OrderRepository {
	return &OrderRepository{server: s}
}

// CreateOrder inserts the order and links it to every product in
// productIDs that exists, in one transaction. It returns the new order id
// and the product ids that were attached; ids with no product row are left
// out.
func (r *OrderRepository) CreateOrder(ctx context.Context, customerID int64, orderDate time.Time, productIDs []int64) (int64, []int64, error) {
	defer metrics.ObserveDBQuery(tableOrders, opInsert, time.Now())

	var (
		orderID  int64
		attached []int64
	)

	err := pgx.BeginFunc(ctx, r.server.DB.Pool, func(tx pgx.Tx) error {
		query, args, err := toSQL(buildInsertOrder(customerID, orderDate))
		if err != nil {
			return err
		}
		if err := tx.QueryRow(ctx, query, args...).Scan(&orderID); err != nil {
			return fmt.Errorf("failed to insert order: %w", err)
		}

		if len(productIDs) == 0 {
			attached = []int64{}
			return nil
		}

		query, args, err = toSQL(buildAttachProducts(orderID, productIDs))
		if err != nil {
			return err
		}
		rows, err := tx.Query(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("failed to attach order products: %w", err)
		}
		attached, err = pgx.CollectRows(rows, pgx.RowTo[int64])
		if err != nil {
			return fmt.Errorf("failed to attach order products: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create order for customer id=%d: %w", customerID, err)
	}

	return orderID, attached, nil
}

func (r *OrderRepository) GetOrder(ctx context.Context, id int64) (*model.Order, error) {
	defer metrics.ObserveDBQuery(tableOrders, opSelect, time.Now())

	order, err := collectOne[model.Order](ctx, r.server.DB.Pool, buildGetOrder(id))
	if err != nil {
		if isNoRows(err) {
			return nil, sqlerr.NoRows(tableOrders, "order id=%d", id)
		}
		return nil, fmt.Errorf("failed to get order id=%d: %w", id, err)
	}
	return order, nil
}

// GetOrderProducts returns the products linked to the order, ordered by id.
// It does not check that the order exists.
func (r *OrderRepository) GetOrderProducts(ctx context.Context, orderID int64) ([]model.Product, error) {
	defer metrics.ObserveDBQuery(tableOrderProducts, opSelect, time.Now())

	products, err := collect[model.Product](ctx, r.server.DB.Pool, buildGetOrderProducts(orderID))
	if err != nil {
		return nil, fmt.Errorf("failed to get products of order id=%d: %w", orderID, err)
	}
	return products, nil
}

func buildInsertOrder(customerID int64, orderDate time.Time) sqlBuilder {
	return dialect.Insert(tableOrders).Prepared(true).
		Rows(goqu.Record{
			"order_date":  orderDate,
			"customer_id": customerID,
		}).
		Returning("id")
}

// buildAttachProducts inserts one order_products row per existing product:
//
//	INSERT INTO order_products (order_id, product_id)
//	SELECT CAST($1 AS BIGINT), id FROM products WHERE id IN (...)
//	RETURNING product_id
func buildAttachProducts(orderID int64, productIDs []int64) sqlBuilder {
	existing := dialect.From(tableProducts).
		Select(goqu.Cast(goqu.V(orderID), "BIGINT"), goqu.C("id")).
		Where(goqu.C("id").In(productIDs))

	return dialect.Insert(tableOrderProducts).Prepared(true).
		Cols("order_id", "product_id").
		FromQuery(existing).
		Returning("product_id")
}

func buildGetOrder(id int64) sqlBuilder {
	return dialect.From(tableOrders).Prepared(true).
		Select("id", "order_date", "customer_id").
		Where(goqu.C("id").Eq(id))
}

func buildGetOrderProducts(orderID int64) sqlBuilder {
	return dialect.From(goqu.T(tableProducts).As("p")).Prepared(true).
		Join(
			goqu.T(tableOrderProducts).As("op"),
			goqu.On(goqu.I("op.product_id").Eq(goqu.I("p.id"))),
		).
		Select(goqu.I("p.id"), goqu.I("p.product_name"), goqu.I("p.price")).
		Where(goqu.I("op.order_id").Eq(orderID)).
		Order(goqu.I("p.id").Asc())
}
