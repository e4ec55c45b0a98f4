// Package memstore is an in-memory stand-in for the PostgreSQL
// repositories. It reports missing rows and blocked deletes with the same
// errors, so services and routes can be tested without a database.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/deppfellow/storefront/internal/model"
	"github.com/deppfellow/storefront/internal/repository"
	"github.com/deppfellow/storefront/internal/sqlerr"
	"github.com/jackc/pgx/v5/pgconn"
)

// Store holds every table. The zero value is not usable; call New.
type Store struct {
	mu sync.Mutex

	customers     map[int64]model.Customer
	products      map[int64]model.Product
	orders        map[int64]model.Order
	orderProducts map[int64][]int64

	lastCustomerID int64
	lastProductID  int64
	lastOrderID    int64
}

func New() *Store {
	return &Store{
		customers:     make(map[int64]model.Customer),
		products:      make(map[int64]model.Product),
		orders:        make(map[int64]model.Order),
		orderProducts: make(map[int64][]int64),
	}
}

func sortedValues[T any](m map[int64]T) []T {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, m[id])
	}
	return out
}

func (s *Store) ListCustomers(_ context.Context) ([]model.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return sortedValues(s.customers), nil
}

func (s *Store) GetCustomer(_ context.Context, id int64) (*model.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.customers[id]
	if !ok {
		return nil, sqlerr.NoRows("customers", "customer id=%d", id)
	}
	return &c, nil
}

func (s *Store) CreateCustomer(_ context.Context, payload *model.CustomerPayload) (*model.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastCustomerID++
	c := model.Customer{
		ID:           s.lastCustomerID,
		CustomerName: payload.CustomerName,
		Email:        payload.Email,
		Phone:        payload.Phone,
	}
	s.customers[c.ID] = c
	return &c, nil
}

func (s *Store) UpdateCustomer(_ context.Context, id int64, payload *model.CustomerPayload) (*model.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.customers[id]; !ok {
		return nil, sqlerr.NoRows("customers", "customer id=%d", id)
	}
	c := model.Customer{
		ID:           id,
		CustomerName: payload.CustomerName,
		Email:        payload.Email,
		Phone:        payload.Phone,
	}
	s.customers[id] = c
	return &c, nil
}

func (s *Store) DeleteCustomer(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.customers[id]; !ok {
		return sqlerr.NoRows("customers", "customer id=%d", id)
	}
	for _, o := range s.orders {
		if o.CustomerID == id {
			return repository.CustomerDeleteError(id, foreignKeyViolation("orders", "orders_customer_id_fkey"))
		}
	}
	delete(s.customers, id)
	return nil
}

func (s *Store) ListProducts(_ context.Context) ([]model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return sortedValues(s.products), nil
}

func (s *Store) GetProduct(_ context.Context, id int64) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return nil, sqlerr.NoRows("products", "product id=%d", id)
	}
	return &p, nil
}

func (s *Store) CreateProduct(_ context.Context, payload *model.ProductPayload) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastProductID++
	p := model.Product{
		ID:          s.lastProductID,
		ProductName: payload.ProductName,
		Price:       *payload.Price,
	}
	s.products[p.ID] = p
	return &p, nil
}

func (s *Store) UpdateProduct(_ context.Context, id int64, payload *model.ProductPayload) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return nil, sqlerr.NoRows("products", "product id=%d", id)
	}
	p := model.Product{
		ID:          id,
		ProductName: payload.ProductName,
		Price:       *payload.Price,
	}
	s.products[id] = p
	return &p, nil
}

func (s *Store) DeleteProduct(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return sqlerr.NoRows("products", "product id=%d", id)
	}
	for _, items := range s.orderProducts {
		for _, productID := range items {
			if productID == id {
				return repository.ProductDeleteError(id, foreignKeyViolation("order_products", "order_products_product_id_fkey"))
			}
		}
	}
	delete(s.products, id)
	return nil
}

// CreateOrder mirrors the transactional insert: an unknown customer fails
// like the foreign key would, unknown products are left out.
func (s *Store) CreateOrder(_ context.Context, customerID int64, orderDate time.Time, productIDs []int64) (int64, []int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.customers[customerID]; !ok {
		return 0, nil, foreignKeyViolation("orders", "orders_customer_id_fkey")
	}

	s.lastOrderID++
	order := model.Order{ID: s.lastOrderID, OrderDate: orderDate, CustomerID: customerID}

	attached := []int64{}
	for _, id := range productIDs {
		if _, ok := s.products[id]; ok {
			attached = append(attached, id)
		}
	}

	s.orders[order.ID] = order
	s.orderProducts[order.ID] = attached
	return order.ID, append([]int64(nil), attached...), nil
}

func (s *Store) GetOrder(_ context.Context, id int64) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, sqlerr.NoRows("orders", "order id=%d", id)
	}
	return &o, nil
}

func (s *Store) GetOrderProducts(_ context.Context, orderID int64) ([]model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products := make([]model.Product, 0, len(s.orderProducts[orderID]))
	for _, id := range s.orderProducts[orderID] {
		products = append(products, s.products[id])
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

// foreignKeyViolation is the error PostgreSQL raises when a row would
// reference, or stop being referenced by, a missing row of table.
func foreignKeyViolation(table, constraint string) *pgconn.PgError {
	return &pgconn.PgError{
		Code:           "23503",
		Message:        fmt.Sprintf("violates foreign key constraint %q on table %q", constraint, table),
		TableName:      table,
		ConstraintName: constraint,
	}
}
