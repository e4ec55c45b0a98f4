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

var customerColumns = []any{
	goqu.C("id"),
	goqu.C("customer_name"),
	coalesceText("email"),
	coalesceText("phone"),
}

type CustomerRepository struct {
	server *server.Server
}

func NewCustomerRepository(s *server.Server) *CustomerRepository {
	return &CustomerRepository{server: s}
}

func (r *CustomerRepository) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	defer metrics.ObserveDBQuery(tableCustomers, opSelect, time.Now())

	customers, err := collect[model.Customer](ctx, r.server.DB.Pool, buildListCustomers())
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

func (r *CustomerRepository) GetCustomer(ctx context.Context, id int64) (*model.Customer, error) {
	defer metrics.ObserveDBQuery(tableCustomers, opSelect, time.Now())

	customer, err := collectOne[model.Customer](ctx, r.server.DB.Pool, buildGetCustomer(id))
	if err != nil {
		if isNoRows(err) {
			return nil, sqlerr.NoRows(tableCustomers, "customer id=%d", id)
		}
		return nil, fmt.Errorf("failed to get customer id=%d: %w", id, err)
	}
	return customer, nil
}

func (r *CustomerRepository) CreateCustomer(ctx context.Context, payload *model.CustomerPayload) (*model.Customer, error) {
	defer metrics.ObserveDBQuery(tableCustomers, opInsert, time.Now())

	customer, err := collectOne[model.Customer](ctx, r.server.DB.Pool, buildCreateCustomer(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return customer, nil
}

// UpdateCustomer overwrites every field of the customer.
func (r *CustomerRepository) UpdateCustomer(ctx context.Context, id int64, payload *model.CustomerPayload) (*model.Customer, error) {
	defer metrics.ObserveDBQuery(tableCustomers, opUpdate, time.Now())

	customer, err := collectOne[model.Customer](ctx, r.server.DB.Pool, buildUpdateCustomer(id, payload))
	if err != nil {
		if isNoRows(err) {
			return nil, sqlerr.NoRows(tableCustomers, "customer id=%d", id)
		}
		return nil, fmt.Errorf("failed to update customer id=%d: %w", id, err)
	}
	return customer, nil
}

// DeleteCustomer refuses to remove a customer that orders still reference.
func (r *CustomerRepository) DeleteCustomer(ctx context.Context, id int64) error {
	defer metrics.ObserveDBQuery(tableCustomers, opDelete, time.Now())

	affected, err := exec(ctx, r.server.DB.Pool, dialect.Delete(tableCustomers).Prepared(true).Where(goqu.C("id").Eq(id)))
	if err != nil {
		return CustomerDeleteError(id, err)
	}
	if affected == 0 {
		return sqlerr.NoRows(tableCustomers, "customer id=%d", id)
	}
	return nil
}

func buildListCustomers() sqlBuilder {
	return dialect.From(tableCustomers).Prepared(true).
		Select(customerColumns...).
		Order(goqu.C("id").Asc())
}

func buildGetCustomer(id int64) sqlBuilder {
	return dialect.From(tableCustomers).Prepared(true).
		Select(customerColumns...).
		Where(goqu.C("id").Eq(id))
}

func customerRecord(payload *model.CustomerPayload) goqu.Record {
	return goqu.Record{
		"customer_name": payload.CustomerName,
		"email":         payload.Email,
		"phone":         payload.Phone,
	}
}

func buildCreateCustomer(payload *model.CustomerPayload) sqlBuilder {
	return dialect.Insert(tableCustomers).Prepared(true).
		Rows(customerRecord(payload)).
		Returning(customerColumns...)
}

func buildUpdateCustomer(id int64, payload *model.CustomerPayload) sqlBuilder {
	return dialect.Update(tableCustomers).Prepared(true).
		Set(customerRecord(payload)).
		Where(goqu.C("id").Eq(id)).
		Returning(customerColumns...)
}

// CustomerDeleteError maps a failed customer DELETE. A foreign key
// violation means orders still reference the customer.
func CustomerDeleteError(id int64, err error) error {
	if sqlerr.Is(err, sqlerr.ForeignKeyViolation) {
		return CustomerHasOrdersError()
	}
	return fmt.Errorf("failed to delete customer id=%d: %w", id, err)
}

// CustomerHasOrdersError is the 409 returned when deleting a customer that orders still reference.
func CustomerHasOrdersError() *errs.HTTPError {
	code := "CUSTOMER_HAS_ORDERS"
	return errs.NewConflictError("Customer has orders and cannot be deleted", true, &code)
}
