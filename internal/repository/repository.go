// Package repository handles all interactions with the database.
//
// Queries are built with goqu (postgres dialect, prepared placeholders) and
// run on the shared pgx pool. Rows are scanned into model types by column
// name. A missing row is reported as sqlerr.NoRows so the global error
// handler can answer 404 with the entity name.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	tableCustomers     = "customers"
	tableProducts      = "products"
	tableOrders        = "orders"
	tableOrderProducts = "order_products"

	opSelect = "select"
	opInsert = "insert"
	opUpdate = "update"
	opDelete = "delete"
)

var dialect = goqu.Dialect("postgres")

// querier is what a statement needs to run; *pgxpool.Pool and pgx.Tx both
// satisfy it.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// sqlBuilder is any goqu dataset that can render itself.
type sqlBuilder interface {
	ToSQL() (string, []any, error)
}

func toSQL(b sqlBuilder) (string, []any, error) {
	query, args, err := b.ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("failed to build query: %w", err)
	}
	return query, args, nil
}

// collect runs the statement and scans every row into T by column name.
func collect[T any](ctx context.Context, q querier, b sqlBuilder) ([]T, error) {
	query, args, err := toSQL(b)
	if err != nil {
		return nil, err
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowToStructByName[T])
}

// collectOne is collect for statements that must yield exactly one row.
// An empty result is pgx.ErrNoRows.
func collectOne[T any](ctx context.Context, q querier, b sqlBuilder) (*T, error) {
	query, args, err := toSQL(b)
	if err != nil {
		return nil, err
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[T])
}

// exec runs a statement and returns the number of affected rows.
func exec(ctx context.Context, q querier, b sqlBuilder) (int64, error) {
	query, args, err := toSQL(b)
	if err != nil {
		return 0, err
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// coalesceText reads a nullable text column as "" when NULL.
func coalesceText(col string) any {
	return goqu.COALESCE(goqu.C(col), goqu.L("''")).As(col)
}
