package service

import (
	"context"
	"errors"
	"time"

	"github.com/deppfellow/storefront/internal/errs"
	"github.com/deppfellow/storefront/internal/lib/job"
	"github.com/deppfellow/storefront/internal/metrics"
	"github.com/deppfellow/storefront/internal/model"
	"github.com/deppfellow/storefront/internal/server"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// OrderRepository is the order storage used by OrderService.
type OrderRepository interface {
	CreateOrder(ctx context.Context, customerID int64, orderDate time.Time, productIDs []int64) (int64, []int64, error)
	GetOrder(ctx context.Context, id int64) (*model.Order, error)
	GetOrderProducts(ctx context.Context, orderID int64) ([]model.Product, error)
}

// OrderNotifier schedules the confirmation email of a placed order.
type OrderNotifier interface {
	EnqueueOrderConfirmation(ctx context.Context, p job.OrderConfirmationPayload) error
}

type OrderService struct {
	server    *server.Server
	orders    OrderRepository
	customers CustomerRepository
	notifier  OrderNotifier
	now       func() time.Time
}

// NewOrderService wires the order workflow. notifier may be nil, in which
// case no confirmation email is scheduled.
func NewOrderService(s *server.Server, orders OrderRepository, customers CustomerRepository, notifier OrderNotifier) *OrderService {
	return &OrderService{
		server:    s,
		orders:    orders,
		customers: customers,
		notifier:  notifier,
		now:       time.Now,
	}
}

// PlaceOrder creates an order dated today for an existing customer and
// attaches the requested products. Unknown product ids do not fail the
// order; they come back in SkippedItems.
func (s *OrderService) PlaceOrder(ctx context.Context, payload *model.PlaceOrderPayload) (*model.PlaceOrderResponse, error) {
	customer, err := s.customers.GetCustomer(ctx, payload.CustomerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ValidationError([]errs.FieldError{{
				Field: "customer_id",
				Error: "customer does not exist",
			}})
		}
		return nil, err
	}

	items := payload.UniqueItems()
	orderDate := today(s.now())

	orderID, attached, err := s.orders.CreateOrder(ctx, customer.ID, orderDate, items)
	if err != nil {
		return nil, err
	}

	skipped := missing(items, attached)

	metrics.OrdersPlaced.Inc()
	metrics.OrderItemsSkipped.Add(float64(len(skipped)))

	s.notify(ctx, customer, orderID, orderDate, len(attached))

	return &model.PlaceOrderResponse{
		Message:      "Order placed successfully",
		OrderID:      orderID,
		SkippedItems: skipped,
	}, nil
}

// GetOrderItems lists the products of an existing order.
func (s *OrderService) GetOrderItems(ctx context.Context, id int64) ([]model.Product, error) {
	if _, err := s.orders.GetOrder(ctx, id); err != nil {
		return nil, err
	}

	return s.orders.GetOrderProducts(ctx, id)
}

func (s *OrderService) TrackOrder(ctx context.Context, id int64) (*model.OrderTracking, error) {
	order, err := s.orders.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	products, err := s.orders.GetOrderProducts(ctx, id)
	if err != nil {
		return nil, err
	}

	return model.NewOrderTracking(order, products), nil
}

// notify enqueues the confirmation email. The order is already committed,
// so a failure is only logged.
func (s *OrderService) notify(ctx context.Context, customer *model.Customer, orderID int64, orderDate time.Time, itemCount int) {
	if s.notifier == nil || customer.Email == "" {
		return
	}

	err := s.notifier.EnqueueOrderConfirmation(ctx, job.OrderConfirmationPayload{
		To:           customer.Email,
		CustomerName: customer.CustomerName,
		OrderID:      orderID,
		OrderDate:    orderDate.Format(model.DateLayout),
		ItemCount:    itemCount,
	})
	if err != nil {
		s.logger(ctx).Error().
			Err(err).
			Int64("order_id", orderID).
			Msg("failed to enqueue order confirmation email")
	}
}

// logger prefers the request logger carried by ctx.
func (s *OrderService) logger(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return s.server.Logger
}

// today truncates t to its calendar date.
func today(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// missing returns the ids of requested that are not in attached, keeping
// the requested order.
func missing(requested, attached []int64) []int64 {
	found := make(map[int64]struct{}, len(attached))
	for _, id := range attached {
		found[id] = struct{}{}
	}

	out := []int64{}
	for _, id := range requested {
		if _, ok := found[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}
