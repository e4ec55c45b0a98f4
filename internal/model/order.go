package model

import (
	"time"

	"github.com/deppfellow/storefront/internal/validation"
)

// DateLayout is the wire format of order dates.
const DateLayout = time.DateOnly

// Order is a row of the orders table. Its products live in order_products.
type Order struct {
	ID         int64     `json:"id" db:"id"`
	OrderDate  time.Time `json:"order_date" db:"order_date"`
	CustomerID int64     `json:"customer_id" db:"customer_id"`
}

// PlaceOrderPayload is the body of POST /orders. The order date is never
// taken from the client.
type PlaceOrderPayload struct {
	CustomerID int64   `json:"customer_id" validate:"required,min=1"`
	Items      []int64 `json:"items" validate:"required,dive,min=1"`
}

func (p *PlaceOrderPayload) Validate() error {
	return validation.Struct(p)
}

// UniqueItems returns Items without duplicates, in first-seen order.
func (p *PlaceOrderPayload) UniqueItems() []int64 {
	seen := make(map[int64]struct{}, len(p.Items))
	items := make([]int64, 0, len(p.Items))
	for _, id := range p.Items {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		items = append(items, id)
	}
	return items
}

// PlaceOrderResponse confirms a placed order. SkippedItems lists requested
// product ids that did not resolve to a product.
type PlaceOrderResponse struct {
	Message      string  `json:"message"`
	OrderID      int64   `json:"order_id"`
	SkippedItems []int64 `json:"skipped_items"`
}

// OrderItem is the short product form used by order tracking.
type OrderItem struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// OrderTracking is the response of GET /orders/{id}/track.
type OrderTracking struct {
	OrderID   int64       `json:"order_id"`
	OrderDate string      `json:"order_date"`
	Items     []OrderItem `json:"items"`
}

// NewOrderTracking builds the tracking view of order and its products.
func NewOrderTracking(order *Order, products []Product) *OrderTracking {
	items := make([]OrderItem, 0, len(products))
	for _, p := range products {
		items = append(items, OrderItem{ID: p.ID, Name: p.ProductName})
	}

	return &OrderTracking{
		OrderID:   order.ID,
		OrderDate: order.OrderDate.Format(DateLayout),
		Items:     items,
	}
}
