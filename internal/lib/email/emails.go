package email

import (
	"fmt"
	"strconv"
)

// OrderConfirmation is what the confirmation email shows.
type OrderConfirmation struct {
	CustomerName string
	OrderID      int64
	OrderDate    string
	ItemCount    int
}

// SendOrderConfirmationEmail tells the customer their order was placed.
func (c *Client) SendOrderConfirmationEmail(to string, order OrderConfirmation) error {
	return c.SendEmail(
		to,
		fmt.Sprintf("Your order #%d", order.OrderID),
		TemplateOrderConfirmation,
		order.templateData(),
	)
}

func (o OrderConfirmation) templateData() map[string]string {
	return map[string]string{
		"CustomerName": o.CustomerName,
		"OrderID":      strconv.FormatInt(o.OrderID, 10),
		"OrderDate":    o.OrderDate,
		"ItemCount":    strconv.Itoa(o.ItemCount),
	}
}
