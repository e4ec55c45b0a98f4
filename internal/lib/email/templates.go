package email

// Template names an HTML file under templates/.
type Template string

const (
	// TemplateOrderConfirmation corresponds to templates/order_confirmation.html
	TemplateOrderConfirmation Template = "order_confirmation"
)
