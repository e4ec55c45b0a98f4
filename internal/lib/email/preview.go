package email

// PreviewData holds sample values for every template, keyed by template
// name and then by template variable.
var PreviewData = map[Template]map[string]string{
	TemplateOrderConfirmation: {
		"CustomerName": "Ana Lima",
		"OrderID":      "42",
		"OrderDate":    "2026-10-18",
		"ItemCount":    "3",
	},
}
