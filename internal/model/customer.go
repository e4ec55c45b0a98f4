package model

import "github.com/deppfellow/storefront/internal/validation"

// Customer is a row of the customers table. Orders reference it through
// orders.customer_id.
type Customer struct {
	ID           int64  `json:"id" db:"id"`
	CustomerName string `json:"customer_name" db:"customer_name"`
	Email        string `json:"email" db:"email"`
	Phone        string `json:"phone" db:"phone"`
}

// CustomerPayload is the body of POST /customers and PUT /customers/{id}.
// An "id" in the body is ignored.
type CustomerPayload struct {
	CustomerName string `json:"customer_name" validate:"required,max=200"`
	Email        string `json:"email" validate:"required,max=300"`
	Phone        string `json:"phone" validate:"required,max=16"`
}

func (p *CustomerPayload) Validate() error {
	return validation.Struct(p)
}

// UpdateCustomerRequest carries the path id and the new field values.
// Nothing is validated on bind; the payload is validated once the
// customer is known to exist.
type UpdateCustomerRequest struct {
	ID              int64 `param:"id" json:"-"`
	CustomerPayload `validate:"-"`
}

func (r *UpdateCustomerRequest) Validate() error {
	return validation.Struct(r)
}
