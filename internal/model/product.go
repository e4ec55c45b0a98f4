package model

import "github.com/deppfellow/storefront/internal/validation"

// Product is a row of the products table.
type Product struct {
	ID          int64   `json:"id" db:"id"`
	ProductName string  `json:"product_name" db:"product_name"`
	Price       float64 `json:"price" db:"price"`
}

// ProductPayload is the body of POST /products and PUT /products/{id}.
// Price is a pointer so that a missing price and 0 can be told apart.
type ProductPayload struct {
	ProductName string   `json:"product_name" validate:"required,max=255"`
	Price       *float64 `json:"price" validate:"required"`
}

func (p *ProductPayload) Validate() error {
	return validation.Struct(p)
}

// UpdateProductRequest mirrors UpdateCustomerRequest.
type UpdateProductRequest struct {
	ID             int64 `param:"id" json:"-"`
	ProductPayload `validate:"-"`
}

func (r *UpdateProductRequest) Validate() error {
	return validation.Struct(r)
}
