// Package model holds the entities stored in the database and the request
// payloads accepted by the API.
//
// Relations are plain foreign-key fields; related rows are fetched with
// explicit queries by the repositories.
package model

import "github.com/deppfellow/storefront/internal/validation"

// IDParam is the `{id}` path parameter shared by every single-row route.
// Any integer is accepted; ids that match no row, zero and negatives
// included, end up as 404.
type IDParam struct {
	ID int64 `param:"id" json:"-"`
}

func (p *IDParam) Validate() error {
	return validation.Struct(p)
}

// MessageResponse confirms a mutation. ID is the affected row.
type MessageResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id,omitempty"`
}

// NoParams is the request of routes that take no input.
type NoParams struct{}

func (NoParams) Validate() error {
	return nil
}
