// Package validation binds request data and validates it.
//
// Payload types carry `validate` struct tags and implement Validatable;
// failures come back as a 400 *errs.HTTPError listing one message per
// offending field, keyed by the field's JSON (or path parameter) name.
package validation

// Validatable is implemented by request payloads that know how to validate
// themselves, usually by calling Struct(req).
type Validatable interface {
	Validate() error
}
