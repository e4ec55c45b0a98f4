package errs

import "strings"

// FieldError is a single field-level validation failure.
type FieldError struct {
	// Field is the JSON name of the offending field.
	Field string

	// Error is the human-readable reason.
	Error string
}

// FieldErrors maps a field's JSON name to every message it failed with.
//
//	{ "customer_name": ["is required"], "phone": ["must not exceed 16 characters"] }
type FieldErrors map[string][]string

// NewFieldErrors groups fieldErrors by field, keeping their order. It
// returns nil when there is nothing to report.
func NewFieldErrors(fieldErrors []FieldError) FieldErrors {
	if len(fieldErrors) == 0 {
		return nil
	}

	out := make(FieldErrors, len(fieldErrors))
	for _, fe := range fieldErrors {
		out.Add(fe.Field, fe.Error)
	}
	return out
}

// Add appends message to the messages of field.
func (f FieldErrors) Add(field, message string) {
	f[field] = append(f[field], message)
}

// ActionType is a string-based enum describing what the client should do next.
type ActionType string

const (
	// ActionTypeRetry tells the client the request may succeed if repeated later.
	ActionTypeRetry ActionType = "retry"
)

// Action is an optional hint for the client attached to an error.
type Action struct {
	Type    ActionType `json:"type"`
	Message string     `json:"message"`
	Value   string     `json:"value"`
}

// HTTPError is the JSON error body of every failed request.
//
// Fields:
//   - Code: machine-friendly code (e.g. "NOT_FOUND", "CUSTOMER_NOT_FOUND").
//   - Message: human-friendly message.
//   - Status: HTTP status code.
//   - Override: whether the client may show Message to end users as-is.
//   - Errors: validation messages keyed by field name.
//   - Action: optional client hint.
type HTTPError struct {
	Code     string      `json:"code"`
	Message  string      `json:"message"`
	Status   int         `json:"status"`
	Override bool        `json:"override"`
	Errors   FieldErrors `json:"errors"`
	Action   *Action     `json:"action"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also an *HTTPError. Codes and statuses are
// not compared.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)

	return ok
}

// WithMessage returns a copy of e with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:     e.Code,
		Message:  message,
		Status:   e.Status,
		Override: e.Override,
		Errors:   e.Errors,
		Action:   e.Action,
	}
}

// MakeUpperCaseWithUnderscores turns "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
