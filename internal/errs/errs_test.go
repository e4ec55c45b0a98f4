package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	custom := "CUSTOMER_HAS_ORDERS"

	tests := []struct {
		name   string
		err    *HTTPError
		status int
		code   string
	}{
		{"bad request", NewBadRequestError("bad", false, nil, nil, nil), http.StatusBadRequest, "BAD_REQUEST"},
		{"not found", NewNotFoundError("Customer not found", true, nil), http.StatusNotFound, "NOT_FOUND"},
		{"conflict with code", NewConflictError("in use", true, &custom), http.StatusConflict, custom},
		{"too many requests", NewTooManyRequestsError("slow down"), http.StatusTooManyRequests, "TOO_MANY_REQUESTS"},
		{"internal", NewInternalServerError(), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.Status)
			assert.Equal(t, tt.code, tt.err.Code)
		})
	}
}

func TestValidationError(t *testing.T) {
	err := ValidationError([]FieldError{{Field: "email", Error: "is required"}})

	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, "Validation failed", err.Message)
	assert.True(t, err.Override)
	assert.Equal(t, FieldErrors{"email": {"is required"}}, err.Errors)
}

func TestNewFieldErrors(t *testing.T) {
	got := NewFieldErrors([]FieldError{
		{Field: "phone", Error: "must be a string"},
		{Field: "email", Error: "is required"},
		{Field: "phone", Error: "must not exceed 16 characters"},
	})

	assert.Equal(t, FieldErrors{
		"email": {"is required"},
		"phone": {"must be a string", "must not exceed 16 characters"},
	}, got)

	assert.Nil(t, NewFieldErrors(nil))
}

func TestHTTPErrorJSON(t *testing.T) {
	body, err := json.Marshal(ValidationError([]FieldError{
		{Field: "customer_name", Error: "is required"},
		{Field: "phone", Error: "must not exceed 16 characters"},
	}))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, map[string]any{
		"customer_name": []any{"is required"},
		"phone":         []any{"must not exceed 16 characters"},
	}, decoded["errors"])
}

func TestHTTPErrorIs(t *testing.T) {
	wrapped := fmt.Errorf("create customer: %w", NewNotFoundError("x", false, nil))

	assert.True(t, errors.Is(wrapped, &HTTPError{}))
	assert.False(t, errors.Is(errors.New("plain"), &HTTPError{}))

	var httpErr *HTTPError
	assert.True(t, errors.As(wrapped, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
}

func TestWithMessage(t *testing.T) {
	orig := NewConflictError("a", true, nil)
	changed := orig.WithMessage("b")

	assert.Equal(t, "a", orig.Message)
	assert.Equal(t, "b", changed.Message)
	assert.Equal(t, orig.Status, changed.Status)
}

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "UNPROCESSABLE_ENTITY", MakeUpperCaseWithUnderscores("Unprocessable Entity"))
}
