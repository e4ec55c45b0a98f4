package validation_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/storefront/internal/errs"
	"github.com/deppfellow/storefront/internal/model"
	"github.com/deppfellow/storefront/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(method, body string, id string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())
	if id != "" {
		c.SetParamNames("id")
		c.SetParamValues(id)
	}
	return c
}

func requireHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %v", err)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	return httpErr
}

// fieldMessages keeps the first message of each field.
func fieldMessages(httpErr *errs.HTTPError) map[string]string {
	out := make(map[string]string, len(httpErr.Errors))
	for field, messages := range httpErr.Errors {
		if len(messages) > 0 {
			out[field] = messages[0]
		}
	}
	return out
}

func TestBindAndValidate_ValidCustomer(t *testing.T) {
	c := newContext(http.MethodPost, `{"id": 99, "customer_name":"Ana","email":"ana@x.com","phone":"5551234"}`, "")

	payload := &model.CustomerPayload{}
	require.NoError(t, validation.BindAndValidate(c, payload))
	assert.Equal(t, "Ana", payload.CustomerName)
	assert.Equal(t, "ana@x.com", payload.Email)
	assert.Equal(t, "5551234", payload.Phone)
}

func TestBindAndValidate_MissingCustomerFields(t *testing.T) {
	c := newContext(http.MethodPost, `{}`, "")

	httpErr := requireHTTPError(t, validation.BindAndValidate(c, &model.CustomerPayload{}))
	assert.Equal(t, map[string]string{
		"customer_name": "is required",
		"email":         "is required",
		"phone":         "is required",
	}, fieldMessages(httpErr))
}

func TestBindAndValidate_TooLongPhone(t *testing.T) {
	c := newContext(http.MethodPost, `{"customer_name":"Ana","email":"ana@x.com","phone":"12345678901234567"}`, "")

	httpErr := requireHTTPError(t, validation.BindAndValidate(c, &model.CustomerPayload{}))
	assert.Equal(t, "must not exceed 16 characters", fieldMessages(httpErr)["phone"])
}

func TestBindAndValidate_MistypedPrice(t *testing.T) {
	c := newContext(http.MethodPost, `{"product_name":"Lamp","price":"cheap"}`, "")

	httpErr := requireHTTPError(t, validation.BindAndValidate(c, &model.ProductPayload{}))
	assert.Equal(t, "must be a number", fieldMessages(httpErr)["price"])
}

func TestBindAndValidate_MissingPrice(t *testing.T) {
	c := newContext(http.MethodPost, `{"product_name":"Lamp"}`, "")

	httpErr := requireHTTPError(t, validation.BindAndValidate(c, &model.ProductPayload{}))
	assert.Equal(t, "is required", fieldMessages(httpErr)["price"])
}

func TestBindAndValidate_ZeroPriceAccepted(t *testing.T) {
	c := newContext(http.MethodPost, `{"product_name":"Sample","price":0}`, "")

	payload := &model.ProductPayload{}
	require.NoError(t, validation.BindAndValidate(c, payload))
	require.NotNil(t, payload.Price)
	assert.Equal(t, 0.0, *payload.Price)
}

func TestBindAndValidate_MalformedJSON(t *testing.T) {
	c := newContext(http.MethodPost, `{"customer_name":`, "")

	httpErr := requireHTTPError(t, validation.BindAndValidate(c, &model.CustomerPayload{}))
	assert.Empty(t, httpErr.Errors)
}

func TestBindAndValidate_NonObjectBody(t *testing.T) {
	for _, body := range []string{`[]`, `"Ana"`, `42`} {
		t.Run(body, func(t *testing.T) {
			c := newContext(http.MethodPost, body, "")

			httpErr := requireHTTPError(t, validation.BindAndValidate(c, &model.CustomerPayload{}))
			assert.Equal(t, "Request body must be a JSON object", httpErr.Message)
			assert.Empty(t, httpErr.Errors)
			assert.NotContains(t, httpErr.Message, "model.")
		})
	}
}

func TestBindAndValidate_ZeroPathIDAccepted(t *testing.T) {
	c := newContext(http.MethodGet, "", "0")

	req := &model.IDParam{}
	require.NoError(t, validation.BindAndValidate(c, req))
	assert.Zero(t, req.ID)
}

func TestBindAndValidate_NonNumericPathID(t *testing.T) {
	c := newContext(http.MethodGet, "", "abc")

	httpErr := requireHTTPError(t, validation.BindAndValidate(c, &model.IDParam{}))
	assert.Equal(t, "must be a valid integer", fieldMessages(httpErr)["id"])
}

func TestBindAndValidate_UpdateDefersPayloadValidation(t *testing.T) {
	c := newContext(http.MethodPut, `{"customer_name":""}`, "3")

	req := &model.UpdateCustomerRequest{}
	require.NoError(t, validation.BindAndValidate(c, req))
	assert.Equal(t, int64(3), req.ID)

	httpErr := requireHTTPError(t, validation.Validate(&req.CustomerPayload))
	assert.Equal(t, "is required", fieldMessages(httpErr)["customer_name"])
}

func TestBindAndValidate_OrderItems(t *testing.T) {
	c := newContext(http.MethodPost, `{"customer_id":1,"items":[10,0]}`, "")

	httpErr := requireHTTPError(t, validation.BindAndValidate(c, &model.PlaceOrderPayload{}))
	assert.Equal(t, "must be at least 1", fieldMessages(httpErr)["items[1]"])
}

func TestBindAndValidate_OrderItemsRequired(t *testing.T) {
	c := newContext(http.MethodPost, `{"customer_id":1}`, "")

	httpErr := requireHTTPError(t, validation.BindAndValidate(c, &model.PlaceOrderPayload{}))
	assert.Equal(t, "is required", fieldMessages(httpErr)["items"])
}

func TestValidate_CustomErrors(t *testing.T) {
	httpErr := requireHTTPError(t, validation.Validate(customPayload{}))
	assert.Equal(t, "cannot be blank", fieldMessages(httpErr)["note"])
}

type customPayload struct{}

func (customPayload) Validate() error {
	return validation.CustomValidationErrors{{Field: "note", Message: "cannot be blank"}}
}
