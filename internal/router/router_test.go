package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/deppfellow/storefront/internal/config"
	"github.com/deppfellow/storefront/internal/errs"
	"github.com/deppfellow/storefront/internal/handler"
	"github.com/deppfellow/storefront/internal/model"
	"github.com/deppfellow/storefront/internal/repository/memstore"
	"github.com/deppfellow/storefront/internal/server"
	"github.com/deppfellow/storefront/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, rateLimit float64) *echo.Echo {
	t.Helper()

	observability := config.DefaultObservabilityConfig()
	observability.HealthChecks.Enabled = false

	logger := zerolog.Nop()
	s := &server.Server{
		Config: &config.Config{
			Primary: config.Primary{Env: "test"},
			Server: config.ServerConfig{
				CORSAllowedOrigins: []string{"*"},
				RateLimit:          rateLimit,
			},
			Observability: observability,
		},
		Logger: &logger,
	}

	store := memstore.New()
	services := service.NewServicesWithStores(s, store, store, store)

	return NewRouter(s, handler.NewHandlers(s, services))
}

func do(t *testing.T, e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func createID(t *testing.T, e *echo.Echo, path, body string) int64 {
	t.Helper()

	rec := do(t, e, http.MethodPost, path, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	res := decode[model.MessageResponse](t, rec)
	require.NotZero(t, res.ID)
	return res.ID
}

func TestCustomers_CreateThenGet(t *testing.T) {
	e := newTestRouter(t, 1000)

	id := createID(t, e, "/customers", `{"customer_name":"Ana","email":"ana@x.com","phone":"5551234"}`)

	rec := do(t, e, http.MethodGet, fmt.Sprintf("/customers/%d", id), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.Customer{
		ID:           id,
		CustomerName: "Ana",
		Email:        "ana@x.com",
		Phone:        "5551234",
	}, decode[model.Customer](t, rec))

	rec = do(t, e, http.MethodGet, "/customers", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]model.Customer](t, rec), 1)
}

func TestCustomers_ListEmptyIsArray(t *testing.T) {
	e := newTestRouter(t, 1000)

	rec := do(t, e, http.MethodGet, "/customers", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestCustomers_CreateIgnoresBodyID(t *testing.T) {
	e := newTestRouter(t, 1000)

	id := createID(t, e, "/customers", `{"id":77,"customer_name":"Ana","email":"ana@x.com","phone":"1"}`)
	assert.NotEqual(t, int64(77), id)
}

func TestCustomers_ValidationErrors(t *testing.T) {
	e := newTestRouter(t, 1000)

	rec := do(t, e, http.MethodPost, "/customers", `{"customer_name":"Ana","phone":5}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decode[errs.HTTPError](t, rec)
	assert.Equal(t, "BAD_REQUEST", body.Code)
	assert.Equal(t, errs.FieldErrors{"phone": {"must be a string"}}, body.Errors)

	rec = do(t, e, http.MethodPost, "/customers", `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	raw := decode[map[string]any](t, rec)
	assert.Equal(t, map[string]any{
		"customer_name": []any{"is required"},
		"email":         []any{"is required"},
		"phone":         []any{"is required"},
	}, raw["errors"])

	rec = do(t, e, http.MethodPost, "/customers", `{"customer_name":"Ana","email":"ana@x.com","phone":"12345678901234567"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, errs.FieldErrors{"phone": {"must not exceed 16 characters"}}, decode[errs.HTTPError](t, rec).Errors)
}

func TestCustomers_MalformedJSONAndPathID(t *testing.T) {
	e := newTestRouter(t, 1000)

	rec := do(t, e, http.MethodPost, "/customers", `{"customer_name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, e, http.MethodPost, "/customers", `[]`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Request body must be a JSON object", decode[errs.HTTPError](t, rec).Message)

	rec = do(t, e, http.MethodGet, "/customers/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCustomers_MissingRows(t *testing.T) {
	e := newTestRouter(t, 1000)

	rec := do(t, e, http.MethodGet, "/customers/42", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Customer not found", decode[errs.HTTPError](t, rec).Message)

	rec = do(t, e, http.MethodDelete, "/customers/42", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, e, http.MethodPut, "/customers/42", `{}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNonPositiveIDsAreNotFound(t *testing.T) {
	e := newTestRouter(t, 1000)

	tests := []struct {
		method  string
		path    string
		body    string
		message string
	}{
		{http.MethodGet, "/customers/0", "", "Customer not found"},
		{http.MethodPut, "/customers/0", `{"customer_name":"Ana","email":"ana@x.com","phone":"1"}`, "Customer not found"},
		{http.MethodDelete, "/customers/-3", "", "Customer not found"},
		{http.MethodGet, "/products/0", "", "Product not found"},
		{http.MethodPut, "/products/-1", `{"product_name":"Lamp","price":1}`, "Product not found"},
		{http.MethodDelete, "/products/0", "", "Product not found"},
		{http.MethodGet, "/order_items/0", "", "Order not found"},
		{http.MethodGet, "/orders/0/track", "", "Order not found"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := do(t, e, tt.method, tt.path, tt.body)
			require.Equal(t, http.StatusNotFound, rec.Code, rec.Body.String())
			assert.Equal(t, tt.message, decode[errs.HTTPError](t, rec).Message)
		})
	}
}

func TestCustomers_UpdateAndDelete(t *testing.T) {
	e := newTestRouter(t, 1000)

	id := createID(t, e, "/customers", `{"customer_name":"Ana","email":"ana@x.com","phone":"1"}`)
	path := fmt.Sprintf("/customers/%d", id)

	rec := do(t, e, http.MethodPut, path, `{"customer_name":"Ana"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, e, http.MethodPut, path, `{"customer_name":"Bea","email":"bea@x.com","phone":"2"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, decode[model.MessageResponse](t, rec).ID)

	rec = do(t, e, http.MethodGet, path, "")
	assert.Equal(t, "Bea", decode[model.Customer](t, rec).CustomerName)

	rec = do(t, e, http.MethodDelete, path, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, e, http.MethodGet, path, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProducts_CRUD(t *testing.T) {
	e := newTestRouter(t, 1000)

	rec := do(t, e, http.MethodPost, "/products", `{"product_name":"Lamp","price":"cheap"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, errs.FieldErrors{"price": {"must be a number"}}, decode[errs.HTTPError](t, rec).Errors)

	id := createID(t, e, "/products", `{"product_name":"Lamp","price":19.9}`)
	path := fmt.Sprintf("/products/%d", id)

	rec = do(t, e, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.Product{ID: id, ProductName: "Lamp", Price: 19.9}, decode[model.Product](t, rec))

	rec = do(t, e, http.MethodPut, path, `{"product_name":"Lamp XL","price":0}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, e, http.MethodGet, "/products", "")
	assert.Equal(t, []model.Product{{ID: id, ProductName: "Lamp XL", Price: 0}}, decode[[]model.Product](t, rec))

	rec = do(t, e, http.MethodDelete, path, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, e, http.MethodDelete, path, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Product not found", decode[errs.HTTPError](t, rec).Message)
}

func TestOrders_PlaceAndTrack(t *testing.T) {
	e := newTestRouter(t, 1000)

	customerID := createID(t, e, "/customers", `{"customer_name":"Ana","email":"ana@x.com","phone":"1"}`)
	lamp := createID(t, e, "/products", `{"product_name":"Lamp","price":10}`)
	desk := createID(t, e, "/products", `{"product_name":"Desk","price":99}`)
	unknown := desk + 100

	rec := do(t, e, http.MethodPost, "/orders", fmt.Sprintf(
		`{"customer_id":%d,"items":[%d,%d,%d],"order_date":"1999-01-01"}`, customerID, lamp, desk, unknown))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	placed := decode[model.PlaceOrderResponse](t, rec)
	assert.Equal(t, []int64{unknown}, placed.SkippedItems)

	rec = do(t, e, http.MethodGet, fmt.Sprintf("/orders/%d/track", placed.OrderID), "")
	require.Equal(t, http.StatusOK, rec.Code)

	tracking := decode[model.OrderTracking](t, rec)
	assert.Equal(t, placed.OrderID, tracking.OrderID)
	assert.Equal(t, time.Now().UTC().Format(model.DateLayout), tracking.OrderDate)
	assert.Equal(t, []model.OrderItem{{ID: lamp, Name: "Lamp"}, {ID: desk, Name: "Desk"}}, tracking.Items)

	rec = do(t, e, http.MethodGet, fmt.Sprintf("/order_items/%d", placed.OrderID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]model.Product](t, rec), 2)

	rec = do(t, e, http.MethodDelete, fmt.Sprintf("/customers/%d", customerID), "")
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "CUSTOMER_HAS_ORDERS", decode[errs.HTTPError](t, rec).Code)

	rec = do(t, e, http.MethodDelete, fmt.Sprintf("/products/%d", lamp), "")
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "PRODUCT_IN_ORDER", decode[errs.HTTPError](t, rec).Code)
}

func TestOrders_Errors(t *testing.T) {
	e := newTestRouter(t, 1000)

	rec := do(t, e, http.MethodPost, "/orders", `{"customer_id":9,"items":[]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, map[string]any{"customer_id": []any{"customer does not exist"}}, decode[map[string]any](t, rec)["errors"])

	rec = do(t, e, http.MethodPost, "/orders", `{"customer_id":1,"items":["x"]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, e, http.MethodGet, "/order_items/5", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Order not found", decode[errs.HTTPError](t, rec).Message)

	rec = do(t, e, http.MethodGet, "/orders/5/track", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSystemRoutes(t *testing.T) {
	e := newTestRouter(t, 1000)

	rec := do(t, e, http.MethodGet, "/status", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", decode[map[string]any](t, rec)["status"])

	rec = do(t, e, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "storefront_http_requests_total")

	rec = do(t, e, http.MethodGet, "/nope", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", decode[errs.HTTPError](t, rec).Message)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRateLimit(t *testing.T) {
	e := newTestRouter(t, 1)

	rec := do(t, e, http.MethodGet, "/customers", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, e, http.MethodGet, "/customers", "")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	body := decode[errs.HTTPError](t, rec)
	require.NotNil(t, body.Action)
	assert.Equal(t, errs.ActionTypeRetry, body.Action.Type)
}
