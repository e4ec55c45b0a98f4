package middleware

import (
	"strconv"
	"time"

	"github.com/deppfellow/storefront/internal/errs"
	"github.com/deppfellow/storefront/internal/metrics"
	"github.com/deppfellow/storefront/internal/sqlerr"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Metrics records request count, latency and in-flight requests. Requests
// are labelled by route template (e.g. /customers/:id), never the raw URL.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			metrics.RequestInFlight.Inc()
			defer metrics.RequestInFlight.Dec()

			err := next(c)

			status := strconv.Itoa(ResponseStatus(c, err))
			path := c.Path()
			method := c.Request().Method

			metrics.RequestDuration.WithLabelValues(method, path, status).Observe(time.Since(start).Seconds())
			metrics.RequestTotal.WithLabelValues(method, path, status).Inc()

			return err
		}
	}
}

// ResponseStatus is the status the client will see. A returned error has
// not been written yet when middleware observes it, so its status is the
// one GlobalErrorHandler will pick.
func ResponseStatus(c echo.Context, err error) int {
	if err == nil {
		return c.Response().Status
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		return echoErr.Code
	}

	var httpErr *errs.HTTPError
	if errors.As(sqlerr.HandleError(err), &httpErr) {
		return httpErr.Status
	}

	return c.Response().Status
}
