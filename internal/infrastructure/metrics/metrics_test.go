package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_CuentaPorPlantillaDeRuta(t *testing.T) {
	m := New("api", "test")
	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/api/products/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	for _, id := range []string{"a", "b"} {
		resp, err := app.Test(httptest.NewRequest("GET", "/api/products/"+id, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("api", "GET", "/api/products/:id", "200")))
}

func TestBusinessMetrics_Contadores(t *testing.T) {
	m := New("api", "test")
	m.LedgerEntry("SALE")
	m.LedgerEntry("SALE")
	m.TransferFinished("COMPLETED")
	m.OrderFinished("PURCHASE", "CANCELLED")
	m.WorkingHoursDenied()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ledgerEntries.WithLabelValues("api", "SALE")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.transfersFinished.WithLabelValues("api", "COMPLETED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ordersFinished.WithLabelValues("api", "PURCHASE", "CANCELLED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.workingHoursDenied))
}

func TestHandler_ExponeMetricas(t *testing.T) {
	m := New("api", "test")
	m.WorkingHoursDenied()
	app := fiber.New()
	app.Get("/metrics", m.Handler())

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "test_working_hours_denied_total")
}
