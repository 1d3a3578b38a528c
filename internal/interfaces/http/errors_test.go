package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Warehousing-api/internal/application/dto"
	"github.com/jhoicas/Warehousing-api/internal/domain"
)

func errorApp(err error) *fiber.App {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error { return respondError(c, err) })
	return app
}

func decodeError(t *testing.T, app *fiber.App, req *http.Request) (int, dto.ErrorResponse) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestRespondError_MapeaErroresDeDominio(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{fmt.Errorf("traslado: %w", domain.ErrInvalidTransition), http.StatusConflict, "INVALID_TRANSITION"},
		{domain.ErrSameStore, http.StatusBadRequest, "SAME_STORE"},
		{domain.ErrNegativeStock, http.StatusConflict, "NEGATIVE_STOCK"},
		{domain.ErrEmailAlreadyExists, http.StatusConflict, "EMAIL_EXISTS"},
		{domain.ErrOutsideWorkingHours, http.StatusForbidden, "OUTSIDE_WORKING_HOURS"},
		{fiber.ErrMethodNotAllowed, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED"},
		{errors.New("conexión rechazada"), http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			status, body := decodeError(t, errorApp(tc.err), httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, body.Code)
		})
	}
}

func TestRespondError_InternoNoExponeDetalle(t *testing.T) {
	_, body := decodeError(t, errorApp(errors.New("pq: password authentication failed")), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotContains(t, body.Message, "password")
}

func TestRespondError_FaltanteIncluyeDetalle(t *testing.T) {
	err := &domain.InsufficientStockError{Shortages: []domain.StockShortage{
		{ProductID: "p1", StoreID: "s1", Requested: decimal.NewFromInt(5), Available: decimal.NewFromInt(2)},
	}}
	status, body := decodeError(t, errorApp(err), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)
	require.Len(t, body.Details, 1)
	assert.Equal(t, "p1", body.Details[0].ProductID)
	assert.True(t, body.Details[0].Available.Equal(decimal.NewFromInt(2)))
}

func TestParseBody_ValidacionPorCampo(t *testing.T) {
	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		var in dto.TransferRequest
		if err := parseBody(c, &in); err != nil {
			return respondError(c, err)
		}
		return c.SendStatus(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{
		"from_store_id": "00000000-0000-0000-0000-000000000001",
		"to_store_id": "00000000-0000-0000-0000-000000000001",
		"items": [{"product_id": "x"}]
	}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	status, body := decodeError(t, app, req)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Equal(t, "nefield=FromStoreID", body.Fields["to_store_id"])
	assert.Equal(t, "uuid", body.Fields["items[0].product_id"])
}

func TestParseBody_JSONInvalido(t *testing.T) {
	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		var in dto.TransferRequest
		return respondError(c, parseBody(c, &in))
	})
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"items": `))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	status, body := decodeError(t, app, req)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_BODY", body.Code)
}

func TestDateRange(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		from, to, err := dateRange(c)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"from": from, "to": to})
	})

	t.Run("to incluye el día completo", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/?from=2024-03-01&to=2024-03-01", nil), -1)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var body struct{ From, To string }
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Contains(t, body.From, "2024-03-01T00:00:00")
		assert.Contains(t, body.To, "2024-03-01T23:59:59.999999999")
	})

	t.Run("rango invertido", func(t *testing.T) {
		status, body := decodeError(t, app, httptest.NewRequest(http.MethodGet, "/?from=2024-03-02&to=2024-03-01", nil))
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "gtefield=from", body.Fields["to"])
	})

	t.Run("fecha inválida", func(t *testing.T) {
		status, body := decodeError(t, app, httptest.NewRequest(http.MethodGet, "/?from=01/03/2024", nil))
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Contains(t, body.Fields, "from")
	})
}

func TestRequireID_RechazaNoUUID(t *testing.T) {
	app := fiber.New()
	app.Get("/:id", func(c *fiber.Ctx) error {
		_, err := requireID(c, "id")
		return respondError(c, err)
	})
	status, body := decodeError(t, app, httptest.NewRequest(http.MethodGet, "/123", nil))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "uuid", body.Fields["id"])
}
