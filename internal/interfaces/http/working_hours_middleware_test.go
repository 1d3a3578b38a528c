package http_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Warehousing-api/internal/application/ports"
	"github.com/jhoicas/Warehousing-api/internal/domain/entity"
	apphttp "github.com/jhoicas/Warehousing-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Warehousing-api/pkg/jwt"
)

type fakeSchedule struct {
	within bool
	err    error
	calls  atomic.Int32
}

func (f *fakeSchedule) IsWithin(context.Context, time.Time) (bool, error) {
	f.calls.Add(1)
	return f.within, f.err
}

type deniedCounter struct {
	ports.NopMetrics
	denied atomic.Int32
}

func (d *deniedCounter) WorkingHoursDenied() { d.denied.Add(1) }

// gateApp reproduce el orden del router: autenticación opcional y luego el control de horario.
func gateApp(sched *fakeSchedule, metrics ports.BusinessMetrics) *fiber.App {
	app := fiber.New()
	optionalAuth := func(c *fiber.Ctx) error {
		if c.Get(fiber.HeaderAuthorization) == "" {
			return c.Next()
		}
		return apphttp.AuthMiddleware(testJWTSecret)(c)
	}
	app.Use(optionalAuth, apphttp.WorkingHours(apphttp.WorkingHoursConfig{
		Checker: sched,
		Metrics: metrics,
		Logger:  zerolog.Nop(),
	}))
	ok := func(c *fiber.Ctx) error { return c.SendString("ok") }
	app.Get("/", ok)
	app.Get("/health", ok)
	app.Get("/docs/index.html", ok)
	app.Post("/api/auth/logout", ok)
	app.Get("/api/inventory", ok)
	return app
}

func TestWorkingHours_FueraDeHorarioRetorna403(t *testing.T) {
	sched := &fakeSchedule{within: false}
	metrics := &deniedCounter{}
	app := gateApp(sched, metrics)

	resp := doRequest(t, app, "/api/inventory", token(t, pkgjwt.Claims{Username: "ana"}))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "OUTSIDE_WORKING_HOURS")
	assert.Equal(t, int32(1), metrics.denied.Load())
}

func TestWorkingHours_DentroDeHorarioPasa(t *testing.T) {
	app := gateApp(&fakeSchedule{within: true}, nil)

	resp := doRequest(t, app, "/api/inventory", token(t, pkgjwt.Claims{Username: "ana"}))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestWorkingHours_AdminYPermisoEspecialPasan(t *testing.T) {
	sched := &fakeSchedule{within: false}
	app := gateApp(sched, nil)

	for name, claims := range map[string]pkgjwt.Claims{
		"admin":   {IsAdmin: true},
		"permiso": {Permissions: []string{entity.PermWorkOutsideHours}},
	} {
		t.Run(name, func(t *testing.T) {
			resp := doRequest(t, app, "/api/inventory", token(t, claims))
			defer resp.Body.Close()
			assert.Equal(t, http.StatusOK, resp.StatusCode)
		})
	}
	assert.Zero(t, sched.calls.Load(), "no debe consultar el horario para usuarios privilegiados")
}

func TestWorkingHours_RutasExcluidasNoSeConsultan(t *testing.T) {
	sched := &fakeSchedule{within: false}
	app := gateApp(sched, nil)
	auth := token(t, pkgjwt.Claims{Username: "ana"})

	for _, path := range []string{"/", "/health", "/docs/index.html"} {
		resp := doRequest(t, app, path, auth)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.Header.Set("Authorization", auth)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Zero(t, sched.calls.Load())
}

func TestWorkingHours_SinSesionPasa(t *testing.T) {
	sched := &fakeSchedule{within: false}
	resp := doRequest(t, gateApp(sched, nil), "/api/inventory", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Zero(t, sched.calls.Load())
}

func TestWorkingHours_ErrorDelHorarioPermiteAcceso(t *testing.T) {
	sched := &fakeSchedule{err: errors.New("db caída")}
	resp := doRequest(t, gateApp(sched, nil), "/api/inventory", token(t, pkgjwt.Claims{Username: "ana"}))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(1), sched.calls.Load())
}
