package workinghours

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Warehousing-api/internal/application/dto"
	"github.com/jhoicas/Warehousing-api/internal/domain"
	"github.com/jhoicas/Warehousing-api/internal/infrastructure/memory"
)

type mapCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMapCache() *mapCache { return &mapCache{data: map[string][]byte{}} }

func (c *mapCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data[key], nil
}

func (c *mapCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *mapCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

type brokenCache struct{}

func (brokenCache) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("redis caído")
}
func (brokenCache) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("redis caído")
}
func (brokenCache) Delete(context.Context, string) error { return errors.New("redis caído") }

// 2026-10-18 es domingo.
func at(day, hour, minute int) time.Time {
	return time.Date(2026, 10, day, hour, minute, 0, 0, time.UTC)
}

func newService(opts Options) *Service {
	svc := NewService(memory.NewWorkingHoursRepository(memory.NewDB()), opts)
	svc.now = func() time.Time { return at(18, 10, 0) }
	return svc
}

func ptr(s string) *string { return &s }

func TestGet_CreaHorarioPorDefecto(t *testing.T) {
	svc := newService(Options{})
	ctx := context.Background()

	first, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.True(t, first.IsActive)
	assert.Equal(t, "08:00", first.StartTime)
	assert.Len(t, first.Days, 7)
	assert.Equal(t, "Domingo", first.Days[0].DayName)

	second, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestIsWithin_SinHorarioTodoPermitido(t *testing.T) {
	svc := newService(Options{})

	ok, err := svc.IsWithin(context.Background(), at(23, 3, 0))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIsWithin_VentanaPorDefectoInclusiva(t *testing.T) {
	svc := newService(Options{})
	ctx := context.Background()
	_, err := svc.Get(ctx)
	require.NoError(t, err)

	cases := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"domingo a media mañana", at(18, 10, 0), true},
		{"apertura exacta", at(19, 8, 0), true},
		{"cierre exacto", at(19, 17, 0), true},
		{"después del cierre", at(19, 17, 1), false},
		{"viernes", at(23, 10, 0), false},
		{"sábado", at(24, 10, 0), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := svc.IsWithin(ctx, tc.t)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ok)
		})
	}
}

func TestExceptions_FeriadoYHorarioEspecial(t *testing.T) {
	svc := newService(Options{})
	ctx := context.Background()

	holiday, err := svc.AddException(ctx, dto.WorkingHoursExceptionDTO{Date: "2026-10-19", Reason: "Festivo"})
	require.NoError(t, err)
	_, err = svc.AddException(ctx, dto.WorkingHoursExceptionDTO{
		Date: "2026-10-20", IsWorkingDay: true, StartTime: ptr("10:00"), EndTime: ptr("12:00"),
	})
	require.NoError(t, err)

	ok, err := svc.IsWithin(ctx, at(19, 10, 0))
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.IsWithin(ctx, at(20, 9, 0))
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = svc.IsWithin(ctx, at(20, 11, 0))
	require.NoError(t, err)
	assert.True(t, ok)

	list, err := svc.ListExceptions(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = svc.AddException(ctx, dto.WorkingHoursExceptionDTO{Date: "2026-10-19"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	require.NoError(t, svc.DeleteException(ctx, holiday.ID))
	ok, err = svc.IsWithin(ctx, at(19, 10, 0))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAddException_Validaciones(t *testing.T) {
	svc := newService(Options{})
	ctx := context.Background()

	_, err := svc.AddException(ctx, dto.WorkingHoursExceptionDTO{Date: "19/10/2026"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.AddException(ctx, dto.WorkingHoursExceptionDTO{Date: "2026-10-19", StartTime: ptr("08:00")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.AddException(ctx, dto.WorkingHoursExceptionDTO{
		Date: "2026-10-19", StartTime: ptr("08:00"), EndTime: ptr("12:00"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdate_HorarioPorDiaInvalidaCache(t *testing.T) {
	cache := newMapCache()
	svc := newService(Options{Cache: cache})
	ctx := context.Background()
	_, err := svc.Get(ctx)
	require.NoError(t, err)

	ok, err := svc.IsWithin(ctx, at(23, 10, 0))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NotEmpty(t, cache.data)

	out, err := svc.Update(ctx, dto.UpdateWorkingHoursRequest{
		Name: "Con viernes", IsActive: true, StartDay: 0, EndDay: 4, StartTime: "08:00", EndTime: "17:00",
		Days: []dto.WorkingDayDTO{{DayOfWeek: 5, StartTime: "09:00", EndTime: "13:00", IsEnabled: true}},
	})
	require.NoError(t, err)
	assert.Contains(t, out.Description, "Viernes 09:00-13:00")

	ok, err = svc.IsWithin(ctx, at(23, 10, 0))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUpdate_DatosInvalidos(t *testing.T) {
	svc := newService(Options{})
	ctx := context.Background()

	_, err := svc.Update(ctx, dto.UpdateWorkingHoursRequest{Name: "x", StartTime: "25:00", EndTime: "17:00"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Update(ctx, dto.UpdateWorkingHoursRequest{
		Name: "x", StartTime: "08:00", EndTime: "17:00",
		Days: []dto.WorkingDayDTO{
			{DayOfWeek: 1, StartTime: "08:00", EndTime: "12:00", IsEnabled: true},
			{DayOfWeek: 1, StartTime: "13:00", EndTime: "17:00", IsEnabled: true},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIsWithin_CacheCaidaConsultaLaBase(t *testing.T) {
	var buf bytes.Buffer
	svc := newService(Options{Cache: brokenCache{}, Logger: zerolog.New(&buf)})
	ctx := context.Background()
	_, err := svc.Get(ctx)
	require.NoError(t, err)

	ok, err := svc.IsWithin(ctx, at(23, 10, 0))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Contains(t, buf.String(), "caché de horario no disponible")
}

func TestStatus_ProximaApertura(t *testing.T) {
	svc := newService(Options{})
	ctx := context.Background()
	_, err := svc.Get(ctx)
	require.NoError(t, err)

	svc.now = func() time.Time { return at(23, 10, 0) }
	st, err := svc.Status(ctx)
	require.NoError(t, err)
	assert.False(t, st.IsWithinWorkingHours)
	require.NotNil(t, st.NextOpening)
	assert.Equal(t, at(25, 8, 0), *st.NextOpening)
}
