package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Warehousing-api/internal/domain/entity"
)

// 2026-10-18 es domingo.
func at(day, hour, minute int) time.Time {
	return time.Date(2026, time.October, day, hour, minute, 0, 0, time.UTC)
}

func tod(h, m int) *entity.TimeOfDay {
	v := entity.NewTimeOfDay(h, m)
	return &v
}

func TestIsWithin_SinHorarioActivoPermite(t *testing.T) {
	assert.True(t, IsWithin(nil, at(24, 3, 0)))

	wh := Default()
	wh.IsActive = false
	assert.True(t, IsWithin(wh, at(24, 3, 0)))
}

func TestIsWithin_HorarioPorDefecto(t *testing.T) {
	wh := Default()

	assert.True(t, IsWithin(wh, at(18, 8, 0)), "domingo al abrir")
	assert.True(t, IsWithin(wh, at(19, 12, 30)), "lunes medio día")
	assert.True(t, IsWithin(wh, at(22, 17, 0)), "jueves al cerrar, límite inclusivo")
	assert.False(t, IsWithin(wh, at(22, 17, 1)), "jueves después del cierre")
	assert.False(t, IsWithin(wh, at(19, 7, 59)), "lunes antes de abrir")
	assert.False(t, IsWithin(wh, at(23, 10, 0)), "viernes")
	assert.False(t, IsWithin(wh, at(24, 10, 0)), "sábado")
}

func TestIsWithin_VentanaSinDias(t *testing.T) {
	wh := &entity.WorkingHours{
		IsActive:  true,
		StartDay:  time.Monday,
		EndDay:    time.Saturday,
		StartTime: entity.NewTimeOfDay(9, 0),
		EndTime:   entity.NewTimeOfDay(18, 0),
	}
	assert.True(t, IsWithin(wh, at(19, 9, 0)))
	assert.False(t, IsWithin(wh, at(23, 10, 0)), "viernes sin fines de semana permitidos")

	wh.AllowWeekends = true
	assert.True(t, IsWithin(wh, at(23, 10, 0)))
	assert.True(t, IsWithin(wh, at(24, 10, 0)))
	assert.False(t, IsWithin(wh, at(25, 10, 0)), "domingo fuera del rango")
}

func TestIsWithin_RangoQueCruzaSemana(t *testing.T) {
	wh := &entity.WorkingHours{
		IsActive:      true,
		AllowWeekends: true,
		StartDay:      time.Thursday,
		EndDay:        time.Monday,
		StartTime:     entity.NewTimeOfDay(8, 0),
		EndTime:       entity.NewTimeOfDay(12, 0),
	}
	assert.True(t, IsWithin(wh, at(18, 9, 0)))
	assert.True(t, IsWithin(wh, at(19, 9, 0)))
	assert.False(t, IsWithin(wh, at(20, 9, 0)), "martes fuera del rango")
}

func TestIsWithin_TurnoNocturno(t *testing.T) {
	wh := Default()
	for i := range wh.Days {
		wh.Days[i].StartTime = entity.NewTimeOfDay(22, 0)
		wh.Days[i].EndTime = entity.NewTimeOfDay(6, 0)
	}
	assert.True(t, IsWithin(wh, at(19, 23, 0)))
	assert.True(t, IsWithin(wh, at(19, 5, 0)))
	assert.False(t, IsWithin(wh, at(19, 12, 0)))
}

func TestIsWithin_Excepciones(t *testing.T) {
	wh := Default()
	wh.Exceptions = []entity.WorkingHoursException{
		{Date: at(19, 0, 0), IsWorkingDay: false, Reason: "feriado"},
		{Date: at(20, 0, 0), IsWorkingDay: true, StartTime: tod(10, 0), EndTime: tod(12, 0)},
		{Date: at(24, 0, 0), IsWorkingDay: true, Reason: "inventario anual"},
	}

	assert.False(t, IsWithin(wh, at(19, 10, 0)), "feriado")
	assert.False(t, IsWithin(wh, at(20, 9, 0)), "antes del horario especial")
	assert.True(t, IsWithin(wh, at(20, 11, 0)))
	assert.True(t, IsWithin(wh, at(24, 9, 0)), "sábado habilitado con horas base")
}

func TestNextOpening(t *testing.T) {
	wh := Default()

	next, ok := NextOpening(wh, at(22, 18, 0))
	require.True(t, ok)
	assert.Equal(t, at(25, 8, 0), next, "del jueves en la tarde al domingo")

	next, ok = NextOpening(wh, at(19, 7, 0))
	require.True(t, ok)
	assert.Equal(t, at(19, 8, 0), next)

	_, ok = NextOpening(nil, at(19, 7, 0))
	assert.False(t, ok)
}

func TestDescribe(t *testing.T) {
	wh := Default()
	assert.Equal(t,
		"Domingo 08:00-17:00, Lunes 08:00-17:00, Martes 08:00-17:00, Miércoles 08:00-17:00, Jueves 08:00-17:00",
		Describe(wh))
	assert.Equal(t, "Sin restricción de horario", Describe(nil))
}

func TestValidate(t *testing.T) {
	wh := Default()
	require.NoError(t, Validate(wh))

	wh.Days = append(wh.Days, entity.WorkingDay{DayOfWeek: time.Monday, IsEnabled: true})
	assert.Error(t, Validate(wh))

	assert.Error(t, Validate(&entity.WorkingHours{}))
}

func TestParseTimeOfDay(t *testing.T) {
	v, err := entity.ParseTimeOfDay("08:30")
	require.NoError(t, err)
	assert.Equal(t, "08:30", v.String())

	v, err = entity.ParseTimeOfDay("17:00:00")
	require.NoError(t, err)
	assert.Equal(t, entity.NewTimeOfDay(17, 0), v)

	_, err = entity.ParseTimeOfDay("25:00")
	assert.Error(t, err)
}
