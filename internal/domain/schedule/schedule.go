// Package schedule evalúa horarios laborales sin dependencias de infraestructura.
package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Warehousing-api/internal/domain/entity"
)

var dayNames = [...]string{"Domingo", "Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado"}

// DayName nombre en español del día.
func DayName(d time.Weekday) string { return dayNames[d] }

// Default horario por defecto: domingo a jueves de 08:00 a 17:00.
func Default() *entity.WorkingHours {
	start, end := entity.NewTimeOfDay(8, 0), entity.NewTimeOfDay(17, 0)
	wh := &entity.WorkingHours{
		Name:      "Horario por defecto",
		IsActive:  true,
		StartDay:  time.Sunday,
		EndDay:    time.Thursday,
		StartTime: start,
		EndTime:   end,
	}
	wh.Days = EnsureAllDays(wh)
	return wh
}

// EnsureAllDays devuelve los siete días; los faltantes se derivan de la ventana StartDay..EndDay.
func EnsureAllDays(wh *entity.WorkingHours) []entity.WorkingDay {
	byDay := make(map[time.Weekday]entity.WorkingDay, len(wh.Days))
	for _, d := range wh.Days {
		byDay[d.DayOfWeek] = d
	}
	out := make([]entity.WorkingDay, 0, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		if wd, ok := byDay[d]; ok {
			out = append(out, wd)
			continue
		}
		out = append(out, entity.WorkingDay{
			DayOfWeek: d,
			StartTime: wh.StartTime,
			EndTime:   wh.EndTime,
			IsEnabled: legacyDayOpen(wh, d),
		})
	}
	return out
}

// IsWithin indica si t cae dentro del horario. Sin horario activo todo está permitido.
// Los límites son inclusivos.
func IsWithin(wh *entity.WorkingHours, t time.Time) bool {
	if wh == nil || !wh.IsActive {
		return true
	}
	start, end, open := windowFor(wh, t)
	if !open {
		return false
	}
	return inWindow(entity.TimeOfDayOf(t), start, end)
}

// NextOpening próxima apertura estrictamente posterior a t (busca hasta dos semanas).
func NextOpening(wh *entity.WorkingHours, t time.Time) (time.Time, bool) {
	if wh == nil || !wh.IsActive {
		return time.Time{}, false
	}
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	for i := 0; i <= 14; i++ {
		day := midnight.AddDate(0, 0, i)
		start, _, open := windowFor(wh, day)
		if !open {
			continue
		}
		opening := day.Add(time.Duration(start) * time.Minute)
		if opening.After(t) {
			return opening, true
		}
	}
	return time.Time{}, false
}

// Describe texto legible del horario, ej. "Domingo 08:00-17:00, Lunes 08:00-17:00".
func Describe(wh *entity.WorkingHours) string {
	if wh == nil || !wh.IsActive {
		return "Sin restricción de horario"
	}
	var parts []string
	for _, d := range EnsureAllDays(wh) {
		if !d.IsEnabled {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %s-%s", DayName(d.DayOfWeek), d.StartTime, d.EndTime))
	}
	if len(parts) == 0 {
		return "Cerrado todos los días"
	}
	return strings.Join(parts, ", ")
}

// Validate revisa la coherencia de un horario antes de persistirlo.
func Validate(wh *entity.WorkingHours) error {
	if strings.TrimSpace(wh.Name) == "" {
		return fmt.Errorf("el nombre del horario es obligatorio")
	}
	seen := make(map[time.Weekday]bool, len(wh.Days))
	for _, d := range wh.Days {
		if d.DayOfWeek < time.Sunday || d.DayOfWeek > time.Saturday {
			return fmt.Errorf("día de la semana inválido: %d", d.DayOfWeek)
		}
		if seen[d.DayOfWeek] {
			return fmt.Errorf("día repetido: %s", DayName(d.DayOfWeek))
		}
		seen[d.DayOfWeek] = true
		if d.IsEnabled && d.StartTime == d.EndTime {
			return fmt.Errorf("%s: la hora de inicio y fin no pueden ser iguales", DayName(d.DayOfWeek))
		}
	}
	return nil
}

func windowFor(wh *entity.WorkingHours, t time.Time) (start, end entity.TimeOfDay, open bool) {
	if ex := exceptionFor(wh, t); ex != nil {
		if !ex.IsWorkingDay {
			return 0, 0, false
		}
		start, end = baseWindow(wh, t.Weekday())
		if ex.StartTime != nil {
			start = *ex.StartTime
		}
		if ex.EndTime != nil {
			end = *ex.EndTime
		}
		return start, end, true
	}
	if len(wh.Days) > 0 {
		for _, d := range wh.Days {
			if d.DayOfWeek == t.Weekday() {
				return d.StartTime, d.EndTime, d.IsEnabled
			}
		}
		return 0, 0, false
	}
	return wh.StartTime, wh.EndTime, legacyDayOpen(wh, t.Weekday())
}

// baseWindow horas de un día aunque esté deshabilitado; se usa para excepciones sin horas propias.
func baseWindow(wh *entity.WorkingHours, d time.Weekday) (entity.TimeOfDay, entity.TimeOfDay) {
	for _, wd := range wh.Days {
		if wd.DayOfWeek == d {
			return wd.StartTime, wd.EndTime
		}
	}
	return wh.StartTime, wh.EndTime
}

func exceptionFor(wh *entity.WorkingHours, t time.Time) *entity.WorkingHoursException {
	y, m, d := t.Date()
	for i := range wh.Exceptions {
		ey, em, ed := wh.Exceptions[i].Date.Date()
		if ey == y && em == m && ed == d {
			return &wh.Exceptions[i]
		}
	}
	return nil
}

func legacyDayOpen(wh *entity.WorkingHours, d time.Weekday) bool {
	if !wh.AllowWeekends && (d == time.Friday || d == time.Saturday) {
		return false
	}
	if wh.StartDay <= wh.EndDay {
		return d >= wh.StartDay && d <= wh.EndDay
	}
	// rango que cruza el fin de semana, ej. jueves..lunes
	return d >= wh.StartDay || d <= wh.EndDay
}

func inWindow(now, start, end entity.TimeOfDay) bool {
	if start <= end {
		return now >= start && now <= end
	}
	// turno nocturno
	return now >= start || now <= end
}
