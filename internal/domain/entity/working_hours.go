package entity

import (
	"fmt"
	"time"
)

// WorkingHours horario laboral. Si Days tiene entradas se usan por día de la semana;
// si no, aplica la ventana StartDay..EndDay + StartTime..EndTime.
type WorkingHours struct {
	ID            string
	Name          string
	IsActive      bool
	StartDay      time.Weekday
	EndDay        time.Weekday
	StartTime     TimeOfDay
	EndTime       TimeOfDay
	AllowWeekends bool // viernes y sábado son fin de semana
	Days          []WorkingDay
	Exceptions    []WorkingHoursException
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// WorkingDay horario de un día de la semana.
type WorkingDay struct {
	DayOfWeek time.Weekday
	StartTime TimeOfDay
	EndTime   TimeOfDay
	IsEnabled bool
}

// WorkingHoursException excepción por fecha: feriado (IsWorkingDay=false) u horario especial.
type WorkingHoursException struct {
	ID             string
	WorkingHoursID string
	Date           time.Time // solo cuenta la fecha
	StartTime      *TimeOfDay
	EndTime        *TimeOfDay
	IsWorkingDay   bool
	Reason         string
}

// TimeOfDay minutos desde medianoche (0..1439).
type TimeOfDay int

// NewTimeOfDay construye hh:mm.
func NewTimeOfDay(hour, minute int) TimeOfDay { return TimeOfDay(hour*60 + minute) }

// TimeOfDayOf extrae la hora del día de t.
func TimeOfDayOf(t time.Time) TimeOfDay { return NewTimeOfDay(t.Hour(), t.Minute()) }

// Hour hora 0..23.
func (d TimeOfDay) Hour() int { return int(d) / 60 }

// Minute minuto 0..59.
func (d TimeOfDay) Minute() int { return int(d) % 60 }

// String formato HH:MM.
func (d TimeOfDay) String() string { return fmt.Sprintf("%02d:%02d", d.Hour(), d.Minute()) }

// ParseTimeOfDay interpreta "HH:MM" o "HH:MM:SS" (los segundos se ignoran).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return TimeOfDayOf(t), nil
		}
	}
	return 0, fmt.Errorf("hora inválida %q: se espera HH:MM", s)
}
