package dto

import "time"

// WorkingDayDTO horario de un día (0=domingo .. 6=sábado), horas en HH:MM.
type WorkingDayDTO struct {
	DayOfWeek int    `json:"day_of_week" validate:"min=0,max=6"`
	DayName   string `json:"day_name,omitempty"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
	IsEnabled bool   `json:"is_enabled"`
}

// UpdateWorkingHoursRequest reemplaza el horario activo.
type UpdateWorkingHoursRequest struct {
	Name          string          `json:"name" validate:"required,max=100"`
	IsActive      bool            `json:"is_active"`
	StartDay      int             `json:"start_day" validate:"min=0,max=6"`
	EndDay        int             `json:"end_day" validate:"min=0,max=6"`
	StartTime     string          `json:"start_time" validate:"required"`
	EndTime       string          `json:"end_time" validate:"required"`
	AllowWeekends bool            `json:"allow_weekends"`
	Days          []WorkingDayDTO `json:"days" validate:"max=7,dive"`
}

// WorkingHoursResponse horario activo.
type WorkingHoursResponse struct {
	ID            string                     `json:"id"`
	Name          string                     `json:"name"`
	IsActive      bool                       `json:"is_active"`
	StartDay      int                        `json:"start_day"`
	EndDay        int                        `json:"end_day"`
	StartTime     string                     `json:"start_time"`
	EndTime       string                     `json:"end_time"`
	AllowWeekends bool                       `json:"allow_weekends"`
	Description   string                     `json:"description"`
	Days          []WorkingDayDTO            `json:"days"`
	Exceptions    []WorkingHoursExceptionDTO `json:"exceptions"`
	UpdatedAt     time.Time                  `json:"updated_at"`
}

// WorkingHoursExceptionDTO excepción por fecha (YYYY-MM-DD).
type WorkingHoursExceptionDTO struct {
	ID           string  `json:"id,omitempty"`
	Date         string  `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime    *string `json:"start_time,omitempty"`
	EndTime      *string `json:"end_time,omitempty"`
	IsWorkingDay bool    `json:"is_working_day"`
	Reason       string  `json:"reason" validate:"max=200"`
}

// WorkingHoursStatusResponse estado actual del horario.
type WorkingHoursStatusResponse struct {
	IsWithinWorkingHours bool       `json:"is_within_working_hours"`
	CurrentTime          time.Time  `json:"current_time"`
	Description          string     `json:"description"`
	NextOpening          *time.Time `json:"next_opening,omitempty"`
}
