package dto

import "time"

// ActivityLogResponse entrada de la bitácora.
type ActivityLogResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id,omitempty"`
	Username    string    `json:"username,omitempty"`
	Action      string    `json:"action"`
	Description string    `json:"description"`
	EntityType  string    `json:"entity_type,omitempty"`
	EntityID    string    `json:"entity_id,omitempty"`
	OldValues   string    `json:"old_values,omitempty"`
	NewValues   string    `json:"new_values,omitempty"`
	IPAddress   string    `json:"ip_address,omitempty"`
	UserAgent   string    `json:"user_agent,omitempty"`
	Module      string    `json:"module"`
	Severity    string    `json:"severity"`
	CreatedAt   time.Time `json:"created_at"`
}

// ActivityLogListResponse lista paginada.
type ActivityLogListResponse struct {
	Items []ActivityLogResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// ActivityLogQuery filtros de GET /api/activity-logs.
type ActivityLogQuery struct {
	PageRequest
	UserID   string     `query:"user_id" validate:"omitempty,uuid"`
	Action   string     `query:"action"`
	Module   string     `query:"module"`
	Severity string     `query:"severity" validate:"omitempty,oneof=INFO WARNING ERROR CRITICAL"`
	From     *time.Time `query:"-"`
	To       *time.Time `query:"-"`
}

// ActivitySummaryResponse totales de la bitácora.
type ActivitySummaryResponse struct {
	Total      int            `json:"total"`
	Today      int            `json:"today"`
	ThisWeek   int            `json:"this_week"`
	ThisMonth  int            `json:"this_month"`
	ByAction   map[string]int `json:"by_action"`
	ByModule   map[string]int `json:"by_module"`
	BySeverity map[string]int `json:"by_severity"`
}

// ClearLogsResponse resultado de la depuración.
type ClearLogsResponse struct {
	Deleted int64     `json:"deleted"`
	Cutoff  time.Time `json:"cutoff"`
}
