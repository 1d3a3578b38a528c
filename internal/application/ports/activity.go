package ports

import "context"

// ActivityEntry datos de una acción a auditar. Usuario, IP y agente salen del Actor del contexto.
type ActivityEntry struct {
	Action      string
	Description string
	EntityType  string
	EntityID    string
	OldValues   any
	NewValues   any
	Module      string
	Severity    string // vacío = INFO
}

// ActivityRecorder registra actividad sin devolver errores: un fallo de auditoría
// nunca interrumpe la operación principal.
type ActivityRecorder interface {
	Record(ctx context.Context, e ActivityEntry)
}

// NopActivity descarta todas las entradas.
type NopActivity struct{}

func (NopActivity) Record(context.Context, ActivityEntry) {}
