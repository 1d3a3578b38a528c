package activity

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Warehousing-api/internal/application/dto"
	"github.com/jhoicas/Warehousing-api/internal/application/ports"
	"github.com/jhoicas/Warehousing-api/internal/domain/entity"
	"github.com/jhoicas/Warehousing-api/internal/infrastructure/memory"
)

type failingRepo struct {
	*memory.ActivityLogRepo
}

func (failingRepo) Create(context.Context, *entity.UserActivityLog) error {
	return errors.New("conexión rechazada")
}

func TestRecord_TomaDatosDelActorYSerializaValores(t *testing.T) {
	repo := memory.NewActivityLogRepository(memory.NewDB())
	svc := NewService(repo, zerolog.Nop(), 0)
	ctx := ports.WithActor(context.Background(), ports.Actor{
		UserID: "u-1", Username: "ana", IPAddress: "10.0.0.7", UserAgent: "curl/8",
	})

	svc.Record(ctx, ports.ActivityEntry{
		Action:    entity.ActionUpdate,
		Module:    entity.ModuleCatalog,
		OldValues: map[string]string{"name": "viejo"},
		NewValues: map[string]string{"name": "nuevo"},
	})

	list, err := svc.List(context.Background(), dto.ActivityLogQuery{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	got := list.Items[0]
	assert.Equal(t, "ana", got.Username)
	assert.Equal(t, "10.0.0.7", got.IPAddress)
	assert.Equal(t, entity.SeverityInfo, got.Severity)
	assert.JSONEq(t, `{"name":"viejo"}`, got.OldValues)
	assert.JSONEq(t, `{"name":"nuevo"}`, got.NewValues)
}

func TestRecord_ErrorDeEscrituraNoSePropaga(t *testing.T) {
	var buf bytes.Buffer
	svc := NewService(failingRepo{}, zerolog.New(&buf), 0)

	assert.NotPanics(t, func() {
		svc.Record(context.Background(), ports.ActivityEntry{Action: entity.ActionLogin, Module: entity.ModuleAuth})
	})
	assert.Contains(t, buf.String(), "no se pudo registrar la actividad")
	assert.Contains(t, buf.String(), `"level":"error"`)
}

func TestRecord_ContextoCanceladoIgualGuarda(t *testing.T) {
	repo := memory.NewActivityLogRepository(memory.NewDB())
	svc := NewService(repo, zerolog.Nop(), 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc.Record(ctx, ports.ActivityEntry{Action: entity.ActionLogout, Module: entity.ModuleAuth})

	list, err := svc.List(context.Background(), dto.ActivityLogQuery{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
}

func TestClearOld_UsaRetencionPorDefecto(t *testing.T) {
	repo := memory.NewActivityLogRepository(memory.NewDB())
	svc := NewService(repo, zerolog.Nop(), 30)
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	svc.now = func() time.Time { return now.AddDate(0, 0, -45) }
	svc.Record(context.Background(), ports.ActivityEntry{Action: entity.ActionCreate, Module: entity.ModuleCatalog})
	svc.now = func() time.Time { return now.AddDate(0, 0, -5) }
	svc.Record(context.Background(), ports.ActivityEntry{Action: entity.ActionCreate, Module: entity.ModuleCatalog})
	svc.now = func() time.Time { return now }

	out, err := svc.ClearOld(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.Deleted)
	assert.Equal(t, now.AddDate(0, 0, -30), out.Cutoff)
}

func TestSummaryYByUser(t *testing.T) {
	repo := memory.NewActivityLogRepository(memory.NewDB())
	svc := NewService(repo, zerolog.Nop(), 0)
	a := ports.WithActor(context.Background(), ports.Actor{UserID: "u-a"})
	b := ports.WithActor(context.Background(), ports.Actor{UserID: "u-b"})

	svc.Record(a, ports.ActivityEntry{Action: entity.ActionLogin, Module: entity.ModuleAuth})
	svc.Record(a, ports.ActivityEntry{Action: entity.ActionAdjust, Module: entity.ModuleInventory})
	svc.Record(b, ports.ActivityEntry{Action: entity.ActionLogin, Module: entity.ModuleAuth, Severity: entity.SeverityWarning})

	sum, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Total)
	assert.Equal(t, 3, sum.Today)
	assert.Equal(t, 2, sum.ByAction[entity.ActionLogin])
	assert.Equal(t, 1, sum.BySeverity[entity.SeverityWarning])

	mine, err := svc.ByUser(context.Background(), "u-a", dto.ActivityLogQuery{})
	require.NoError(t, err)
	assert.Equal(t, 2, mine.Page.Total)
}
