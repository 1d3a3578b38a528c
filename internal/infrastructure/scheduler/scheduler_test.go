package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Warehousing-api/internal/application/dto"
)

type fakeCleaner struct {
	days []int
	err  error
}

func (f *fakeCleaner) ClearOld(_ context.Context, daysToKeep int) (*dto.ClearLogsResponse, error) {
	f.days = append(f.days, daysToKeep)
	if f.err != nil {
		return nil, f.err
	}
	return &dto.ClearLogsResponse{Deleted: 3}, nil
}

func TestAdd_ExpresionInvalida(t *testing.T) {
	s := New(time.UTC, zerolog.Nop())
	err := s.Add(Job{Name: "x", Schedule: "no es cron", Run: func(context.Context) error { return nil }})
	assert.Error(t, err)
}

func TestActivityCleanupJob_UsaRetencionConfigurada(t *testing.T) {
	c := &fakeCleaner{}
	j := ActivityCleanupJob("0 3 * * *", c)

	require.NoError(t, j.Run(context.Background()))
	assert.Equal(t, []int{0}, c.days)
	assert.Equal(t, "activity-log-cleanup", j.Name)

	c.err = errors.New("db caída")
	assert.Error(t, j.Run(context.Background()))
}

func TestStartStop(t *testing.T) {
	s := New(nil, zerolog.Nop())
	require.NoError(t, s.Add(ActivityCleanupJob("0 3 * * *", &fakeCleaner{})))
	s.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
