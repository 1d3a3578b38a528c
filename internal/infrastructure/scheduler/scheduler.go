// Package scheduler tareas periódicas del proceso API.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Warehousing-api/internal/application/dto"
)

// ActivityCleaner depura la bitácora; lo implementa activity.Service.
type ActivityCleaner interface {
	ClearOld(ctx context.Context, daysToKeep int) (*dto.ClearLogsResponse, error)
}

// Job tarea con expresión cron de cinco campos.
type Job struct {
	Name     string
	Schedule string
	Timeout  time.Duration
	Run      func(ctx context.Context) error
}

// Scheduler envoltura de cron con log por ejecución.
type Scheduler struct {
	cron *cron.Cron
	log  zerolog.Logger
}

// New crea el planificador en la zona horaria indicada.
func New(loc *time.Location, log zerolog.Logger) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{
		cron: cron.New(cron.WithLocation(loc), cron.WithChain(cron.Recover(cron.DefaultLogger))),
		log:  log,
	}
}

// Add registra un job; una expresión inválida devuelve error.
func (s *Scheduler) Add(j Job) error {
	timeout := j.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	_, err := s.cron.AddFunc(j.Schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		start := time.Now()
		if err := j.Run(ctx); err != nil {
			s.log.Error().Err(err).Str("job", j.Name).Msg("tarea programada falló")
			return
		}
		s.log.Info().Str("job", j.Name).Dur("elapsed", time.Since(start)).Msg("tarea programada ejecutada")
	})
	if err != nil {
		return fmt.Errorf("scheduler: job %s: %w", j.Name, err)
	}
	return nil
}

// Start arranca en segundo plano.
func (s *Scheduler) Start() { s.cron.Start() }

// Stop detiene y espera a que terminen los jobs en curso (o a que ctx expire).
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop().Done()
	select {
	case <-done:
	case <-ctx.Done():
	}
}

// ActivityCleanupJob depura la bitácora con la retención configurada.
func ActivityCleanupJob(schedule string, cleaner ActivityCleaner) Job {
	return Job{
		Name:     "activity-log-cleanup",
		Schedule: schedule,
		Run: func(ctx context.Context) error {
			_, err := cleaner.ClearOld(ctx, 0)
			return err
		},
	}
}
