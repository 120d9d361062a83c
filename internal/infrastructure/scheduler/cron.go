// Package scheduler ejecuta el escaneo de avisos con una expresión cron.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/jhoicas/boutique-api/internal/application/notifications"
)

// Scanner lo que el scheduler dispara en cada tick.
type Scanner interface {
	Scan(ctx context.Context) (notifications.ScanResult, error)
}

// Scheduler envoltura de cron con apagado ordenado.
type Scheduler struct {
	cron    *cron.Cron
	scanner Scanner
	log     zerolog.Logger
	timeout time.Duration
}

// New registra el escaneo con spec (formato de 5 campos) en la zona horaria indicada.
// Una zona vacía usa la hora local del proceso.
func New(spec, timezone string, scanner Scanner, log zerolog.Logger) (*Scheduler, error) {
	loc := time.Local
	if timezone != "" {
		l, err := time.LoadLocation(timezone)
		if err != nil {
			return nil, fmt.Errorf("scheduler: zona horaria %q: %w", timezone, err)
		}
		loc = l
	}
	s := &Scheduler{
		cron:    cron.New(cron.WithLocation(loc)),
		scanner: scanner,
		log:     log,
		timeout: 2 * time.Minute,
	}
	if _, err := s.cron.AddFunc(spec, s.RunOnce); err != nil {
		return nil, fmt.Errorf("scheduler: expresión %q: %w", spec, err)
	}
	return s, nil
}

// RunOnce ejecuta un escaneo y registra el resultado.
func (s *Scheduler) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	result, err := s.scanner.Scan(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("escaneo de avisos falló")
		return
	}
	ev := s.log.Info().Dur("duration", time.Since(start))
	for kind, n := range result {
		ev = ev.Int(string(kind), n)
	}
	ev.Msg("escaneo de avisos completado")
}

// Start arranca el cron en segundo plano.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Msg("scheduler de avisos iniciado")
}

// Stop detiene el cron y espera al escaneo en curso o a que ctx expire.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.log.Warn().Msg("scheduler: apagado sin esperar al escaneo en curso")
	}
}
