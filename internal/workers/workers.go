package workers

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-accounts/internal/config"
	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/internal/service"
)

type Workers struct {
	workers []Worker
}

// NewWorkers builds the background workers enabled by cfg. A zero purge
// interval disables the reset token purger.
func NewWorkers(services *service.Services, cfg config.Workers, logger *logger.Logger) *Workers {
	w := &Workers{}

	if cfg.PurgeInterval > 0 {
		w.workers = append(w.workers, NewResetTokenPurger(services.AccountService, cfg.PurgeInterval, logger))
	}

	logger.Info().Int("count", len(w.workers)).Msg("workers created")
	return w
}

// Run starts every worker in its own goroutine and blocks until all of them
// have returned after ctx is done.
func (w *Workers) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, worker := range w.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker.Run(ctx)
		}()
	}
	wg.Wait()
}
