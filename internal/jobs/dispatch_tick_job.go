package jobs

import (
	"context"
	"errors"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DispatchTickJob drives the automatic dispatch loop. Runs every second so
// scheduled orders are picked up as soon as their gate opens; there are no
// per-order timers to arm or cancel.
type DispatchTickJob struct {
	handler commands.OfferNextOrderCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewDispatchTickJob creates the dispatch tick job.
func NewDispatchTickJob(handler commands.OfferNextOrderCommandHandler, logger *slog.Logger) *DispatchTickJob {
	return &DispatchTickJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "dispatch_tick_job"),
	}
}

// Start begins the dispatch tick running every second.
func (j *DispatchTickJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()
		cmd, cmdErr := commands.NewOfferNextOrderCommand()
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Building dispatch tick command failed", "error", cmdErr)
			return
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			// Only log errors that are not expected business scenarios
			if !errors.Is(err, commands.ErrNoOfferableOrderFound) && !errors.Is(err, commands.ErrNoCouriersOnline) {
				j.logger.ErrorContext(ctx, "Dispatch tick failed", "error", err)
			}
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Dispatch tick job started (running every second)")
	return nil
}

// Stop stops the dispatch tick job.
func (j *DispatchTickJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Dispatch tick job stopped")
}
