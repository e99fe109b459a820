package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// StuckCourierScanJob periodically cross-checks busy couriers against active
// orders and flags mismatches on the change feed. Every 30 seconds; the scan
// reads all busy couriers, so it stays off the per-second hot path.
type StuckCourierScanJob struct {
	handler commands.FlagStuckCouriersCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewStuckCourierScanJob creates the stuck-courier scan job.
func NewStuckCourierScanJob(handler commands.FlagStuckCouriersCommandHandler, logger *slog.Logger) *StuckCourierScanJob {
	return &StuckCourierScanJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "stuck_courier_scan_job"),
	}
}

// Start begins the scan running every 30 seconds.
func (j *StuckCourierScanJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		ctx := context.Background()
		cmd, cmdErr := commands.NewFlagStuckCouriersCommand()
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Building stuck scan command failed", "error", cmdErr)
			return
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Stuck courier scan failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stuck courier scan job started (running every 30 seconds)")
	return nil
}

// Stop stops the scan job.
func (j *StuckCourierScanJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stuck courier scan job stopped")
}
