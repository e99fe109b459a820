package jobs

import (
	"fmt"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	dispatchTickJob     *DispatchTickJob
	stuckCourierScanJob *StuckCourierScanJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	offerNextOrderHandler commands.OfferNextOrderCommandHandler,
	flagStuckCouriersHandler commands.FlagStuckCouriersCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		dispatchTickJob:     NewDispatchTickJob(offerNextOrderHandler, logger),
		stuckCourierScanJob: NewStuckCourierScanJob(flagStuckCouriersHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.dispatchTickJob.Start(); err != nil {
		return fmt.Errorf("failed to start dispatch tick job: %w", err)
	}

	if err := jm.stuckCourierScanJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.dispatchTickJob.Stop()
		return fmt.Errorf("failed to start stuck courier scan job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.stuckCourierScanJob.Stop()
	jm.dispatchTickJob.Stop()
}
