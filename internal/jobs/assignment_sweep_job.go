package jobs

import (
	"context"
	"log/slog"
	"time"

	"fooddelivery/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

type pendingAssignmentRetrier interface {
	Handle(ctx context.Context, command commands.RetryPendingAssignmentsCommand) (int, error)
}

// AssignmentSweepJob retries auto-assignment for orders that have been ReadyForDelivery
// for at least minAge without a courier.
type AssignmentSweepJob struct {
	handler   pendingAssignmentRetrier
	schedule  string
	minAge    time.Duration
	batchSize int
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewAssignmentSweepJob creates a sweep that, on every tick of schedule, retries up to
// batchSize orders that became ReadyForDelivery more than minAge ago.
func NewAssignmentSweepJob(
	handler pendingAssignmentRetrier,
	schedule string,
	minAge time.Duration,
	batchSize int,
	logger *slog.Logger,
) *AssignmentSweepJob {
	return &AssignmentSweepJob{
		handler:   handler,
		schedule:  schedule,
		minAge:    minAge,
		batchSize: batchSize,
		cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:    logger.With("component", "assignment_sweep_job"),
	}
}

// Run performs one sweep.
func (j *AssignmentSweepJob) Run(ctx context.Context) {
	cmd, err := commands.NewRetryPendingAssignmentsCommand(j.minAge, j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Assignment sweep job misconfigured", "error", err)
		return
	}

	assigned, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Assignment sweep job failed", "error", err)
		return
	}
	if assigned > 0 {
		j.logger.InfoContext(ctx, "Pending orders assigned", "count", assigned)
	}
}

// Start registers the sweep with the scheduler and starts it.
func (j *AssignmentSweepJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Assignment sweep job started", "schedule", j.schedule)
	return nil
}

// Stop waits for a running sweep to finish.
func (j *AssignmentSweepJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Assignment sweep job stopped")
}
