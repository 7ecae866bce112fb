package jobs

import (
	"fmt"
	"log/slog"
	"time"
)

// Config holds cron specs with a seconds field.
type Config struct {
	OutboxRelaySchedule     string
	OutboxRelayBatchSize    int
	AssignmentSweepSchedule string
	AssignmentSweepMinAge   time.Duration
	AssignmentSweepBatch    int
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	outboxRelayJob     *OutboxRelayJob
	assignmentSweepJob *AssignmentSweepJob
}

// NewJobManager wires the outbox relay and the assignment sweep with their schedules from cfg.
func NewJobManager(
	relayHandler outboxRelayer,
	retryHandler pendingAssignmentRetrier,
	cfg Config,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		outboxRelayJob: NewOutboxRelayJob(relayHandler, cfg.OutboxRelaySchedule, cfg.OutboxRelayBatchSize, logger),
		assignmentSweepJob: NewAssignmentSweepJob(retryHandler, cfg.AssignmentSweepSchedule,
			cfg.AssignmentSweepMinAge, cfg.AssignmentSweepBatch, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.outboxRelayJob.Start(); err != nil {
		return fmt.Errorf("failed to start outbox relay job: %w", err)
	}

	if err := jm.assignmentSweepJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.outboxRelayJob.Stop()
		return fmt.Errorf("failed to start assignment sweep job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.assignmentSweepJob.Stop()
	jm.outboxRelayJob.Stop()
}
