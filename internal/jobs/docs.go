// Package jobs provides scheduled background tasks for the delivery service.
//
// Jobs use github.com/robfig/cron/v3 with a seconds field and skip a tick while the
// previous run is still going.
//
// # Available Jobs
//
// 1. OutboxRelayJob - publishes unpublished outbox messages to Kafka (default every second)
// 2. AssignmentSweepJob - retries auto-assignment of orders left in ReadyForDelivery (default every 30 seconds)
//
// # Usage
//
//	jobManager := jobs.NewJobManager(relayHandler, retryHandler, jobs.Config{...}, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - Relay stops at the first failed publish and retries from there on the next tick
// - Sweep logs per-order assignment failures at debug level; they are expected when no courier is free
// - Failed job starts will stop any already running jobs
package jobs
