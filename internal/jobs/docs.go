// Package jobs provides scheduled background tasks for the dispatch service.
//
// Jobs are cron-based and use github.com/robfig/cron/v3 with seconds enabled,
// so both six-field expressions and descriptors such as "@every 10s" are accepted.
//
// # Available Jobs
//
// BusHealthJob pings the event bus (in-memory, AMQP or Postgres NOTIFY) and
// reconnects it when the ping fails. Every probe logs the number of attached
// WebSocket subscribers.
//
// # Usage
//
//	health := jobs.NewBusHealthJob(bus, hub, cfg.BusHealthSchedule, logger)
//	jobManager := jobs.NewJobManager(health)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
//   - A failed ping is logged as a warning and followed by one reconnect attempt
//   - A failed reconnect is logged as an error and retried on the next tick
//   - Failed job starts stop any already running jobs
package jobs
