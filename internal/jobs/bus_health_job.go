package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

const DefaultBusHealthSchedule = "@every 10s"

// checkTimeout bounds one probe, reconnect included.
const checkTimeout = time.Minute

// HealthProber is the part of an event bus the health job drives.
type HealthProber interface {
	Ping(ctx context.Context) error
	Reconnect(ctx context.Context) error
}

// SubscriberCounter reports how many WebSocket clients are attached.
type SubscriberCounter interface {
	Len() int
}

// BusHealthJob pings the event bus on a schedule and reconnects it when the
// ping fails. A slow reconnect makes the next tick skip instead of piling up.
type BusHealthJob struct {
	bus         HealthProber
	subscribers SubscriberCounter
	schedule    string
	cron        *cron.Cron
	logger      *slog.Logger
}

func NewBusHealthJob(bus HealthProber, subscribers SubscriberCounter, schedule string, logger *slog.Logger) *BusHealthJob {
	if schedule == "" {
		schedule = DefaultBusHealthSchedule
	}
	return &BusHealthJob{
		bus:         bus,
		subscribers: subscribers,
		schedule:    schedule,
		cron:        cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:      logger.With("component", "bus_health_job"),
	}
}

// Start registers the probe on the schedule and starts the scheduler.
func (j *BusHealthJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
		defer cancel()

		if err := j.Check(ctx); err != nil {
			j.logger.ErrorContext(ctx, "event bus unhealthy", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule %q: %w", j.schedule, err)
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "bus health job started", "schedule", j.schedule)
	return nil
}

// Check runs one probe. It returns an error only when the bus is down and
// reconnecting failed too.
func (j *BusHealthJob) Check(ctx context.Context) error {
	subscribers := 0
	if j.subscribers != nil {
		subscribers = j.subscribers.Len()
	}

	pingErr := j.bus.Ping(ctx)
	if pingErr == nil {
		j.logger.DebugContext(ctx, "event bus healthy", "subscribers", subscribers)
		return nil
	}

	j.logger.WarnContext(ctx, "event bus ping failed, reconnecting",
		"error", pingErr, "subscribers", subscribers)

	if err := j.bus.Reconnect(ctx); err != nil {
		return fmt.Errorf("reconnect after %w: %w", pingErr, err)
	}

	j.logger.InfoContext(ctx, "event bus reconnected", "subscribers", subscribers)
	return nil
}

// Stop waits for a running probe to finish.
func (j *BusHealthJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "bus health job stopped")
}
