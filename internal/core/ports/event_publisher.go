package ports

import (
	"context"

	"dispatch/internal/core/domain/model/event"
)

// EventPublisher hands a committed fact to the event bus.
// Callers treat failures as non-fatal: a mutation never fails because of the bus.
type EventPublisher interface {
	Publish(ctx context.Context, e event.Event) error
}
