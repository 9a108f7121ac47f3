package eventbus

import (
	"context"
	"encoding/json"
	"fmt"

	"dispatch/internal/core/domain/model/event"
)

// Publisher encodes events for a Bus. It implements ports.EventPublisher.
type Publisher struct {
	bus Bus
}

func NewPublisher(bus Bus) *Publisher {
	return &Publisher{bus: bus}
}

func (p *Publisher) Publish(ctx context.Context, e event.Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", e.Kind(), err)
	}
	if err = p.bus.Publish(ctx, payload); err != nil {
		return fmt.Errorf("publish %s event: %w", e.Kind(), err)
	}
	return nil
}
