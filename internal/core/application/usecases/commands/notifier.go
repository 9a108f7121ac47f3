package commands

import (
	"context"
	"log/slog"

	"dispatch/internal/core/domain/model/event"
	"dispatch/internal/core/ports"
)

// notifier publishes after commit. The bus is best effort: failures are logged
// and never reach the caller.
type notifier struct {
	publisher ports.EventPublisher
	logger    *slog.Logger
}

func newNotifier(publisher ports.EventPublisher, logger *slog.Logger, component string) notifier {
	return notifier{
		publisher: publisher,
		logger:    logger.With("component", component),
	}
}

func (n notifier) notify(ctx context.Context, e event.Event) {
	if err := n.publisher.Publish(ctx, e); err != nil {
		n.logger.WarnContext(ctx, "event not published", "event", e.Kind(), "error", err)
	}
}
