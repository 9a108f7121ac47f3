package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/tracking"
)

// LocationRepository stores the append-only driver location reports.
type LocationRepository interface {
	Add(ctx context.Context, report *tracking.DriverLocation) error

	// GetLatest returns the most recent report of agentID or *errs.ObjectNotFoundError.
	GetLatest(ctx context.Context, agentID kernel.UUID) (*tracking.DriverLocation, error)
}
