package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/vehicle"
)

// VehicleRepository defines the persistence contract for vehicle aggregates.
// Update follows the same compare-and-swap rules as OrderRepository.Update.
type VehicleRepository interface {
	Add(ctx context.Context, aggregate *vehicle.Vehicle) error
	Update(ctx context.Context, aggregate *vehicle.Vehicle) error
	Get(ctx context.Context, id kernel.UUID) (*vehicle.Vehicle, error)
}
