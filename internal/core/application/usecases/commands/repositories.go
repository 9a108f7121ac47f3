// Package commands contains the operations that change dispatch state.
// Every handler follows the same shape: validate the command, authorize the caller,
// mutate aggregates inside one unit of work, commit, then publish one event.
package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	VehicleRepoFactory interface {
		VehicleRepository() ports.VehicleRepository
	}

	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	LocationRepoFactory interface {
		LocationRepository() ports.LocationRepository
	}

	// UoW spans every aggregate a dispatch command may touch.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().Get(ctx, id)
	//   v, err := uow.VehicleRepository().Get(ctx, vehicleID)
	//   // ... mutate both
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		VehicleRepoFactory
		UserRepoFactory
		LocationRepoFactory
	}

	// UoWFactory creates new unit of work instances.
	UoWFactory interface {
		Create() UoW
	}
)
