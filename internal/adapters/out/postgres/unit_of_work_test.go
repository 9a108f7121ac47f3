package postgres_test

import (
	"context"
	"testing"

	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/storetest"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/core/domain/model/vehicle"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), order.Details{
		CustomerName:    "Jane",
		DeliveryAddress: "1 Main St",
	}, nil, nil)
	require.NoError(t, err)
	return o
}

func newVehicle(t *testing.T, plate string) *vehicle.Vehicle {
	t.Helper()
	v, err := vehicle.Register(kernel.NewUUID(), vehicle.Spec{
		LicensePlate: plate,
		Model:        "Transit",
		VehicleType:  "van",
	}, user.NewIdentity(kernel.NewUUID(), user.RoleAdmin))
	require.NoError(t, err)
	return v
}

func TestGormUnitOfWork_TransactionLifecycle(t *testing.T) {
	ctx := context.Background()
	uow := postgres.NewGormUnitOfWorkFactory(storetest.SQLite(t)).Create()

	require.Error(t, uow.Commit(ctx), "commit without begin")
	require.Error(t, uow.Rollback(ctx), "rollback without begin")

	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.Begin(ctx), "nested begin is a no-op")
	require.NoError(t, uow.Commit(ctx))
	require.Error(t, uow.Rollback(ctx), "rollback after commit")
}

func TestGormUnitOfWork_CommitWritesBothAggregates(t *testing.T) {
	ctx := context.Background()
	factory := postgres.NewGormUnitOfWorkFactory(storetest.SQLite(t))
	uow := factory.CreateGorm()

	o, v := newOrder(t), newVehicle(t, "uow-1")
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.OrderRepository().Add(ctx, o))
	require.NoError(t, uow.VehicleRepository().Add(ctx, v))
	require.NoError(t, uow.Commit(ctx))

	assert.Equal(t, []kernel.UUID{o.ID(), v.ID()}, uow.Tracked())

	reader := factory.Create()
	_, err := reader.OrderRepository().Get(ctx, o.ID())
	require.NoError(t, err)
	_, err = reader.VehicleRepository().Get(ctx, v.ID())
	require.NoError(t, err)
}

func TestGormUnitOfWork_RollbackDiscardsEverything(t *testing.T) {
	ctx := context.Background()
	factory := postgres.NewGormUnitOfWorkFactory(storetest.SQLite(t))
	uow := factory.CreateGorm()

	o, v := newOrder(t), newVehicle(t, "uow-2")
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.OrderRepository().Add(ctx, o))
	require.NoError(t, uow.VehicleRepository().Add(ctx, v))
	require.NoError(t, uow.Rollback(ctx))

	assert.Empty(t, uow.Tracked())

	reader := factory.Create()
	_, err := reader.OrderRepository().Get(ctx, o.ID())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	_, err = reader.VehicleRepository().Get(ctx, v.ID())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := postgres.Open(postgres.Options{Driver: "mysql"})
	require.ErrorIs(t, err, postgres.ErrUnknownDriver)
}
