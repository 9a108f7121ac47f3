package commands_test

import (
	"context"
	"io"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/event"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/tracking"
	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/core/domain/model/vehicle"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockVehicleRepository struct{ mock.Mock }

func (m *MockVehicleRepository) Add(ctx context.Context, v *vehicle.Vehicle) error {
	return m.Called(ctx, v).Error(0)
}

func (m *MockVehicleRepository) Update(ctx context.Context, v *vehicle.Vehicle) error {
	return m.Called(ctx, v).Error(0)
}

func (m *MockVehicleRepository) Get(ctx context.Context, id kernel.UUID) (*vehicle.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vehicle.Vehicle), args.Error(1)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Add(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

type MockLocationRepository struct{ mock.Mock }

func (m *MockLocationRepository) Add(ctx context.Context, d *tracking.DriverLocation) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockLocationRepository) GetLatest(ctx context.Context, agentID kernel.UUID) (*tracking.DriverLocation, error) {
	args := m.Called(ctx, agentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tracking.DriverLocation), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

func (m *MockUoW) VehicleRepository() ports.VehicleRepository {
	return m.Called().Get(0).(ports.VehicleRepository)
}

func (m *MockUoW) UserRepository() ports.UserRepository {
	return m.Called().Get(0).(ports.UserRepository)
}

func (m *MockUoW) LocationRepository() ports.LocationRepository {
	return m.Called().Get(0).(ports.LocationRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	return m.Called().Get(0).(commands.UoW)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, e event.Event) error {
	return m.Called(ctx, e).Error(0)
}

type MockHasher struct{ mock.Mock }

func (m *MockHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockHasher) Compare(hash, password string) error {
	return m.Called(hash, password).Error(0)
}

type MockIssuer struct{ mock.Mock }

func (m *MockIssuer) Issue(identity user.Identity) (string, error) {
	args := m.Called(identity)
	return args.String(0), args.Error(1)
}

// fixture bundles the mocks a handler test needs. Repository accessors and
// Rollback may be called any number of times; Begin and Commit are asserted.
type fixture struct {
	orders    *MockOrderRepository
	vehicles  *MockVehicleRepository
	users     *MockUserRepository
	locations *MockLocationRepository
	uow       *MockUoW
	factory   *MockUoWFactory
	publisher *MockPublisher
	logger    *slog.Logger
}

func newFixture() *fixture {
	f := &fixture{
		orders:    new(MockOrderRepository),
		vehicles:  new(MockVehicleRepository),
		users:     new(MockUserRepository),
		locations: new(MockLocationRepository),
		uow:       new(MockUoW),
		factory:   new(MockUoWFactory),
		publisher: new(MockPublisher),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	f.factory.On("Create").Return(f.uow).Maybe()
	f.uow.On("Begin", mock.Anything).Return(nil).Maybe()
	f.uow.On("Rollback", mock.Anything).Return(nil).Maybe()
	f.uow.On("OrderRepository").Return(f.orders).Maybe()
	f.uow.On("VehicleRepository").Return(f.vehicles).Maybe()
	f.uow.On("UserRepository").Return(f.users).Maybe()
	f.uow.On("LocationRepository").Return(f.locations).Maybe()
	return f
}

func (f *fixture) expectCommit() {
	f.uow.On("Commit", mock.Anything).Return(nil).Once()
}

func (f *fixture) expectPublish(kind event.Kind) {
	f.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e event.Event) bool {
		return e.Kind() == kind
	})).Return(nil).Once()
}

func (f *fixture) assertExpectations(t mock.TestingT) {
	f.orders.AssertExpectations(t)
	f.vehicles.AssertExpectations(t)
	f.users.AssertExpectations(t)
	f.locations.AssertExpectations(t)
	f.uow.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func identity(role user.Role) user.Identity {
	return user.NewIdentity(kernel.NewUUID(), role)
}

func newAgent(id kernel.UUID) *user.User {
	u, err := user.RestoreUser(user.State{
		ID:           id,
		Name:         "Agent",
		Email:        "agent-" + id.String() + "@example.com",
		PasswordHash: "hash",
		Role:         user.RoleAgent,
		Version:      1,
	})
	if err != nil {
		panic(err)
	}
	return u
}

func newUserWithRole(role user.Role) *user.User {
	id := kernel.NewUUID()
	u, err := user.RestoreUser(user.State{
		ID:           id,
		Name:         "Someone",
		Email:        "user-" + id.String() + "@example.com",
		PasswordHash: "hash",
		Role:         role,
		Version:      1,
	})
	if err != nil {
		panic(err)
	}
	return u
}

func newPendingOrder() *order.Order {
	o, err := order.NewOrder(kernel.NewUUID(), order.Details{
		CustomerName:    "Jane",
		DeliveryAddress: "1 Main St",
	}, nil, nil)
	if err != nil {
		panic(err)
	}
	return o
}

func newApprovedVehicle() *vehicle.Vehicle {
	v, err := vehicle.Register(kernel.NewUUID(), vehicle.Spec{
		LicensePlate: "ab-123",
		Model:        "Transit",
		VehicleType:  "van",
	}, identity(user.RoleAdmin))
	if err != nil {
		panic(err)
	}
	return v
}
