package cmd

import (
	"log/slog"

	dispatchhttp "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	publisher  ports.EventPublisher
	hasher     ports.PasswordHasher
	issuer     ports.TokenIssuer
	logger     *slog.Logger
}

func NewCompositionRoot(
	gormDB *gorm.DB,
	publisher ports.EventPublisher,
	hasher ports.PasswordHasher,
	issuer ports.TokenIssuer,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  publisher,
		hasher:     hasher,
		issuer:     issuer,
		logger:     logger,
	}
}

func (c *CompositionRoot) uow() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.CreateGorm()
	})
}

func (c *CompositionRoot) CreateSignUpCommandHandler() commands.SignUpCommandHandler {
	return commands.NewSignUpCommandHandler(c.uow(), c.hasher, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateLogInCommandHandler() commands.LogInCommandHandler {
	return commands.NewLogInCommandHandler(c.uow(), c.hasher, c.issuer)
}

func (c *CompositionRoot) CreateSeedAdminCommandHandler() commands.SeedAdminCommandHandler {
	return commands.NewSeedAdminCommandHandler(c.uow(), c.hasher, c.logger)
}

func (c *CompositionRoot) CreateUpdateUserRoleCommandHandler() commands.UpdateUserRoleCommandHandler {
	return commands.NewUpdateUserRoleCommandHandler(c.uow(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.uow(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateApproveOrderCommandHandler() commands.ApproveOrderCommandHandler {
	return commands.NewApproveOrderCommandHandler(c.uow(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateAdvanceOrderCommandHandler() commands.AdvanceOrderCommandHandler {
	return commands.NewAdvanceOrderCommandHandler(c.uow(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateRegisterVehicleCommandHandler() commands.RegisterVehicleCommandHandler {
	return commands.NewRegisterVehicleCommandHandler(c.uow(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateApproveVehicleCommandHandler() commands.ApproveVehicleCommandHandler {
	return commands.NewApproveVehicleCommandHandler(c.uow(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateAssignVehicleAgentCommandHandler() commands.AssignVehicleAgentCommandHandler {
	return commands.NewAssignVehicleAgentCommandHandler(c.uow(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateReportLocationCommandHandler() commands.ReportLocationCommandHandler {
	return commands.NewReportLocationCommandHandler(c.uow(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListVehiclesQueryHandler() queries.ListVehiclesQueryHandler {
	return queries.NewListVehiclesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListLocationsQueryHandler() queries.ListLocationsQueryHandler {
	return queries.NewListLocationsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListAgentsQueryHandler() queries.ListAgentsQueryHandler {
	return queries.NewListAgentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListUsersQueryHandler() queries.ListUsersQueryHandler {
	return queries.NewListUsersQueryHandler(c.gormDB)
}

// CreateServer wires every use case into the REST server.
func (c *CompositionRoot) CreateServer() *dispatchhttp.Server {
	return dispatchhttp.NewServer(dispatchhttp.Handlers{
		SignUp:             c.CreateSignUpCommandHandler(),
		LogIn:              c.CreateLogInCommandHandler(),
		CreateOrder:        c.CreateCreateOrderCommandHandler(),
		ApproveOrder:       c.CreateApproveOrderCommandHandler(),
		AdvanceOrder:       c.CreateAdvanceOrderCommandHandler(),
		RegisterVehicle:    c.CreateRegisterVehicleCommandHandler(),
		ApproveVehicle:     c.CreateApproveVehicleCommandHandler(),
		AssignVehicleAgent: c.CreateAssignVehicleAgentCommandHandler(),
		ReportLocation:     c.CreateReportLocationCommandHandler(),
		UpdateUserRole:     c.CreateUpdateUserRoleCommandHandler(),
		ListOrders:         c.CreateListOrdersQueryHandler(),
		ListVehicles:       c.CreateListVehiclesQueryHandler(),
		ListLocations:      c.CreateListLocationsQueryHandler(),
		ListAgents:         c.CreateListAgentsQueryHandler(),
		ListUsers:          c.CreateListUsersQueryHandler(),
	})
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
