// Package http is the REST surface of the dispatch service. Handlers turn
// requests into commands and queries, and every failure is rendered by the
// error handler in errors.go.
package http

import (
	"net/http"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/core/domain/model/vehicle"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Handlers groups the use cases the server dispatches to.
type Handlers struct {
	SignUp             commands.SignUpCommandHandler
	LogIn              commands.LogInCommandHandler
	CreateOrder        commands.CreateOrderCommandHandler
	ApproveOrder       commands.ApproveOrderCommandHandler
	AdvanceOrder       commands.AdvanceOrderCommandHandler
	RegisterVehicle    commands.RegisterVehicleCommandHandler
	ApproveVehicle     commands.ApproveVehicleCommandHandler
	AssignVehicleAgent commands.AssignVehicleAgentCommandHandler
	ReportLocation     commands.ReportLocationCommandHandler
	UpdateUserRole     commands.UpdateUserRoleCommandHandler

	ListOrders    queries.ListOrdersQueryHandler
	ListVehicles  queries.ListVehiclesQueryHandler
	ListLocations queries.ListLocationsQueryHandler
	ListAgents    queries.ListAgentsQueryHandler
	ListUsers     queries.ListUsersQueryHandler
}

// Server implements ServerInterface.
type Server struct {
	h Handlers
}

func NewServer(h Handlers) *Server {
	return &Server{h: h}
}

var _ ServerInterface = (*Server)(nil)

func invalid(name string, err error) error {
	return errs.NewValueIsInvalidErrorWithCause(name, err)
}

func bindBody(ctx echo.Context, body any) error {
	if err := ctx.Bind(body); err != nil {
		return invalid("body", err)
	}
	return nil
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// SignUp handles POST /signup. The account waits for an admin decision.
func (s *Server) SignUp(ctx echo.Context) error {
	var body SignUpRequest
	if err := bindBody(ctx, &body); err != nil {
		return err
	}

	requested, err := user.ParseRole(body.Role)
	if err != nil {
		return err
	}
	cmd, err := commands.NewSignUpCommand(kernel.NewUUID(), body.Name, body.Email, body.Password, requested, body.Phone)
	if err != nil {
		return err
	}

	u, err := s.h.SignUp.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, userFromAggregate(u))
}

// LogIn handles POST /login.
func (s *Server) LogIn(ctx echo.Context) error {
	var body LogInRequest
	if err := bindBody(ctx, &body); err != nil {
		return err
	}

	cmd, err := commands.NewLogInCommand(body.Email, body.Password)
	if err != nil {
		return err
	}

	result, err := s.h.LogIn.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, LogInResponse{
		AccessToken: result.Token,
		TokenType:   "bearer",
		User:        userFromAggregate(result.User),
	})
}

// ListOrders handles GET /orders.
func (s *Server) ListOrders(ctx echo.Context) error {
	views, err := s.h.ListOrders.Handle(ctx.Request().Context(), queries.NewListOrdersQuery(IdentityFrom(ctx)))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, mapSlice(views, orderFromView))
}

// CreateOrder handles POST /orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body CreateOrderRequest
	if err := bindBody(ctx, &body); err != nil {
		return err
	}

	delivery, err := kernel.NewOptionalLocation(body.DeliveryLatitude, body.DeliveryLongitude)
	if err != nil {
		return err
	}
	pickup, err := kernel.NewOptionalLocation(body.PickupLatitude, body.PickupLongitude)
	if err != nil {
		return err
	}
	agentID, err := toOptionalKernelID("assigned_agent_id", body.AssignedAgentID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateOrderCommand(IdentityFrom(ctx), kernel.NewUUID(), order.Details{
		CustomerName:     body.CustomerName,
		DeliveryAddress:  body.DeliveryAddress,
		DeliveryLocation: delivery,
		PickupAddress:    body.PickupAddress,
		PickupLocation:   pickup,
	}, agentID)
	if err != nil {
		return err
	}

	o, err := s.h.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, orderFromAggregate(o))
}

// ApproveOrder handles PATCH /orders/{id}/approve.
func (s *Server) ApproveOrder(ctx echo.Context, id openapi_types.UUID) error {
	var body ApproveOrderRequest
	if err := bindBody(ctx, &body); err != nil {
		return err
	}

	orderID, err := toKernelID("id", id)
	if err != nil {
		return err
	}
	agentID, err := toKernelID("agent_id", body.AgentID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewApproveOrderCommand(IdentityFrom(ctx), orderID, agentID)
	if err != nil {
		return err
	}

	o, err := s.h.ApproveOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, orderFromAggregate(o))
}

// UpdateOrderStatus handles PATCH /orders/{id}/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context, id openapi_types.UUID) error {
	var body OrderStatusRequest
	if err := bindBody(ctx, &body); err != nil {
		return err
	}

	orderID, err := toKernelID("id", id)
	if err != nil {
		return err
	}
	target, err := order.ParseStatus(body.Status)
	if err != nil {
		return err
	}
	vehicleID, err := toOptionalKernelID("vehicle_id", body.VehicleID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAdvanceOrderCommand(IdentityFrom(ctx), orderID, target, vehicleID)
	if err != nil {
		return err
	}

	o, err := s.h.AdvanceOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, orderFromAggregate(o))
}

// ListVehicles handles GET /vehicles.
func (s *Server) ListVehicles(ctx echo.Context) error {
	views, err := s.h.ListVehicles.Handle(ctx.Request().Context(), queries.NewListVehiclesQuery(IdentityFrom(ctx)))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, mapSlice(views, vehicleFromView))
}

// RegisterVehicle handles POST /vehicles.
func (s *Server) RegisterVehicle(ctx echo.Context) error {
	var body RegisterVehicleRequest
	if err := bindBody(ctx, &body); err != nil {
		return err
	}

	cmd, err := commands.NewRegisterVehicleCommand(IdentityFrom(ctx), kernel.NewUUID(), vehicle.Spec{
		LicensePlate: body.LicensePlate,
		Model:        body.Model,
		VehicleType:  body.VehicleType,
	})
	if err != nil {
		return err
	}

	v, err := s.h.RegisterVehicle.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, vehicleFromAggregate(v))
}

// ApproveVehicle handles PATCH /vehicles/{id}/approve.
func (s *Server) ApproveVehicle(ctx echo.Context, id openapi_types.UUID) error {
	var body ApproveVehicleRequest
	if err := bindBody(ctx, &body); err != nil {
		return err
	}

	vehicleID, err := toKernelID("id", id)
	if err != nil {
		return err
	}
	decision, err := vehicle.ParseDecision(body.ApprovalStatus)
	if err != nil {
		return err
	}

	cmd, err := commands.NewApproveVehicleCommand(IdentityFrom(ctx), vehicleID, decision)
	if err != nil {
		return err
	}

	v, err := s.h.ApproveVehicle.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, vehicleFromAggregate(v))
}

// AssignVehicleAgent handles PATCH /vehicles/{id}/assign-agent.
func (s *Server) AssignVehicleAgent(ctx echo.Context, id openapi_types.UUID) error {
	var body AssignAgentRequest
	if err := bindBody(ctx, &body); err != nil {
		return err
	}

	vehicleID, err := toKernelID("id", id)
	if err != nil {
		return err
	}
	agentID, err := toKernelID("agent_id", body.AgentID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAssignVehicleAgentCommand(IdentityFrom(ctx), vehicleID, agentID)
	if err != nil {
		return err
	}

	v, err := s.h.AssignVehicleAgent.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, vehicleFromAggregate(v))
}

// ListLocations handles GET /locations.
func (s *Server) ListLocations(ctx echo.Context) error {
	views, err := s.h.ListLocations.Handle(ctx.Request().Context(), queries.NewListLocationsQuery(IdentityFrom(ctx)))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, mapSlice(views, locationFromView))
}

// ReportLocation handles POST /locations. recorded_at defaults to the time of receipt.
func (s *Server) ReportLocation(ctx echo.Context) error {
	var body ReportLocationRequest
	if err := bindBody(ctx, &body); err != nil {
		return err
	}

	agentID, err := toOptionalKernelID("agent_id", body.AgentID)
	if err != nil {
		return err
	}
	loc, err := kernel.NewLocation(body.Latitude, body.Longitude)
	if err != nil {
		return err
	}
	recordedAt := time.Now().UTC()
	if body.RecordedAt != nil {
		recordedAt = body.RecordedAt.UTC()
	}

	cmd, err := commands.NewReportLocationCommand(IdentityFrom(ctx), kernel.NewUUID(), agentID, loc, recordedAt)
	if err != nil {
		return err
	}

	report, err := s.h.ReportLocation.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, locationFromReport(report))
}

// ListAgents handles GET /agents.
func (s *Server) ListAgents(ctx echo.Context) error {
	views, err := s.h.ListAgents.Handle(ctx.Request().Context(), queries.NewListAgentsQuery(IdentityFrom(ctx)))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, mapSlice(views, agentFromView))
}

// ListUsers handles GET /admin/users.
func (s *Server) ListUsers(ctx echo.Context) error {
	views, err := s.h.ListUsers.Handle(ctx.Request().Context(), queries.NewListUsersQuery(IdentityFrom(ctx)))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, mapSlice(views, userFromView))
}

// UpdateUserRole handles PATCH /admin/users/{id}/role. Rejecting a pending
// signup deletes it and answers 204.
func (s *Server) UpdateUserRole(ctx echo.Context, id openapi_types.UUID) error {
	var body RoleUpdateRequest
	if err := bindBody(ctx, &body); err != nil {
		return err
	}

	userID, err := toKernelID("id", id)
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateUserRoleCommand(IdentityFrom(ctx), userID, body.Role)
	if err != nil {
		return err
	}

	u, err := s.h.UpdateUserRole.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	if cmd.IsRejection() {
		return ctx.NoContent(http.StatusNoContent)
	}
	return ctx.JSON(http.StatusOK, userFromAggregate(u))
}
