package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface lists one method per operation of api/openapi.yaml.
type ServerInterface interface {
	// (GET /health)
	GetHealth(ctx echo.Context) error
	// (POST /signup)
	SignUp(ctx echo.Context) error
	// (POST /login)
	LogIn(ctx echo.Context) error
	// (GET /orders)
	ListOrders(ctx echo.Context) error
	// (POST /orders)
	CreateOrder(ctx echo.Context) error
	// (PATCH /orders/{id}/approve)
	ApproveOrder(ctx echo.Context, id openapi_types.UUID) error
	// (PATCH /orders/{id}/status)
	UpdateOrderStatus(ctx echo.Context, id openapi_types.UUID) error
	// (GET /vehicles)
	ListVehicles(ctx echo.Context) error
	// (POST /vehicles)
	RegisterVehicle(ctx echo.Context) error
	// (PATCH /vehicles/{id}/approve)
	ApproveVehicle(ctx echo.Context, id openapi_types.UUID) error
	// (PATCH /vehicles/{id}/assign-agent)
	AssignVehicleAgent(ctx echo.Context, id openapi_types.UUID) error
	// (GET /locations)
	ListLocations(ctx echo.Context) error
	// (POST /locations)
	ReportLocation(ctx echo.Context) error
	// (GET /agents)
	ListAgents(ctx echo.Context) error
	// (GET /admin/users)
	ListUsers(ctx echo.Context) error
	// (PATCH /admin/users/{id}/role)
	UpdateUserRole(ctx echo.Context, id openapi_types.UUID) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) GetHealth(ctx echo.Context) error {
	return w.Handler.GetHealth(ctx)
}

func (w *ServerInterfaceWrapper) SignUp(ctx echo.Context) error {
	return w.Handler.SignUp(ctx)
}

func (w *ServerInterfaceWrapper) LogIn(ctx echo.Context) error {
	return w.Handler.LogIn(ctx)
}

func (w *ServerInterfaceWrapper) ListOrders(ctx echo.Context) error {
	return w.Handler.ListOrders(ctx)
}

func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

func (w *ServerInterfaceWrapper) ApproveOrder(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.ApproveOrder(ctx, id)
}

func (w *ServerInterfaceWrapper) UpdateOrderStatus(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.UpdateOrderStatus(ctx, id)
}

func (w *ServerInterfaceWrapper) ListVehicles(ctx echo.Context) error {
	return w.Handler.ListVehicles(ctx)
}

func (w *ServerInterfaceWrapper) RegisterVehicle(ctx echo.Context) error {
	return w.Handler.RegisterVehicle(ctx)
}

func (w *ServerInterfaceWrapper) ApproveVehicle(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.ApproveVehicle(ctx, id)
}

func (w *ServerInterfaceWrapper) AssignVehicleAgent(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.AssignVehicleAgent(ctx, id)
}

func (w *ServerInterfaceWrapper) ListLocations(ctx echo.Context) error {
	return w.Handler.ListLocations(ctx)
}

func (w *ServerInterfaceWrapper) ReportLocation(ctx echo.Context) error {
	return w.Handler.ReportLocation(ctx)
}

func (w *ServerInterfaceWrapper) ListAgents(ctx echo.Context) error {
	return w.Handler.ListAgents(ctx)
}

func (w *ServerInterfaceWrapper) ListUsers(ctx echo.Context) error {
	return w.Handler.ListUsers(ctx)
}

func (w *ServerInterfaceWrapper) UpdateUserRole(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.UpdateUserRole(ctx, id)
}

func bindID(ctx echo.Context) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return id, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter id: %s", err))
	}
	return id, nil
}

// EchoRouter is satisfied by *echo.Echo and *echo.Group.
type EchoRouter interface {
	CONNECT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	HEAD(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	OPTIONS(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	TRACE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers every operation under baseURL.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{Handler: si}

	router.GET(baseURL+"/health", wrapper.GetHealth)
	router.POST(baseURL+"/signup", wrapper.SignUp)
	router.POST(baseURL+"/login", wrapper.LogIn)
	router.GET(baseURL+"/orders", wrapper.ListOrders)
	router.POST(baseURL+"/orders", wrapper.CreateOrder)
	router.PATCH(baseURL+"/orders/:id/approve", wrapper.ApproveOrder)
	router.PATCH(baseURL+"/orders/:id/status", wrapper.UpdateOrderStatus)
	router.GET(baseURL+"/vehicles", wrapper.ListVehicles)
	router.POST(baseURL+"/vehicles", wrapper.RegisterVehicle)
	router.PATCH(baseURL+"/vehicles/:id/approve", wrapper.ApproveVehicle)
	router.PATCH(baseURL+"/vehicles/:id/assign-agent", wrapper.AssignVehicleAgent)
	router.GET(baseURL+"/locations", wrapper.ListLocations)
	router.POST(baseURL+"/locations", wrapper.ReportLocation)
	router.GET(baseURL+"/agents", wrapper.ListAgents)
	router.GET(baseURL+"/admin/users", wrapper.ListUsers)
	router.PATCH(baseURL+"/admin/users/:id/role", wrapper.UpdateUserRole)
}
