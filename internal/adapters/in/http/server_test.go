package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dispatch/api"
	dispatchhttp "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/auth"
	"dispatch/internal/adapters/out/eventbus"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/storetest"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

const (
	adminEmail    = "admin@dispatch.test"
	adminPassword = "admin-secret"
)

type uowFactory struct {
	gorm *postgres.GormUnitOfWorkFactory
}

func (f uowFactory) Create() commands.UoW { return f.gorm.CreateGorm() }

type ServerSuite struct {
	suite.Suite

	e      *echo.Echo
	bus    *eventbus.Memory
	admin  string
	cancel context.CancelFunc
	events <-chan []byte
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerSuite))
}

func (s *ServerSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db := storetest.SQLite(s.T())

	factory := uowFactory{gorm: postgres.NewGormUnitOfWorkFactory(db)}
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	tokens, err := auth.NewTokenService("test-secret", time.Hour)
	s.Require().NoError(err)

	s.bus = eventbus.NewMemory(16, logger)
	publisher := eventbus.NewPublisher(s.bus)

	var ctx context.Context
	ctx, s.cancel = context.WithCancel(context.Background())
	s.events, err = s.bus.Subscribe(ctx)
	s.Require().NoError(err)

	server := dispatchhttp.NewServer(dispatchhttp.Handlers{
		SignUp:             commands.NewSignUpCommandHandler(factory, hasher, publisher, logger),
		LogIn:              commands.NewLogInCommandHandler(factory, hasher, tokens),
		CreateOrder:        commands.NewCreateOrderCommandHandler(factory, publisher, logger),
		ApproveOrder:       commands.NewApproveOrderCommandHandler(factory, publisher, logger),
		AdvanceOrder:       commands.NewAdvanceOrderCommandHandler(factory, publisher, logger),
		RegisterVehicle:    commands.NewRegisterVehicleCommandHandler(factory, publisher, logger),
		ApproveVehicle:     commands.NewApproveVehicleCommandHandler(factory, publisher, logger),
		AssignVehicleAgent: commands.NewAssignVehicleAgentCommandHandler(factory, publisher, logger),
		ReportLocation:     commands.NewReportLocationCommandHandler(factory, publisher, logger),
		UpdateUserRole:     commands.NewUpdateUserRoleCommandHandler(factory, publisher, logger),
		ListOrders:         queries.NewListOrdersQueryHandler(db),
		ListVehicles:       queries.NewListVehiclesQueryHandler(db),
		ListLocations:      queries.NewListLocationsQueryHandler(db),
		ListAgents:         queries.NewListAgentsQueryHandler(db),
		ListUsers:          queries.NewListUsersQueryHandler(db),
	})

	doc, err := dispatchhttp.LoadSpec(api.Spec)
	s.Require().NoError(err)
	s.e, err = dispatchhttp.NewRouter(server, tokens, nil, doc, logger)
	s.Require().NoError(err)

	seed := commands.NewSeedAdminCommandHandler(factory, hasher, logger)
	s.Require().NoError(seed.Handle(context.Background(), commands.SeedAdminCommand{
		Name:     "Admin",
		Email:    adminEmail,
		Password: adminPassword,
	}))
	s.admin = s.logIn(adminEmail, adminPassword)
}

func (s *ServerSuite) TearDownTest() {
	s.cancel()
	_ = s.bus.Close()
}

func (s *ServerSuite) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func (s *ServerSuite) requireError(rec *httptest.ResponseRecorder, status int, code string) {
	s.Require().Equal(status, rec.Code, rec.Body.String())
	body := decode[dispatchhttp.Error](s.T(), rec)
	s.Equal(code, body.Error.Code)
	s.NotEmpty(body.Error.Message)
}

func (s *ServerSuite) logIn(email, password string) string {
	rec := s.do(http.MethodPost, "/login", "", map[string]string{"email": email, "password": password})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[dispatchhttp.LogInResponse](s.T(), rec)
	s.Equal("bearer", resp.TokenType)
	return resp.AccessToken
}

// activeUser signs up, gets promoted by the admin and logs in.
func (s *ServerSuite) activeUser(name, email, role string) (dispatchhttp.User, string) {
	rec := s.do(http.MethodPost, "/signup", "", map[string]string{
		"name": name, "email": email, "password": "password-1", "role": role,
	})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[dispatchhttp.User](s.T(), rec)
	s.Equal(role+"_pending", created.Role)

	rec = s.do(http.MethodPatch, "/admin/users/"+created.ID.String()+"/role", s.admin, map[string]string{"role": role})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	promoted := decode[dispatchhttp.User](s.T(), rec)
	s.Equal(role, promoted.Role)

	return promoted, s.logIn(email, "password-1")
}

func (s *ServerSuite) createOrder(token string) dispatchhttp.Order {
	lat, lon := 52.37, 4.89
	rec := s.do(http.MethodPost, "/orders", token, map[string]any{
		"customer_name":      "Ada",
		"delivery_address":   "1 Canal St",
		"delivery_latitude":  lat,
		"delivery_longitude": lon,
	})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	return decode[dispatchhttp.Order](s.T(), rec)
}

func (s *ServerSuite) approvedVehicle(agentToken string) dispatchhttp.Vehicle {
	rec := s.do(http.MethodPost, "/vehicles", agentToken, map[string]string{
		"license_plate": "DX-" + time.Now().Format("150405.000000"),
		"model":         "Transit",
		"vehicle_type":  "van",
	})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	v := decode[dispatchhttp.Vehicle](s.T(), rec)
	s.Equal("pending", v.ApprovalStatus)

	rec = s.do(http.MethodPatch, "/vehicles/"+v.ID.String()+"/approve", s.admin, map[string]string{"approval_status": "approved"})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	return decode[dispatchhttp.Vehicle](s.T(), rec)
}

func (s *ServerSuite) TestHealthIsPublic() {
	rec := s.do(http.MethodGet, "/health", "", nil)

	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"status":"ok"}`, rec.Body.String())
}

func (s *ServerSuite) TestProtectedRoutesNeedToken() {
	s.requireError(s.do(http.MethodGet, "/orders", "", nil), http.StatusUnauthorized, dispatchhttp.CodeUnauthenticated)
	s.requireError(s.do(http.MethodGet, "/orders", "not-a-token", nil), http.StatusUnauthorized, dispatchhttp.CodeUnauthenticated)
}

func (s *ServerSuite) TestLogInWithWrongPassword() {
	rec := s.do(http.MethodPost, "/login", "", map[string]string{"email": adminEmail, "password": "nope"})

	s.requireError(rec, http.StatusUnauthorized, dispatchhttp.CodeUnauthenticated)
}

func (s *ServerSuite) TestPendingUserCannotLogIn() {
	rec := s.do(http.MethodPost, "/signup", "", map[string]string{
		"name": "Pat", "email": "pat@dispatch.test", "password": "password-1", "role": "agent",
	})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/login", "", map[string]string{"email": "pat@dispatch.test", "password": "password-1"})

	s.requireError(rec, http.StatusForbidden, dispatchhttp.CodeForbidden)
}

func (s *ServerSuite) TestDuplicateEmailIsRejected() {
	body := map[string]string{"name": "Pat", "email": "pat@dispatch.test", "password": "password-1", "role": "owner"}
	s.Require().Equal(http.StatusCreated, s.do(http.MethodPost, "/signup", "", body).Code)

	s.requireError(s.do(http.MethodPost, "/signup", "", body), http.StatusBadRequest, dispatchhttp.CodeValidation)
}

func (s *ServerSuite) TestRejectedSignupIsRemoved() {
	rec := s.do(http.MethodPost, "/signup", "", map[string]string{
		"name": "Pat", "email": "pat@dispatch.test", "password": "password-1", "role": "owner",
	})
	s.Require().Equal(http.StatusCreated, rec.Code)
	created := decode[dispatchhttp.User](s.T(), rec)

	rec = s.do(http.MethodPatch, "/admin/users/"+created.ID.String()+"/role", s.admin, map[string]string{"role": "rejected"})
	s.Require().Equal(http.StatusNoContent, rec.Code, rec.Body.String())

	rec = s.do(http.MethodGet, "/admin/users", s.admin, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	users := decode[[]dispatchhttp.User](s.T(), rec)
	s.Len(users, 1)
	s.Equal(adminEmail, users[0].Email)
}

func (s *ServerSuite) TestBodyIsValidatedAgainstDocument() {
	rec := s.do(http.MethodPost, "/orders", s.admin, map[string]any{"delivery_address": "1 Canal St"})

	s.requireError(rec, http.StatusBadRequest, dispatchhttp.CodeValidation)
}

func (s *ServerSuite) TestMalformedPathIDIsRejected() {
	rec := s.do(http.MethodPatch, "/orders/not-a-uuid/approve", s.admin, map[string]string{"agent_id": "also-not"})

	s.requireError(rec, http.StatusBadRequest, dispatchhttp.CodeValidation)
}

func (s *ServerSuite) TestUnknownOrderIsNotFound() {
	agent, _ := s.activeUser("Agent", "agent@dispatch.test", "agent")

	rec := s.do(http.MethodPatch, "/orders/0b0ad2ce-8a7d-4d1e-9e53-2f2b9e3c2a11/approve", s.admin,
		map[string]string{"agent_id": agent.ID.String()})

	s.requireError(rec, http.StatusNotFound, dispatchhttp.CodeNotFound)
}

func (s *ServerSuite) TestOwnerCannotApproveOrders() {
	_, ownerToken := s.activeUser("Owner", "owner@dispatch.test", "owner")
	agent, _ := s.activeUser("Agent", "agent@dispatch.test", "agent")
	o := s.createOrder(ownerToken)

	rec := s.do(http.MethodPatch, "/orders/"+o.ID.String()+"/approve", ownerToken,
		map[string]string{"agent_id": agent.ID.String()})

	s.requireError(rec, http.StatusForbidden, dispatchhttp.CodeForbidden)
}

func (s *ServerSuite) TestOrderLifecycle() {
	agent, agentToken := s.activeUser("Agent", "agent@dispatch.test", "agent")
	v := s.approvedVehicle(agentToken)
	s.Equal("available", v.Status)

	o := s.createOrder(s.admin)
	s.Equal("pending", o.Status)
	s.Nil(o.VehicleID)

	rec := s.do(http.MethodPatch, "/orders/"+o.ID.String()+"/approve", s.admin, map[string]string{"agent_id": agent.ID.String()})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	o = decode[dispatchhttp.Order](s.T(), rec)
	s.Equal("approved", o.Status)
	s.Require().NotNil(o.AssignedAgentID)
	s.Equal(agent.ID, *o.AssignedAgentID)

	rec = s.do(http.MethodPost, "/locations", agentToken, map[string]float64{"latitude": 52.1, "longitude": 5.1})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPatch, "/orders/"+o.ID.String()+"/status", agentToken, map[string]string{"status": "delivered"})
	s.requireError(rec, http.StatusUnprocessableEntity, dispatchhttp.CodeInvalidTransition)

	rec = s.do(http.MethodPatch, "/orders/"+o.ID.String()+"/status", agentToken,
		map[string]string{"status": "picked_up", "vehicle_id": v.ID.String()})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	o = decode[dispatchhttp.Order](s.T(), rec)
	s.Equal("picked_up", o.Status)
	s.Require().NotNil(o.VehicleID)
	s.Equal(v.ID, *o.VehicleID)

	rec = s.do(http.MethodGet, "/vehicles", s.admin, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	vehicles := decode[[]dispatchhttp.Vehicle](s.T(), rec)
	s.Require().Len(vehicles, 1)
	s.Equal("in_use", vehicles[0].Status)
	s.Require().NotNil(vehicles[0].CurrentLatitude)
	s.InDelta(52.1, *vehicles[0].CurrentLatitude, 1e-9)

	for _, status := range []string{"in_transit", "delivered"} {
		rec = s.do(http.MethodPatch, "/orders/"+o.ID.String()+"/status", agentToken, map[string]string{"status": status})
		s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
		s.Equal(status, decode[dispatchhttp.Order](s.T(), rec).Status)
	}

	rec = s.do(http.MethodGet, "/vehicles", s.admin, nil)
	vehicles = decode[[]dispatchhttp.Vehicle](s.T(), rec)
	s.Equal("available", vehicles[0].Status)
}

func (s *ServerSuite) TestBusyVehicleIsLocked() {
	agent, agentToken := s.activeUser("Agent", "agent@dispatch.test", "agent")
	v := s.approvedVehicle(agentToken)

	var ids []string
	for range 2 {
		o := s.createOrder(s.admin)
		rec := s.do(http.MethodPatch, "/orders/"+o.ID.String()+"/approve", s.admin, map[string]string{"agent_id": agent.ID.String()})
		s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
		ids = append(ids, o.ID.String())
	}

	pickUp := map[string]string{"status": "picked_up", "vehicle_id": v.ID.String()}
	s.Require().Equal(http.StatusOK, s.do(http.MethodPatch, "/orders/"+ids[0]+"/status", agentToken, pickUp).Code)

	rec := s.do(http.MethodPatch, "/orders/"+ids[1]+"/status", agentToken, pickUp)
	s.requireError(rec, http.StatusLocked, dispatchhttp.CodeVehicleUnavailable)
}

func (s *ServerSuite) TestOwnerSeesOwnOrdersAndAgents() {
	_, ownerToken := s.activeUser("Owner", "owner@dispatch.test", "owner")
	agent, _ := s.activeUser("Agent", "agent@dispatch.test", "agent")
	s.activeUser("Other", "other@dispatch.test", "agent")

	mine := s.createOrder(ownerToken)
	s.createOrder(s.admin)
	rec := s.do(http.MethodPatch, "/orders/"+mine.ID.String()+"/approve", s.admin, map[string]string{"agent_id": agent.ID.String()})
	s.Require().Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/orders", ownerToken, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	orders := decode[[]dispatchhttp.Order](s.T(), rec)
	s.Require().Len(orders, 1)
	s.Equal(mine.ID, orders[0].ID)

	rec = s.do(http.MethodGet, "/agents", ownerToken, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	agents := decode[[]dispatchhttp.Agent](s.T(), rec)
	s.Require().Len(agents, 1)
	s.Equal(agent.ID, agents[0].ID)

	rec = s.do(http.MethodGet, "/agents", s.admin, nil)
	s.Len(decode[[]dispatchhttp.Agent](s.T(), rec), 2)
}

func (s *ServerSuite) TestMutationsArePublished() {
	o := s.createOrder(s.admin)

	select {
	case msg := <-s.events:
		var payload map[string]any
		s.Require().NoError(json.Unmarshal(msg, &payload))
		s.Equal("order_created", payload["event"])
		s.Equal(o.ID.String(), payload["order_id"])
	case <-time.After(time.Second):
		s.Fail("order_created was not published")
	}
}
