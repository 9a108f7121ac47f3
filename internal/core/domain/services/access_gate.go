package services

import (
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/pkg/errs"
)

// Action is the closed set of operations the gate decides on.
type Action int

const (
	ActionUnknown Action = iota
	ActionCreateOrder
	ActionListOrders
	ActionApproveOrder
	ActionUpdateOrderStatus
	ActionRegisterVehicle
	ActionListVehicles
	ActionApproveVehicle
	ActionAssignVehicleAgent
	ActionReportLocation
	ActionListLocations
	ActionListAgents
	ActionListAllUsers
	ActionUpdateUserRole
)

func getActionStrings() map[Action]string {
	return map[Action]string{
		ActionUnknown:            "unknown",
		ActionCreateOrder:        "create_order",
		ActionListOrders:         "list_orders",
		ActionApproveOrder:       "approve_order",
		ActionUpdateOrderStatus:  "update_order_status",
		ActionRegisterVehicle:    "register_vehicle",
		ActionListVehicles:       "list_vehicles",
		ActionApproveVehicle:     "approve_vehicle",
		ActionAssignVehicleAgent: "assign_vehicle_agent",
		ActionReportLocation:     "report_location",
		ActionListLocations:      "list_locations",
		ActionListAgents:         "list_agents",
		ActionListAllUsers:       "list_all_users",
		ActionUpdateUserRole:     "update_user_role",
	}
}

func (a Action) String() string {
	if str, ok := getActionStrings()[a]; ok {
		return str
	}
	return "unknown"
}

var (
	staff        = []user.Role{user.RoleAdmin, user.RoleAgent, user.RoleOwner}
	adminOnly    = []user.Role{user.RoleAdmin}
	adminOrAgent = []user.Role{user.RoleAdmin, user.RoleAgent}
	adminOrOwner = []user.Role{user.RoleAdmin, user.RoleOwner}
)

func getActionRoles() map[Action][]user.Role {
	return map[Action][]user.Role{
		ActionCreateOrder:        staff,
		ActionListOrders:         staff,
		ActionRegisterVehicle:    staff,
		ActionListVehicles:       staff,
		ActionUpdateOrderStatus:  staff,
		ActionApproveOrder:       adminOnly,
		ActionAssignVehicleAgent: adminOnly,
		ActionListAllUsers:       adminOnly,
		ActionUpdateUserRole:     adminOnly,
		ActionReportLocation:     adminOrAgent,
		ActionListLocations:      adminOrOwner,
		ActionListAgents:         adminOrOwner,
		ActionApproveVehicle:     adminOrOwner,
	}
}

// Owned is implemented by targets subject to ownership scoping.
type Owned interface {
	IsOwnedBy(userID kernel.UUID) bool
}

// AccessGate turns a verified identity into an allow or deny decision.
//
// Row scoping of list results is done by the queries. The gate only decides
// whether the caller may run the action at all, plus the owner-of-record check
// for approve_vehicle when a target is given.
//
// Example:
//
//	gate := services.NewAccessGate()
//	if err := gate.Authorize(identity, services.ActionApproveVehicle, v); err != nil {
//	    return nil, err // *errs.ForbiddenError
//	}
type AccessGate struct{}

func NewAccessGate() AccessGate {
	return AccessGate{}
}

// Authorize returns nil when identity may perform action on target, or a ForbiddenError.
// target may be nil. Pending roles and the zero identity are always denied.
func (g AccessGate) Authorize(identity user.Identity, action Action, target Owned) error {
	if identity.IsZero() || !identity.Role.IsActive() {
		return errs.NewForbiddenError(identity.Role.String(), action.String())
	}

	allowed := false
	for _, r := range getActionRoles()[action] {
		if r == identity.Role {
			allowed = true
			break
		}
	}
	if !allowed {
		return errs.NewForbiddenError(identity.Role.String(), action.String())
	}

	if action == ActionApproveVehicle && identity.Role == user.RoleOwner && target != nil &&
		!target.IsOwnedBy(identity.UserID) {
		return errs.NewForbiddenError(identity.Role.String(), "approve a vehicle owned by someone else")
	}

	return nil
}
