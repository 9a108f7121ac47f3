// Package event defines the facts published after every accepted mutation.
//
// The wire shape is one JSON object per event with the kind under "event":
//
//	{"event":"order_status","order_id":"...","new_status":"picked_up",...}
package event

import (
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/tracking"
	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/core/domain/model/vehicle"
)

type Kind string

const (
	KindOrderCreated      Kind = "order_created"
	KindOrderStatus       Kind = "order_status"
	KindVehicleRegistered Kind = "vehicle_registered"
	KindVehicleApproved   Kind = "vehicle_approved"
	KindLocationUpdate    Kind = "location_update"
	KindUserSignup        Kind = "user_signup"
	KindUserRoleUpdated   Kind = "user_role_updated"
	KindUserDeleted       Kind = "user_deleted"
)

// Event is implemented by every payload below.
type Event interface {
	Kind() Kind
}

type OrderCreated struct {
	Event           Kind    `json:"event"`
	OrderID         string  `json:"order_id"`
	CustomerName    string  `json:"customer_name"`
	DeliveryAddress string  `json:"delivery_address"`
	Status          string  `json:"status"`
	OwnerID         *string `json:"owner_id"`
	AssignedAgentID *string `json:"assigned_agent_id"`
}

func NewOrderCreated(o *order.Order) OrderCreated {
	return OrderCreated{
		Event:           KindOrderCreated,
		OrderID:         o.ID().String(),
		CustomerName:    o.CustomerName(),
		DeliveryAddress: o.DeliveryAddress(),
		Status:          o.Status().String(),
		OwnerID:         kernel.StringPtr(o.Owner()),
		AssignedAgentID: kernel.StringPtr(o.AssignedAgent()),
	}
}

func (OrderCreated) Kind() Kind { return KindOrderCreated }

// OrderStatus is published on approval (including reassignment) and on every advance.
type OrderStatus struct {
	Event           Kind    `json:"event"`
	OrderID         string  `json:"order_id"`
	NewStatus       string  `json:"new_status"`
	AssignedAgentID *string `json:"assigned_agent_id"`
	OwnerID         *string `json:"owner_id"`
	VehicleID       *string `json:"vehicle_id"`
}

func NewOrderStatus(o *order.Order) OrderStatus {
	return OrderStatus{
		Event:           KindOrderStatus,
		OrderID:         o.ID().String(),
		NewStatus:       o.Status().String(),
		AssignedAgentID: kernel.StringPtr(o.AssignedAgent()),
		OwnerID:         kernel.StringPtr(o.Owner()),
		VehicleID:       kernel.StringPtr(o.Vehicle()),
	}
}

func (OrderStatus) Kind() Kind { return KindOrderStatus }

type VehicleRegistered struct {
	Event          Kind    `json:"event"`
	VehicleID      string  `json:"vehicle_id"`
	LicensePlate   string  `json:"license_plate"`
	ApprovalStatus string  `json:"approval_status"`
	Status         string  `json:"status"`
	OwnerID        *string `json:"owner_id"`
}

func NewVehicleRegistered(v *vehicle.Vehicle) VehicleRegistered {
	return VehicleRegistered{
		Event:          KindVehicleRegistered,
		VehicleID:      v.ID().String(),
		LicensePlate:   v.LicensePlate(),
		ApprovalStatus: v.Approval().String(),
		Status:         v.Status().String(),
		OwnerID:        kernel.StringPtr(v.Owner()),
	}
}

func (VehicleRegistered) Kind() Kind { return KindVehicleRegistered }

// VehicleApproved is published for approval decisions and agent assignments.
type VehicleApproved struct {
	Event           Kind    `json:"event"`
	VehicleID       string  `json:"vehicle_id"`
	ApprovalStatus  string  `json:"approval_status"`
	Status          string  `json:"status"`
	OwnerID         *string `json:"owner_id"`
	AssignedAgentID *string `json:"assigned_agent_id"`
}

func NewVehicleApproved(v *vehicle.Vehicle) VehicleApproved {
	return VehicleApproved{
		Event:           KindVehicleApproved,
		VehicleID:       v.ID().String(),
		ApprovalStatus:  v.Approval().String(),
		Status:          v.Status().String(),
		OwnerID:         kernel.StringPtr(v.Owner()),
		AssignedAgentID: kernel.StringPtr(v.AssignedAgent()),
	}
}

func (VehicleApproved) Kind() Kind { return KindVehicleApproved }

type LocationUpdate struct {
	Event     Kind    `json:"event"`
	AgentID   string  `json:"agent_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func NewLocationUpdate(d *tracking.DriverLocation) LocationUpdate {
	return LocationUpdate{
		Event:     KindLocationUpdate,
		AgentID:   d.AgentID().String(),
		Latitude:  d.Location().Latitude(),
		Longitude: d.Location().Longitude(),
	}
}

func (LocationUpdate) Kind() Kind { return KindLocationUpdate }

type UserSignup struct {
	Event  Kind   `json:"event"`
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

func NewUserSignup(u *user.User) UserSignup {
	return UserSignup{
		Event:  KindUserSignup,
		UserID: u.ID().String(),
		Name:   u.Name(),
		Email:  u.Email(),
		Role:   u.Role().String(),
	}
}

func (UserSignup) Kind() Kind { return KindUserSignup }

type UserRoleUpdated struct {
	Event  Kind   `json:"event"`
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

func NewUserRoleUpdated(u *user.User) UserRoleUpdated {
	return UserRoleUpdated{Event: KindUserRoleUpdated, UserID: u.ID().String(), Role: u.Role().String()}
}

func (UserRoleUpdated) Kind() Kind { return KindUserRoleUpdated }

type UserDeleted struct {
	Event  Kind   `json:"event"`
	UserID string `json:"user_id"`
}

func NewUserDeleted(id kernel.UUID) UserDeleted {
	return UserDeleted{Event: KindUserDeleted, UserID: id.String()}
}

func (UserDeleted) Kind() Kind { return KindUserDeleted }
