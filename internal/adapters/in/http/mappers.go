package http

import (
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/tracking"
	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/core/domain/model/vehicle"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

func optionalUUID(id *kernel.UUID) *openapi_types.UUID {
	return kernel.RawPtr(id)
}

func toKernelID(name string, id openapi_types.UUID) (kernel.UUID, error) {
	converted, err := kernel.UUIDFromGoogle(id)
	if err != nil {
		return kernel.UUID{}, invalid(name, err)
	}
	return converted, nil
}

func toOptionalKernelID(name string, id *openapi_types.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil //nolint:nilnil // absent reference
	}
	converted, err := toKernelID(name, *id)
	if err != nil {
		return nil, err
	}
	return &converted, nil
}

func coordinates(loc *kernel.Location) (*float64, *float64) {
	if loc == nil {
		return nil, nil
	}
	lat, lon := loc.Latitude(), loc.Longitude()
	return &lat, &lon
}

func orderFromAggregate(o *order.Order) Order {
	dLat, dLon := coordinates(o.DeliveryLocation())
	pLat, pLon := coordinates(o.PickupLocation())

	return Order{
		ID:                o.ID().Bytes(),
		CustomerName:      o.CustomerName(),
		DeliveryAddress:   o.DeliveryAddress(),
		DeliveryLatitude:  dLat,
		DeliveryLongitude: dLon,
		PickupAddress:     o.PickupAddress(),
		PickupLatitude:    pLat,
		PickupLongitude:   pLon,
		Status:            o.Status().String(),
		AssignedAgentID:   optionalUUID(o.AssignedAgent()),
		OwnerID:           optionalUUID(o.Owner()),
		VehicleID:         optionalUUID(o.Vehicle()),
		CreatedAt:         o.CreatedAt(),
		UpdatedAt:         o.UpdatedAt(),
	}
}

func orderFromView(v queries.OrderView) Order {
	dLat, dLon := coordinates(v.DeliveryLocation)
	pLat, pLon := coordinates(v.PickupLocation)

	return Order{
		ID:                v.ID.Bytes(),
		CustomerName:      v.CustomerName,
		DeliveryAddress:   v.DeliveryAddress,
		DeliveryLatitude:  dLat,
		DeliveryLongitude: dLon,
		PickupAddress:     v.PickupAddress,
		PickupLatitude:    pLat,
		PickupLongitude:   pLon,
		Status:            v.Status.String(),
		AssignedAgentID:   optionalUUID(v.AssignedAgentID),
		OwnerID:           optionalUUID(v.OwnerID),
		VehicleID:         optionalUUID(v.VehicleID),
		CreatedAt:         v.CreatedAt,
		UpdatedAt:         v.UpdatedAt,
	}
}

func vehicleFromAggregate(v *vehicle.Vehicle) Vehicle {
	lat, lon := coordinates(v.Position())

	return Vehicle{
		ID:               v.ID().Bytes(),
		LicensePlate:     v.LicensePlate(),
		Model:            v.Model(),
		VehicleType:      v.VehicleType(),
		Status:           v.Status().String(),
		ApprovalStatus:   v.Approval().String(),
		OwnerID:          optionalUUID(v.Owner()),
		AssignedAgentID:  optionalUUID(v.AssignedAgent()),
		CurrentLatitude:  lat,
		CurrentLongitude: lon,
		CreatedAt:        v.CreatedAt(),
	}
}

func vehicleFromView(v queries.VehicleView) Vehicle {
	lat, lon := coordinates(v.Position)

	return Vehicle{
		ID:               v.ID.Bytes(),
		LicensePlate:     v.LicensePlate,
		Model:            v.Model,
		VehicleType:      v.VehicleType,
		Status:           v.Status.String(),
		ApprovalStatus:   v.ApprovalStatus.String(),
		OwnerID:          optionalUUID(v.OwnerID),
		AssignedAgentID:  optionalUUID(v.AssignedAgentID),
		CurrentLatitude:  lat,
		CurrentLongitude: lon,
		CreatedAt:        v.CreatedAt,
	}
}

func userFromAggregate(u *user.User) User {
	createdAt := u.CreatedAt()
	return User{
		ID:        u.ID().Bytes(),
		Name:      u.Name(),
		Email:     u.Email(),
		Role:      u.Role().String(),
		Phone:     u.Phone(),
		CreatedAt: &createdAt,
	}
}

func userFromView(v queries.UserView) User {
	createdAt := v.CreatedAt
	return User{
		ID:        v.ID.Bytes(),
		Name:      v.Name,
		Email:     v.Email,
		Role:      v.Role.String(),
		Phone:     v.Phone,
		CreatedAt: &createdAt,
	}
}

func agentFromView(v queries.AgentView) Agent {
	return Agent{ID: v.ID.Bytes(), Name: v.Name, Email: v.Email, Phone: v.Phone}
}

func locationFromReport(d *tracking.DriverLocation) DriverLocation {
	return DriverLocation{
		AgentID:    d.AgentID().Bytes(),
		Latitude:   d.Location().Latitude(),
		Longitude:  d.Location().Longitude(),
		RecordedAt: d.RecordedAt(),
	}
}

func locationFromView(v queries.LocationView) DriverLocation {
	return DriverLocation{
		AgentID:    v.AgentID.Bytes(),
		Latitude:   v.Location.Latitude(),
		Longitude:  v.Location.Longitude(),
		RecordedAt: v.RecordedAt,
	}
}

func mapSlice[T, R any](items []T, convert func(T) R) []R {
	out := make([]R, len(items))
	for i, item := range items {
		out[i] = convert(item)
	}
	return out
}
