// Package orderrepo maps order aggregates to the orders table.
package orderrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the row shape of an order. Status is stored as its integer value.
type OrderDTO struct {
	ID              uuid.UUID   `gorm:"type:uuid;primaryKey"`
	CustomerName    string      `gorm:"not null"`
	DeliveryAddress string      `gorm:"not null"`
	Delivery        LocationDTO `gorm:"embedded;embeddedPrefix:delivery_"`
	PickupAddress   *string
	Pickup          LocationDTO `gorm:"embedded;embeddedPrefix:pickup_"`
	Status          int         `gorm:"not null;index"`
	AssignedAgentID *uuid.UUID  `gorm:"type:uuid;index"`
	OwnerID         *uuid.UUID  `gorm:"type:uuid;index"`
	VehicleID       *uuid.UUID  `gorm:"type:uuid"`
	CreatedAt       time.Time   `gorm:"not null;autoCreateTime:false"`
	UpdatedAt       time.Time   `gorm:"not null;autoUpdateTime:false"`
	Version         int64       `gorm:"not null"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// LocationDTO is an optional coordinate pair. Both columns are null or both are set.
type LocationDTO struct {
	Latitude  *float64
	Longitude *float64
}

func locationFromDomain(loc *kernel.Location) LocationDTO {
	if loc == nil {
		return LocationDTO{}
	}
	lat, lon := loc.Latitude(), loc.Longitude()
	return LocationDTO{Latitude: &lat, Longitude: &lon}
}

func fromDomain(o *order.Order) OrderDTO {
	d := OrderDTO{
		ID:              o.ID().Bytes(),
		CustomerName:    o.CustomerName(),
		DeliveryAddress: o.DeliveryAddress(),
		Delivery:        locationFromDomain(o.DeliveryLocation()),
		PickupAddress:   o.PickupAddress(),
		Pickup:          locationFromDomain(o.PickupLocation()),
		Status:          int(o.Status()),
		AssignedAgentID: kernel.RawPtr(o.AssignedAgent()),
		OwnerID:         kernel.RawPtr(o.Owner()),
		VehicleID:       kernel.RawPtr(o.Vehicle()),
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
		Version:         o.Version(),
	}
	return d
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	agentID, err := kernel.OptionalUUID(dto.AssignedAgentID)
	if err != nil {
		return nil, err
	}
	ownerID, err := kernel.OptionalUUID(dto.OwnerID)
	if err != nil {
		return nil, err
	}
	vehicleID, err := kernel.OptionalUUID(dto.VehicleID)
	if err != nil {
		return nil, err
	}
	delivery, err := kernel.NewOptionalLocation(dto.Delivery.Latitude, dto.Delivery.Longitude)
	if err != nil {
		return nil, err
	}
	pickup, err := kernel.NewOptionalLocation(dto.Pickup.Latitude, dto.Pickup.Longitude)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.State{
		ID: id,
		Details: order.Details{
			CustomerName:     dto.CustomerName,
			DeliveryAddress:  dto.DeliveryAddress,
			DeliveryLocation: delivery,
			PickupAddress:    dto.PickupAddress,
			PickupLocation:   pickup,
		},
		Status:          order.Status(dto.Status),
		AssignedAgentID: agentID,
		OwnerID:         ownerID,
		VehicleID:       vehicleID,
		CreatedAt:       dto.CreatedAt,
		UpdatedAt:       dto.UpdatedAt,
		Version:         dto.Version,
	})
}
