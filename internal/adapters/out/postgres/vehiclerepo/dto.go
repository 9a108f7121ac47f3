// Package vehiclerepo maps vehicle aggregates to the vehicles table.
package vehiclerepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/vehicle"

	"github.com/google/uuid"
)

type VehicleDTO struct {
	ID              uuid.UUID   `gorm:"type:uuid;primaryKey"`
	LicensePlate    string      `gorm:"not null;uniqueIndex"`
	Model           string      `gorm:"not null"`
	VehicleType     string      `gorm:"not null"`
	Status          int         `gorm:"not null"`
	ApprovalStatus  int         `gorm:"not null"`
	OwnerID         *uuid.UUID  `gorm:"type:uuid;index"`
	AssignedAgentID *uuid.UUID  `gorm:"type:uuid"`
	Current         PositionDTO `gorm:"embedded;embeddedPrefix:current_"`
	CreatedAt       time.Time   `gorm:"not null;autoCreateTime:false"`
	UpdatedAt       time.Time   `gorm:"not null;autoUpdateTime:false"`
	Version         int64       `gorm:"not null"`
}

func (VehicleDTO) TableName() string {
	return "vehicles"
}

// PositionDTO is the last known position, null until the first pickup.
type PositionDTO struct {
	Latitude  *float64
	Longitude *float64
}

func fromDomain(v *vehicle.Vehicle) VehicleDTO {
	var pos PositionDTO
	if p := v.Position(); p != nil {
		lat, lon := p.Latitude(), p.Longitude()
		pos = PositionDTO{Latitude: &lat, Longitude: &lon}
	}

	return VehicleDTO{
		ID:              v.ID().Bytes(),
		LicensePlate:    v.LicensePlate(),
		Model:           v.Model(),
		VehicleType:     v.VehicleType(),
		Status:          int(v.Status()),
		ApprovalStatus:  int(v.Approval()),
		OwnerID:         kernel.RawPtr(v.Owner()),
		AssignedAgentID: kernel.RawPtr(v.AssignedAgent()),
		Current:         pos,
		CreatedAt:       v.CreatedAt(),
		UpdatedAt:       v.UpdatedAt(),
		Version:         v.Version(),
	}
}

func toDomain(dto VehicleDTO) (*vehicle.Vehicle, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	ownerID, err := kernel.OptionalUUID(dto.OwnerID)
	if err != nil {
		return nil, err
	}
	agentID, err := kernel.OptionalUUID(dto.AssignedAgentID)
	if err != nil {
		return nil, err
	}
	position, err := kernel.NewOptionalLocation(dto.Current.Latitude, dto.Current.Longitude)
	if err != nil {
		return nil, err
	}

	return vehicle.RestoreVehicle(vehicle.State{
		ID: id,
		Spec: vehicle.Spec{
			LicensePlate: dto.LicensePlate,
			Model:        dto.Model,
			VehicleType:  dto.VehicleType,
		},
		Status:          vehicle.Status(dto.Status),
		Approval:        vehicle.ApprovalStatus(dto.ApprovalStatus),
		OwnerID:         ownerID,
		AssignedAgentID: agentID,
		Position:        position,
		CreatedAt:       dto.CreatedAt,
		UpdatedAt:       dto.UpdatedAt,
		Version:         dto.Version,
	})
}
