// Package locationrepo stores driver position reports in the driver_locations table.
package locationrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/tracking"

	"github.com/google/uuid"
)

type DriverLocationDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	AgentID    uuid.UUID `gorm:"type:uuid;not null;index:idx_driver_locations_agent_recorded,priority:1"`
	Latitude   float64   `gorm:"not null"`
	Longitude  float64   `gorm:"not null"`
	RecordedAt time.Time `gorm:"not null;index:idx_driver_locations_agent_recorded,priority:2"`
}

func (DriverLocationDTO) TableName() string {
	return "driver_locations"
}

func fromDomain(d *tracking.DriverLocation) DriverLocationDTO {
	return DriverLocationDTO{
		ID:         d.ID().Bytes(),
		AgentID:    d.AgentID().Bytes(),
		Latitude:   d.Location().Latitude(),
		Longitude:  d.Location().Longitude(),
		RecordedAt: d.RecordedAt(),
	}
}

func toDomain(dto DriverLocationDTO) (*tracking.DriverLocation, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	agentID, err := kernel.UUIDFromGoogle(dto.AgentID)
	if err != nil {
		return nil, err
	}
	loc, err := kernel.NewLocation(dto.Latitude, dto.Longitude)
	if err != nil {
		return nil, err
	}
	return tracking.NewDriverLocation(id, agentID, loc, dto.RecordedAt)
}
