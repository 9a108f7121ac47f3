// Package tracking holds the append-only position reports of field agents.
package tracking

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

var ErrDriverLocationIsNotConstructed = errors.New("DriverLocation must be created via NewDriverLocation")

// DriverLocation is one position sample. Samples are never changed. The current
// location of an agent is the sample with the latest RecordedAt.
type DriverLocation struct {
	id         kernel.UUID
	agentID    kernel.UUID
	location   kernel.Location
	recordedAt time.Time

	isConstructed bool
}

func NewDriverLocation(id, agentID kernel.UUID, location kernel.Location, recordedAt time.Time) (*DriverLocation, error) {
	if err := errors.Join(id.Validate(), agentID.Validate(), location.Validate()); err != nil {
		return nil, err
	}
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}
	return &DriverLocation{
		id:            id,
		agentID:       agentID,
		location:      location,
		recordedAt:    recordedAt.UTC(),
		isConstructed: true,
	}, nil
}

func (d *DriverLocation) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDriverLocationIsNotConstructed
	}
	return nil
}

func (d *DriverLocation) ID() kernel.UUID { return d.id }
func (d *DriverLocation) AgentID() kernel.UUID { return d.agentID }
func (d *DriverLocation) Location() kernel.Location { return d.location }
func (d *DriverLocation) RecordedAt() time.Time { return d.recordedAt }
