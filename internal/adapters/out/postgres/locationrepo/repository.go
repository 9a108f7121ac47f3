package locationrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/tracking"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormLocationRepository implements ports.LocationRepository. Reports are only ever inserted.
type GormLocationRepository struct {
	db *gorm.DB
}

func NewGormLocationRepository(db *gorm.DB) *GormLocationRepository {
	return &GormLocationRepository{db: db}
}

func (r *GormLocationRepository) Add(ctx context.Context, report *tracking.DriverLocation) error {
	if err := report.Validate(); err != nil {
		return err
	}

	dto := fromDomain(report)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormLocationRepository) GetLatest(ctx context.Context, agentID kernel.UUID) (*tracking.DriverLocation, error) {
	if err := agentID.Validate(); err != nil {
		return nil, err
	}

	var dto DriverLocationDTO
	err := r.db.WithContext(ctx).
		Where("agent_id = ?", agentID.Bytes()).
		Order("recorded_at DESC").Order("id DESC").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("location", agentID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
