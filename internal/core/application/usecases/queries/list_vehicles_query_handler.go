package queries

import (
	"context"
	"database/sql"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/core/domain/model/vehicle"
	"dispatch/internal/core/domain/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListVehiclesQueryHandler struct {
	db   *gorm.DB
	gate services.AccessGate
}

func NewListVehiclesQueryHandler(db *gorm.DB) ListVehiclesQueryHandler {
	return ListVehiclesQueryHandler{db: db, gate: services.NewAccessGate()}
}

func (h ListVehiclesQueryHandler) Handle(ctx context.Context, query ListVehiclesQuery) ([]VehicleView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	viewer := query.Viewer()
	if err := h.gate.Authorize(viewer, services.ActionListVehicles, nil); err != nil {
		return nil, err
	}

	stmt := h.db.WithContext(ctx).Table("vehicles").Select(`
		id, license_plate, model, vehicle_type,
		status, approval_status, owner_id, assigned_agent_id,
		current_latitude, current_longitude, created_at`)
	if viewer.Is(user.RoleOwner) {
		stmt = stmt.Where("owner_id = ?", viewer.UserID.Bytes())
	}

	rows, err := stmt.Order("created_at DESC").Order("id").Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]VehicleView, 0)
	for rows.Next() {
		var (
			view             VehicleView
			id               uuid.UUID
			ownerID, agentID uuid.NullUUID
			lat, lon         sql.NullFloat64
			status, approval int
		)

		if err = rows.Scan(
			&id, &view.LicensePlate, &view.Model, &view.VehicleType,
			&status, &approval, &ownerID, &agentID,
			&lat, &lon, &view.CreatedAt,
		); err != nil {
			return nil, err
		}

		if view.ID, err = kernel.UUIDFromGoogle(id); err != nil {
			return nil, err
		}
		if view.OwnerID, err = optionalID(ownerID); err != nil {
			return nil, err
		}
		if view.AssignedAgentID, err = optionalID(agentID); err != nil {
			return nil, err
		}
		if view.Position, err = optionalLocation(lat, lon); err != nil {
			return nil, err
		}
		view.Status = vehicle.Status(status)
		view.ApprovalStatus = vehicle.ApprovalStatus(approval)

		views = append(views, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return views, nil
}
