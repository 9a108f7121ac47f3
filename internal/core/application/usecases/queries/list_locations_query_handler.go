package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/core/domain/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListLocationsQueryHandler struct {
	db   *gorm.DB
	gate services.AccessGate
}

func NewListLocationsQueryHandler(db *gorm.DB) ListLocationsQueryHandler {
	return ListLocationsQueryHandler{db: db, gate: services.NewAccessGate()}
}

// Handle returns one row per agent. Ties on recorded_at are broken by report id
// so the result is stable.
func (h ListLocationsQueryHandler) Handle(ctx context.Context, query ListLocationsQuery) ([]LocationView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	viewer := query.Viewer()
	if err := h.gate.Authorize(viewer, services.ActionListLocations, nil); err != nil {
		return nil, err
	}

	sql := `
		SELECT l.agent_id, l.latitude, l.longitude, l.recorded_at
		FROM driver_locations l
		WHERE NOT EXISTS (
			SELECT 1 FROM driver_locations n
			WHERE n.agent_id = l.agent_id
			  AND (n.recorded_at > l.recorded_at OR (n.recorded_at = l.recorded_at AND n.id > l.id))
		)`
	args := make([]any, 0, 1)
	if viewer.Is(user.RoleOwner) {
		sql += ` AND l.agent_id IN (SELECT assigned_agent_id FROM orders WHERE owner_id = ?)`
		args = append(args, viewer.UserID.Bytes())
	}
	sql += ` ORDER BY l.recorded_at DESC, l.agent_id`

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]LocationView, 0)
	for rows.Next() {
		var (
			view     LocationView
			agentID  uuid.UUID
			lat, lon float64
		)

		if err = rows.Scan(&agentID, &lat, &lon, &view.RecordedAt); err != nil {
			return nil, err
		}

		if view.AgentID, err = kernel.UUIDFromGoogle(agentID); err != nil {
			return nil, err
		}
		if view.Location, err = kernel.NewLocation(lat, lon); err != nil {
			return nil, err
		}

		views = append(views, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return views, nil
}
