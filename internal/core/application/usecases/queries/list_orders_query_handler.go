package queries

import (
	"context"
	"database/sql"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/core/domain/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListOrdersQueryHandler struct {
	db   *gorm.DB
	gate services.AccessGate
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db, gate: services.NewAccessGate()}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	viewer := query.Viewer()
	if err := h.gate.Authorize(viewer, services.ActionListOrders, nil); err != nil {
		return nil, err
	}

	stmt := h.db.WithContext(ctx).Table("orders").Select(`
		id, customer_name, delivery_address,
		delivery_latitude, delivery_longitude,
		pickup_address, pickup_latitude, pickup_longitude,
		status, assigned_agent_id, owner_id, vehicle_id,
		created_at, updated_at`)
	if viewer.Is(user.RoleOwner) {
		stmt = stmt.Where("owner_id = ?", viewer.UserID.Bytes())
	}

	rows, err := stmt.Order("created_at DESC").Order("id").Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]OrderView, 0)
	for rows.Next() {
		var (
			view                    OrderView
			id                      uuid.UUID
			agentID, ownerID, vehID uuid.NullUUID
			dLat, dLon, pLat, pLon  sql.NullFloat64
			pickupAddress           sql.NullString
			status                  int
		)

		if err = rows.Scan(
			&id, &view.CustomerName, &view.DeliveryAddress,
			&dLat, &dLon,
			&pickupAddress, &pLat, &pLon,
			&status, &agentID, &ownerID, &vehID,
			&view.CreatedAt, &view.UpdatedAt,
		); err != nil {
			return nil, err
		}

		if view.ID, err = kernel.UUIDFromGoogle(id); err != nil {
			return nil, err
		}
		if view.AssignedAgentID, err = optionalID(agentID); err != nil {
			return nil, err
		}
		if view.OwnerID, err = optionalID(ownerID); err != nil {
			return nil, err
		}
		if view.VehicleID, err = optionalID(vehID); err != nil {
			return nil, err
		}
		if view.DeliveryLocation, err = optionalLocation(dLat, dLon); err != nil {
			return nil, err
		}
		if view.PickupLocation, err = optionalLocation(pLat, pLon); err != nil {
			return nil, err
		}
		if pickupAddress.Valid {
			view.PickupAddress = &pickupAddress.String
		}
		view.Status = order.Status(status)

		views = append(views, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return views, nil
}
