package queries

import (
	"context"
	"database/sql"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/core/domain/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListAgentsQueryHandler struct {
	db   *gorm.DB
	gate services.AccessGate
}

func NewListAgentsQueryHandler(db *gorm.DB) ListAgentsQueryHandler {
	return ListAgentsQueryHandler{db: db, gate: services.NewAccessGate()}
}

func (h ListAgentsQueryHandler) Handle(ctx context.Context, query ListAgentsQuery) ([]AgentView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	viewer := query.Viewer()
	if err := h.gate.Authorize(viewer, services.ActionListAgents, nil); err != nil {
		return nil, err
	}

	stmt := h.db.WithContext(ctx).Table("users").
		Select("id, name, email, phone").
		Where("role = ?", int(user.RoleAgent))
	if viewer.Is(user.RoleOwner) {
		stmt = stmt.Where("id IN (?)", h.db.Table("orders").
			Select("assigned_agent_id").
			Where("owner_id = ?", viewer.UserID.Bytes()))
	}

	rows, err := stmt.Order("name").Order("id").Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]AgentView, 0)
	for rows.Next() {
		var (
			view  AgentView
			id    uuid.UUID
			phone sql.NullString
		)

		if err = rows.Scan(&id, &view.Name, &view.Email, &phone); err != nil {
			return nil, err
		}

		if view.ID, err = kernel.UUIDFromGoogle(id); err != nil {
			return nil, err
		}
		if phone.Valid {
			view.Phone = &phone.String
		}

		views = append(views, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return views, nil
}
