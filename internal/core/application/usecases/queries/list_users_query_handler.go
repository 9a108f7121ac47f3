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

type ListUsersQueryHandler struct {
	db   *gorm.DB
	gate services.AccessGate
}

func NewListUsersQueryHandler(db *gorm.DB) ListUsersQueryHandler {
	return ListUsersQueryHandler{db: db, gate: services.NewAccessGate()}
}

func (h ListUsersQueryHandler) Handle(ctx context.Context, query ListUsersQuery) ([]UserView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := h.gate.Authorize(query.Viewer(), services.ActionListAllUsers, nil); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, name, email, role, phone, created_at
		FROM users
		ORDER BY created_at DESC, id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]UserView, 0)
	for rows.Next() {
		var (
			view  UserView
			id    uuid.UUID
			role  int
			phone sql.NullString
		)

		if err = rows.Scan(&id, &view.Name, &view.Email, &role, &phone, &view.CreatedAt); err != nil {
			return nil, err
		}

		if view.ID, err = kernel.UUIDFromGoogle(id); err != nil {
			return nil, err
		}
		view.Role = user.Role(role)
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
