// Package queries holds the read side: list handlers that run SQL directly
// against the store and return flat views. Rows are scoped to the caller.
package queries

import (
	"database/sql"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

func optionalID(n uuid.NullUUID) (*kernel.UUID, error) {
	if !n.Valid {
		return nil, nil //nolint:nilnil // absent reference
	}
	id, err := kernel.UUIDFromGoogle(n.UUID)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func optionalLocation(lat, lon sql.NullFloat64) (*kernel.Location, error) {
	if !lat.Valid || !lon.Valid {
		return nil, nil //nolint:nilnil // no coordinates recorded
	}
	loc, err := kernel.NewLocation(lat.Float64, lon.Float64)
	if err != nil {
		return nil, err
	}
	return &loc, nil
}
