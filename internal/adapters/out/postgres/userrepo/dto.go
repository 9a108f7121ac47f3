// Package userrepo maps user accounts to the users table.
package userrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/user"

	"github.com/google/uuid"
)

type UserDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"not null"`
	Email        string    `gorm:"not null;uniqueIndex"`
	PasswordHash string    `gorm:"not null"`
	Role         int       `gorm:"not null;index"`
	Phone        *string
	CreatedAt    time.Time `gorm:"not null;autoCreateTime:false"`
	Version      int64     `gorm:"not null"`
}

func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(u *user.User) UserDTO {
	return UserDTO{
		ID:           u.ID().Bytes(),
		Name:         u.Name(),
		Email:        u.Email(),
		PasswordHash: u.PasswordHash(),
		Role:         int(u.Role()),
		Phone:        u.Phone(),
		CreatedAt:    u.CreatedAt(),
		Version:      u.Version(),
	}
}

func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}

	return user.RestoreUser(user.State{
		ID:           id,
		Name:         dto.Name,
		Email:        dto.Email,
		PasswordHash: dto.PasswordHash,
		Role:         user.Role(dto.Role),
		Phone:        dto.Phone,
		CreatedAt:    dto.CreatedAt,
		Version:      dto.Version,
	})
}
