package model

import (
	"time"

	"github.com/google/uuid"
)

// Roles. PEMBELI creates purchases, PENERIMA weighs goods in, CHEF records
// production. SUPER_ADMIN can do everything including manual adjustments.
const (
	RoleSuperAdmin = "SUPER_ADMIN"
	RolePembeli    = "PEMBELI"
	RolePenerima   = "PENERIMA"
	RoleChef       = "CHEF"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Name         string    `gorm:"not null"`
	PasswordHash string    `gorm:"not null"`
	Role         string    `gorm:"not null"`
	Active       bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
