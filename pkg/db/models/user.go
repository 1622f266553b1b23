package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/parisy/pasarsayur-backend/pkg/enums"
)

// User represents a community member account.
type User struct {
	ID           uuid.UUID   `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string      `gorm:"column:name;not null"`
	Email        string      `gorm:"column:email;type:text;not null;uniqueIndex"`
	PasswordHash string      `gorm:"column:password_hash;not null"`
	Role         enums.Role  `gorm:"column:role;type:text;not null"`
	SubRole      enums.SubRole `gorm:"column:sub_role;type:text;not null"`
	Address      *string     `gorm:"column:address"`
	Phone        *string     `gorm:"column:phone"`
	IsActive     bool        `gorm:"column:is_active;not null;default:true"`
	LastLoginAt  *time.Time  `gorm:"column:last_login_at"`
	CreatedAt    time.Time   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time   `gorm:"column:updated_at;autoUpdateTime"`
}
