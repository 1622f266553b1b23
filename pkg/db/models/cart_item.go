package models

import (
	"time"

	"github.com/google/uuid"
)

// CartItem persists one pending-purchase line per (user, vegetable) pair.
type CartItem struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID      uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_cart_user_vegetable"`
	VegetableID uuid.UUID `gorm:"column:vegetable_id;type:uuid;not null;uniqueIndex:idx_cart_user_vegetable"`
	Quantity    int       `gorm:"column:quantity;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
