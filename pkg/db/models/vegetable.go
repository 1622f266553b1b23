package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/parisy/pasarsayur-backend/pkg/enums"
)

// Vegetable represents a catalog listing.
type Vegetable struct {
	ID          uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string                `gorm:"column:name;not null;uniqueIndex"`
	Description *string               `gorm:"column:description"`
	Price       decimal.Decimal       `gorm:"column:price;type:numeric(12,2);not null"`
	Stock       int                   `gorm:"column:stock;not null;default:0"`
	Image       *string               `gorm:"column:image"`
	Category    enums.VegetableCategory `gorm:"column:category;type:text;not null"`
	Status      enums.VegetableStatus `gorm:"column:status;type:text;not null;default:'available'"`
	// Nulled when the creating account is deleted.
	CreatedBy   *uuid.UUID            `gorm:"column:created_by;type:uuid"`
	CreatedAt   time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
