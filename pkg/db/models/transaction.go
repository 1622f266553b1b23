package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/parisy/pasarsayur-backend/pkg/enums"
)

// Transaction is the persisted order header.
type Transaction struct {
	ID            uuid.UUID               `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Code          string                  `gorm:"column:code;not null;uniqueIndex"`
	UserID        uuid.UUID               `gorm:"column:user_id;type:uuid;not null"`
	TotalPrice    decimal.Decimal         `gorm:"column:total_price;type:numeric(12,2);not null"`
	PaymentMethod enums.PaymentMethod     `gorm:"column:payment_method;type:text;not null"`
	Status        enums.TransactionStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	Notes         *string                 `gorm:"column:notes"`
	Details       []TransactionDetail     `gorm:"foreignKey:TransactionID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}
