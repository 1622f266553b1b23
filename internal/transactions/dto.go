package transactions

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/parisy/pasarsayur-backend/pkg/db/models"
)

// DetailDTO is one snapshot line of a transaction. Unit price and
// subtotal are frozen at checkout time and never re-derived from the
// catalog.
type DetailDTO struct {
	ID          uuid.UUID       `json:"id"`
	VegetableID uuid.UUID       `json:"vegetable_id"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// TransactionDTO is the transaction header with its detail lines.
type TransactionDTO struct {
	ID            uuid.UUID       `json:"id"`
	Code          string          `json:"code"`
	UserID        uuid.UUID       `json:"user_id"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	PaymentMethod string          `json:"payment_method"`
	Status        string          `json:"status"`
	Notes         *string         `json:"notes,omitempty"`
	Details       []DetailDTO     `json:"details"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// TransactionList is a cursor page of transactions.
type TransactionList struct {
	Transactions []TransactionDTO `json:"transactions"`
	NextCursor   string           `json:"next_cursor,omitempty"`
}

// FromModel maps a persisted transaction to its DTO.
func FromModel(t *models.Transaction) *TransactionDTO {
	details := make([]DetailDTO, 0, len(t.Details))
	for _, d := range t.Details {
		details = append(details, DetailDTO{
			ID:          d.ID,
			VegetableID: d.VegetableID,
			Quantity:    d.Quantity,
			UnitPrice:   d.UnitPrice,
			Subtotal:    d.Subtotal,
		})
	}
	return &TransactionDTO{
		ID:            t.ID,
		Code:          t.Code,
		UserID:        t.UserID,
		TotalPrice:    t.TotalPrice,
		PaymentMethod: string(t.PaymentMethod),
		Status:        string(t.Status),
		Notes:         t.Notes,
		Details:       details,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

// FromModels maps a slice of transactions to DTOs.
func FromModels(list []models.Transaction) []TransactionDTO {
	out := make([]TransactionDTO, 0, len(list))
	for i := range list {
		out = append(out, *FromModel(&list[i]))
	}
	return out
}
