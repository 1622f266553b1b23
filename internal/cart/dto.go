package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/parisy/pasarsayur-backend/pkg/enums"
)

// ItemDTO is a single cart line with live catalog data and the
// computed line subtotal.
type ItemDTO struct {
	ID            uuid.UUID       `json:"id"`
	VegetableID   uuid.UUID       `json:"vegetable_id"`
	VegetableName string          `json:"vegetable_name"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Quantity      int             `json:"quantity"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Available     bool            `json:"available"`
	AddedAt       time.Time       `json:"added_at"`
}

// CartDTO is the full cart view returned to the caller.
type CartDTO struct {
	Items []ItemDTO       `json:"items"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

func cartFromLines(lines []Line) *CartDTO {
	out := &CartDTO{Items: make([]ItemDTO, 0, len(lines)), Total: decimal.Zero}
	for _, line := range lines {
		subtotal := line.Vegetable.Price.Mul(decimal.NewFromInt(int64(line.Item.Quantity)))
		out.Items = append(out.Items, ItemDTO{
			ID:            line.Item.ID,
			VegetableID:   line.Vegetable.ID,
			VegetableName: line.Vegetable.Name,
			UnitPrice:     line.Vegetable.Price,
			Quantity:      line.Item.Quantity,
			Subtotal:      subtotal,
			Available:     line.Vegetable.Status == enums.VegetableStatusAvailable,
			AddedAt:       line.Item.CreatedAt,
		})
		out.Total = out.Total.Add(subtotal)
	}
	out.Count = len(out.Items)
	return out
}
