package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/parisy/pasarsayur-backend/pkg/db/models"
)

// VegetableDTO is the transport shape for catalog listings.
type VegetableDTO struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Image       *string         `json:"image,omitempty"`
	Category    string          `json:"category"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func FromModel(v *models.Vegetable) *VegetableDTO {
	if v == nil {
		return nil
	}
	return &VegetableDTO{
		ID:          v.ID,
		Name:        v.Name,
		Description: v.Description,
		Price:       v.Price,
		Stock:       v.Stock,
		Image:       v.Image,
		Category:    string(v.Category),
		Status:      string(v.Status),
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

func FromModels(list []models.Vegetable) []VegetableDTO {
	out := make([]VegetableDTO, 0, len(list))
	for i := range list {
		out = append(out, *FromModel(&list[i]))
	}
	return out
}
