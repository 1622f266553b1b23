package transactions

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/parisy/pasarsayur-backend/pkg/db/models"
	"github.com/parisy/pasarsayur-backend/pkg/enums"
	"github.com/parisy/pasarsayur-backend/pkg/pagination"
)

// ListQuery holds the filters for cursor-paginated transaction lists.
type ListQuery struct {
	UserID uuid.UUID
	Status *enums.TransactionStatus
	Limit  int
	Cursor *pagination.Cursor
}

// Repository defines persistence operations for transaction tables.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, transaction *models.Transaction) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
	List(ctx context.Context, query ListQuery) ([]models.Transaction, *pagination.Cursor, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
}
