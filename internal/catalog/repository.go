package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/parisy/pasarsayur-backend/pkg/db/models"
	"github.com/parisy/pasarsayur-backend/pkg/enums"
)

// Repository exposes vegetable persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a new vegetable and returns the persisted model.
func (r *Repository) Create(ctx context.Context, vegetable *models.Vegetable) (*models.Vegetable, error) {
	if err := r.db.WithContext(ctx).Create(vegetable).Error; err != nil {
		return nil, err
	}
	return vegetable, nil
}

// FindByID loads a vegetable regardless of availability.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Vegetable, error) {
	var vegetable models.Vegetable
	if err := r.db.WithContext(ctx).First(&vegetable, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &vegetable, nil
}

// ListAvailable returns available vegetables ordered by name.
func (r *Repository) ListAvailable(ctx context.Context) ([]models.Vegetable, error) {
	var list []models.Vegetable
	if err := r.db.WithContext(ctx).
		Where("status = ?", enums.VegetableStatusAvailable).
		Order("name ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// ListByCategory returns available vegetables of one category ordered by name.
func (r *Repository) ListByCategory(ctx context.Context, category enums.VegetableCategory) ([]models.Vegetable, error) {
	var list []models.Vegetable
	if err := r.db.WithContext(ctx).
		Where("status = ? AND category = ?", enums.VegetableStatusAvailable, category).
		Order("name ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// Search matches available vegetables by name substring, optionally narrowed
// to one category.
func (r *Repository) Search(ctx context.Context, query string, category *enums.VegetableCategory) ([]models.Vegetable, error) {
	tx := r.db.WithContext(ctx).Where("status = ?", enums.VegetableStatusAvailable)
	if q := strings.TrimSpace(query); q != "" {
		tx = tx.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
	}
	if category != nil {
		tx = tx.Where("category = ?", *category)
	}
	var list []models.Vegetable
	if err := tx.Order("name ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// ListAll returns every vegetable including unavailable ones, newest first.
func (r *Repository) ListAll(ctx context.Context) ([]models.Vegetable, error) {
	var list []models.Vegetable
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// UpdateFields applies a partial column update to the vegetable row.
func (r *Repository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Vegetable{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// Delete removes the vegetable row. Returns gorm.ErrRecordNotFound when no
// row matched.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Vegetable{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DecrementStock atomically reduces stock when enough remains and the item is
// still available. Returns false when the guard matched no row.
func (r *Repository) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Vegetable{}).
		Where("id = ? AND stock >= ? AND status = ?", id, quantity, enums.VegetableStatusAvailable).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// DecrementStockWithTx applies the conditional decrement using the
// provided transaction.
func (r *Repository) DecrementStockWithTx(tx *gorm.DB, id uuid.UUID, quantity int) (bool, error) {
	res := tx.
		Model(&models.Vegetable{}).
		Where("id = ? AND stock >= ? AND status = ?", id, quantity, enums.VegetableStatusAvailable).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
