package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/parisy/pasarsayur-backend/pkg/db/models"
)

// Line is a cart row joined with its vegetable, as loaded for display
// and checkout.
type Line struct {
	Item      models.CartItem
	Vegetable models.Vegetable
}

// Repository exposes cart persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a cart repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// UpsertLine adds quantity to the user's existing line for the
// vegetable, or inserts a new line. The (user_id, vegetable_id) unique
// index keeps concurrent inserts from duplicating lines.
func (r *Repository) UpsertLine(ctx context.Context, userID, vegetableID uuid.UUID, quantity int) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		findErr := tx.
			Where("user_id = ? AND vegetable_id = ?", userID, vegetableID).
			First(&item).Error
		if findErr == nil {
			item.Quantity += quantity
			return tx.Model(&models.CartItem{}).
				Where("id = ?", item.ID).
				UpdateColumn("quantity", item.Quantity).Error
		}
		if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return findErr
		}
		item = models.CartItem{
			ID:          uuid.New(),
			UserID:      userID,
			VegetableID: vegetableID,
			Quantity:    quantity,
		}
		return tx.Create(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ListForUser returns the user's cart lines joined with their
// vegetables, oldest line first.
func (r *Repository) ListForUser(ctx context.Context, userID uuid.UUID) ([]Line, error) {
	return listLines(r.db.WithContext(ctx), userID)
}

// UpdateQuantity sets the absolute quantity on one of the user's
// lines. Returns gorm.ErrRecordNotFound when the line is not theirs.
func (r *Repository) UpdateQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) error {
	res := r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("id = ? AND user_id = ?", itemID, userID).
		UpdateColumn("quantity", quantity)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteLine removes one of the user's lines.
func (r *Repository) DeleteLine(ctx context.Context, userID, itemID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		Delete(&models.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListForUserWithTx loads the user's cart lines using the provided
// transaction.
func (r *Repository) ListForUserWithTx(tx *gorm.DB, userID uuid.UUID) ([]Line, error) {
	return listLines(tx, userID)
}

func listLines(db *gorm.DB, userID uuid.UUID) ([]Line, error) {
	var items []models.CartItem
	if err := db.
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.VegetableID)
	}
	var vegetables []models.Vegetable
	if err := db.Where("id IN ?", ids).Find(&vegetables).Error; err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]models.Vegetable, len(vegetables))
	for _, v := range vegetables {
		byID[v.ID] = v
	}

	lines := make([]Line, 0, len(items))
	for _, item := range items {
		v, ok := byID[item.VegetableID]
		if !ok {
			// Vegetable deleted out from under the cart; skip the line.
			continue
		}
		lines = append(lines, Line{Item: item, Vegetable: v})
	}
	return lines, nil
}

// ClearForUserWithTx empties the user's cart using the provided
// transaction.
func (r *Repository) ClearForUserWithTx(tx *gorm.DB, userID uuid.UUID) error {
	return tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}

// ClearForUser removes every line in the user's cart.
func (r *Repository) ClearForUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.CartItem{}).Error
}
