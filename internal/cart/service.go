package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/parisy/pasarsayur-backend/pkg/db/models"
	"github.com/parisy/pasarsayur-backend/pkg/enums"
	pkgerrors "github.com/parisy/pasarsayur-backend/pkg/errors"
)

// Service manages a user's persisted shopping cart. Every operation is
// scoped to the acting user; carts are never visible across accounts.
type Service interface {
	AddItem(ctx context.Context, userID, vegetableID uuid.UUID, quantity int) (*CartDTO, error)
	View(ctx context.Context, userID uuid.UUID) (*CartDTO, error)
	UpdateQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*CartDTO, error)
	RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*CartDTO, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

type cartStore interface {
	UpsertLine(ctx context.Context, userID, vegetableID uuid.UUID, quantity int) (*models.CartItem, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]Line, error)
	UpdateQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) error
	DeleteLine(ctx context.Context, userID, itemID uuid.UUID) error
	ClearForUser(ctx context.Context, userID uuid.UUID) error
}

type vegetableFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Vegetable, error)
}

type service struct {
	repo       cartStore
	vegetables vegetableFinder
}

// ServiceParams carries the cart service dependencies.
type ServiceParams struct {
	Repo       cartStore
	Vegetables vegetableFinder
}

// NewService constructs a cart service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("cart repository is required")
	}
	if params.Vegetables == nil {
		return nil, fmt.Errorf("vegetable finder is required")
	}
	return &service{repo: params.Repo, vegetables: params.Vegetables}, nil
}

// AddItem puts quantity of a vegetable in the cart. Adding a vegetable
// already in the cart increments the existing line instead of creating
// a second one.
func (s *service) AddItem(ctx context.Context, userID, vegetableID uuid.UUID, quantity int) (*CartDTO, error) {
	if quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	vegetable, err := s.vegetables.FindByID(ctx, vegetableID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vegetable not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vegetable")
	}
	if vegetable.Status != enums.VegetableStatusAvailable {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vegetable is not available")
	}

	if _, err := s.repo.UpsertLine(ctx, userID, vegetableID, quantity); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add cart line")
	}
	return s.View(ctx, userID)
}

// View returns the cart with per-line subtotals and the running total,
// priced at the catalog's current prices.
func (s *service) View(ctx context.Context, userID uuid.UUID) (*CartDTO, error) {
	lines, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list cart")
	}
	return cartFromLines(lines), nil
}

// UpdateQuantity sets the absolute quantity on a line the user owns.
func (s *service) UpdateQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*CartDTO, error) {
	if quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	if err := s.repo.UpdateQuantity(ctx, userID, itemID, quantity); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update cart line")
	}
	return s.View(ctx, userID)
}

// RemoveItem drops a line the user owns.
func (s *service) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*CartDTO, error) {
	if err := s.repo.DeleteLine(ctx, userID, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove cart line")
	}
	return s.View(ctx, userID)
}

// Clear empties the cart. Clearing an already-empty cart succeeds.
func (s *service) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.ClearForUser(ctx, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return nil
}
