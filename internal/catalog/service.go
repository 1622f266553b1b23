package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/parisy/pasarsayur-backend/internal/policy"
	"github.com/parisy/pasarsayur-backend/pkg/db"
	"github.com/parisy/pasarsayur-backend/pkg/db/models"
	"github.com/parisy/pasarsayur-backend/pkg/enums"
	pkgerrors "github.com/parisy/pasarsayur-backend/pkg/errors"
)

// Service exposes catalog read and management operations. Authorization is
// enforced by the route-level permission gate, not re-checked here.
type Service interface {
	List(ctx context.Context) ([]VegetableDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*VegetableDTO, error)
	ByCategory(ctx context.Context, category string) ([]VegetableDTO, error)
	Search(ctx context.Context, query, category string) ([]VegetableDTO, error)
	AdminList(ctx context.Context) ([]VegetableDTO, error)
	Create(ctx context.Context, actor policy.Actor, input CreateVegetableInput) (*VegetableDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateVegetableInput) (*VegetableDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateStock(ctx context.Context, id uuid.UUID, stock int) (*VegetableDTO, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*VegetableDTO, error)
}

// CreateVegetableInput holds the validated payload to create a listing.
type CreateVegetableInput struct {
	Name        string
	Description *string
	Price       decimal.Decimal
	Stock       int
	Image       *string
	Category    string
}

// UpdateVegetableInput holds optional mutation values for a listing. Stock
// and status have dedicated operations and are not updatable here.
type UpdateVegetableInput struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Image       *string
	Category    *string
}

type vegetableStore interface {
	Create(ctx context.Context, vegetable *models.Vegetable) (*models.Vegetable, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Vegetable, error)
	ListAvailable(ctx context.Context) ([]models.Vegetable, error)
	ListByCategory(ctx context.Context, category enums.VegetableCategory) ([]models.Vegetable, error)
	Search(ctx context.Context, query string, category *enums.VegetableCategory) ([]models.Vegetable, error)
	ListAll(ctx context.Context) ([]models.Vegetable, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo vegetableStore
}

// NewService constructs a catalog service.
func NewService(repo vegetableStore) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]VegetableDTO, error) {
	list, err := s.repo.ListAvailable(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list vegetables")
	}
	return FromModels(list), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*VegetableDTO, error) {
	vegetable, err := s.findVegetable(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(vegetable), nil
}

func (s *service) ByCategory(ctx context.Context, category string) ([]VegetableDTO, error) {
	parsed, err := enums.ParseVegetableCategory(category)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown category").WithDetails(map[string]any{"category": category})
	}
	list, err := s.repo.ListByCategory(ctx, parsed)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list vegetables by category")
	}
	return FromModels(list), nil
}

func (s *service) Search(ctx context.Context, query, category string) ([]VegetableDTO, error) {
	var categoryFilter *enums.VegetableCategory
	if strings.TrimSpace(category) != "" {
		parsed, err := enums.ParseVegetableCategory(category)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown category").WithDetails(map[string]any{"category": category})
		}
		categoryFilter = &parsed
	}
	list, err := s.repo.Search(ctx, query, categoryFilter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search vegetables")
	}
	return FromModels(list), nil
}

func (s *service) AdminList(ctx context.Context) ([]VegetableDTO, error) {
	list, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list vegetables")
	}
	return FromModels(list), nil
}

func (s *service) Create(ctx context.Context, actor policy.Actor, input CreateVegetableInput) (*VegetableDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	category, err := enums.ParseVegetableCategory(input.Category)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown category").WithDetails(map[string]any{"category": input.Category})
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if input.Stock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock cannot be negative")
	}

	creator := actor.ID
	vegetable := &models.Vegetable{
		Name:        name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		Image:       input.Image,
		Category:    category,
		Status:      enums.VegetableStatusAvailable,
		CreatedBy:   &creator,
	}
	created, err := s.repo.Create(ctx, vegetable)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "vegetable name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create vegetable")
	}
	return FromModel(created), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateVegetableInput) (*VegetableDTO, error) {
	if _, err := s.findVegetable(ctx, id); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		fields["name"] = name
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
		}
		fields["price"] = *input.Price
	}
	if input.Image != nil {
		fields["image"] = *input.Image
	}
	if input.Category != nil {
		category, err := enums.ParseVegetableCategory(*input.Category)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown category").WithDetails(map[string]any{"category": *input.Category})
		}
		fields["category"] = category
	}
	if len(fields) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "nothing to update")
	}

	if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "vegetable name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update vegetable")
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "vegetable not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete vegetable")
	}
	return nil
}

// UpdateStock sets the absolute stock level.
func (s *service) UpdateStock(ctx context.Context, id uuid.UUID, stock int) (*VegetableDTO, error) {
	if stock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock cannot be negative")
	}
	if _, err := s.findVegetable(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateFields(ctx, id, map[string]any{"stock": stock}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update stock")
	}
	return s.Get(ctx, id)
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*VegetableDTO, error) {
	parsed, err := enums.ParseVegetableStatus(status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown status").WithDetails(map[string]any{"status": status})
	}
	if _, err := s.findVegetable(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateFields(ctx, id, map[string]any{"status": parsed}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update status")
	}
	return s.Get(ctx, id)
}

func (s *service) findVegetable(ctx context.Context, id uuid.UUID) (*models.Vegetable, error) {
	vegetable, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vegetable not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vegetable")
	}
	return vegetable, nil
}
