package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/parisy/pasarsayur-backend/pkg/db/models"
	"github.com/parisy/pasarsayur-backend/pkg/enums"
	pkgerrors "github.com/parisy/pasarsayur-backend/pkg/errors"
)

type stubCartStore struct {
	lines   []Line
	cleared bool
}

func (s *stubCartStore) UpsertLine(ctx context.Context, userID, vegetableID uuid.UUID, quantity int) (*models.CartItem, error) {
	for i := range s.lines {
		line := &s.lines[i]
		if line.Item.UserID == userID && line.Item.VegetableID == vegetableID {
			line.Item.Quantity += quantity
			return &line.Item, nil
		}
	}
	return nil, gorm.ErrInvalidData
}

func (s *stubCartStore) ListForUser(ctx context.Context, userID uuid.UUID) ([]Line, error) {
	var out []Line
	for _, line := range s.lines {
		if line.Item.UserID == userID {
			out = append(out, line)
		}
	}
	return out, nil
}

func (s *stubCartStore) UpdateQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) error {
	for i := range s.lines {
		line := &s.lines[i]
		if line.Item.ID == itemID && line.Item.UserID == userID {
			line.Item.Quantity = quantity
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (s *stubCartStore) DeleteLine(ctx context.Context, userID, itemID uuid.UUID) error {
	for i, line := range s.lines {
		if line.Item.ID == itemID && line.Item.UserID == userID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (s *stubCartStore) ClearForUser(ctx context.Context, userID uuid.UUID) error {
	s.cleared = true
	s.lines = nil
	return nil
}

type stubVegetableFinder struct {
	byID map[uuid.UUID]*models.Vegetable
}

func (s *stubVegetableFinder) FindByID(ctx context.Context, id uuid.UUID) (*models.Vegetable, error) {
	v, ok := s.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return v, nil
}

func testLine(userID uuid.UUID, name string, price int64, quantity int) Line {
	vegID := uuid.New()
	return Line{
		Item: models.CartItem{
			ID:          uuid.New(),
			UserID:      userID,
			VegetableID: vegID,
			Quantity:    quantity,
		},
		Vegetable: models.Vegetable{
			ID:     vegID,
			Name:   name,
			Price:  decimal.NewFromInt(price),
			Status: enums.VegetableStatusAvailable,
		},
	}
}

func newCartService(t *testing.T, store *stubCartStore, finder *stubVegetableFinder) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{Repo: store, Vegetables: finder})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestAddItemIncrementsExistingLine(t *testing.T) {
	userID := uuid.New()
	line := testLine(userID, "Bayam", 3000, 2)
	store := &stubCartStore{lines: []Line{line}}
	finder := &stubVegetableFinder{byID: map[uuid.UUID]*models.Vegetable{
		line.Vegetable.ID: &line.Vegetable,
	}}
	svc := newCartService(t, store, finder)

	cart, err := svc.AddItem(context.Background(), userID, line.Vegetable.ID, 3)
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	if cart.Count != 1 {
		t.Fatalf("expected a single line, got %d", cart.Count)
	}
	if cart.Items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", cart.Items[0].Quantity)
	}
	if !cart.Total.Equal(decimal.NewFromInt(15000)) {
		t.Fatalf("expected total 15000, got %s", cart.Total)
	}
}

func TestAddItemRejectsUnavailableVegetable(t *testing.T) {
	userID := uuid.New()
	unavailable := &models.Vegetable{
		ID:     uuid.New(),
		Name:   "Wortel",
		Price:  decimal.NewFromInt(4000),
		Status: enums.VegetableStatusUnavailable,
	}
	finder := &stubVegetableFinder{byID: map[uuid.UUID]*models.Vegetable{unavailable.ID: unavailable}}
	svc := newCartService(t, &stubCartStore{}, finder)

	_, err := svc.AddItem(context.Background(), userID, unavailable.ID, 1)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	_, err = svc.AddItem(context.Background(), userID, uuid.New(), 1)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for unknown vegetable, got %v", err)
	}

	_, err = svc.AddItem(context.Background(), userID, unavailable.ID, 0)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for zero quantity, got %v", err)
	}
}

func TestViewComputesTotals(t *testing.T) {
	userID := uuid.New()
	store := &stubCartStore{lines: []Line{
		testLine(userID, "Bayam", 3000, 2),
		testLine(userID, "Wortel", 5000, 1),
		testLine(uuid.New(), "Kangkung", 2500, 4),
	}}
	svc := newCartService(t, store, &stubVegetableFinder{})

	cart, err := svc.View(context.Background(), userID)
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if cart.Count != 2 {
		t.Fatalf("expected 2 lines for the user, got %d", cart.Count)
	}
	if !cart.Total.Equal(decimal.NewFromInt(11000)) {
		t.Fatalf("expected 11000, got %s", cart.Total)
	}
	if !cart.Items[0].Subtotal.Equal(decimal.NewFromInt(6000)) {
		t.Fatalf("expected line subtotal 6000, got %s", cart.Items[0].Subtotal)
	}
}

func TestViewEmptyCart(t *testing.T) {
	svc := newCartService(t, &stubCartStore{}, &stubVegetableFinder{})

	cart, err := svc.View(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if cart.Count != 0 || len(cart.Items) != 0 {
		t.Fatalf("expected empty cart, got %+v", cart)
	}
	if !cart.Total.Equal(decimal.Zero) {
		t.Fatalf("expected zero total, got %s", cart.Total)
	}
}

func TestUpdateQuantityScopedToOwner(t *testing.T) {
	userID := uuid.New()
	line := testLine(userID, "Bayam", 3000, 2)
	store := &stubCartStore{lines: []Line{line}}
	svc := newCartService(t, store, &stubVegetableFinder{})

	cart, err := svc.UpdateQuantity(context.Background(), userID, line.Item.ID, 7)
	if err != nil {
		t.Fatalf("update quantity: %v", err)
	}
	if cart.Items[0].Quantity != 7 {
		t.Fatalf("expected quantity 7, got %d", cart.Items[0].Quantity)
	}

	// Another user cannot touch the line.
	_, err = svc.UpdateQuantity(context.Background(), uuid.New(), line.Item.ID, 1)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for foreign line, got %v", err)
	}
}

func TestRemoveAndClear(t *testing.T) {
	userID := uuid.New()
	line := testLine(userID, "Bayam", 3000, 2)
	store := &stubCartStore{lines: []Line{line, testLine(userID, "Wortel", 5000, 1)}}
	svc := newCartService(t, store, &stubVegetableFinder{})

	cart, err := svc.RemoveItem(context.Background(), userID, line.Item.ID)
	if err != nil {
		t.Fatalf("remove item: %v", err)
	}
	if cart.Count != 1 {
		t.Fatalf("expected 1 remaining line, got %d", cart.Count)
	}

	if err := svc.Clear(context.Background(), userID); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if !store.cleared {
		t.Fatal("expected clear to reach the repository")
	}

	// Clearing again is a no-op, not an error.
	if err := svc.Clear(context.Background(), userID); err != nil {
		t.Fatalf("clear empty cart: %v", err)
	}
}
