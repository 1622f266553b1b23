package transactions

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/parisy/pasarsayur-backend/internal/cart"
	"github.com/parisy/pasarsayur-backend/internal/policy"
	"github.com/parisy/pasarsayur-backend/pkg/db/models"
	"github.com/parisy/pasarsayur-backend/pkg/enums"
	pkgerrors "github.com/parisy/pasarsayur-backend/pkg/errors"
	"github.com/parisy/pasarsayur-backend/pkg/pagination"
)

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubTransactionsRepo struct {
	byID    map[uuid.UUID]*models.Transaction
	created *models.Transaction
	updated map[string]any
	deleted []uuid.UUID
	listFn  func(query ListQuery) ([]models.Transaction, *pagination.Cursor, error)
}

func newStubTransactionsRepo() *stubTransactionsRepo {
	return &stubTransactionsRepo{byID: map[uuid.UUID]*models.Transaction{}}
}

func (s *stubTransactionsRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubTransactionsRepo) Create(ctx context.Context, transaction *models.Transaction) error {
	transaction.ID = uuid.New()
	for i := range transaction.Details {
		transaction.Details[i].ID = uuid.New()
		transaction.Details[i].TransactionID = transaction.ID
	}
	s.created = transaction
	s.byID[transaction.ID] = transaction
	return nil
}

func (s *stubTransactionsRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	t, ok := s.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (s *stubTransactionsRepo) List(ctx context.Context, query ListQuery) ([]models.Transaction, *pagination.Cursor, error) {
	if s.listFn != nil {
		return s.listFn(query)
	}
	return nil, nil, nil
}

func (s *stubTransactionsRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	t, ok := s.byID[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.updated = fields
	if status, ok := fields["status"].(enums.TransactionStatus); ok {
		t.Status = status
	}
	if notes, ok := fields["notes"].(string); ok {
		t.Notes = &notes
	}
	return nil
}

func (s *stubTransactionsRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := s.byID[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	s.deleted = append(s.deleted, id)
	delete(s.byID, id)
	return nil
}

type stubCheckoutCart struct {
	lines   []cart.Line
	cleared bool
}

func (s *stubCheckoutCart) ListForUserWithTx(tx *gorm.DB, userID uuid.UUID) ([]cart.Line, error) {
	return s.lines, nil
}

func (s *stubCheckoutCart) ClearForUserWithTx(tx *gorm.DB, userID uuid.UUID) error {
	s.cleared = true
	return nil
}

type stubInventory struct {
	stock      map[uuid.UUID]int
	decremented map[uuid.UUID]int
}

func (s *stubInventory) DecrementStockWithTx(tx *gorm.DB, id uuid.UUID, quantity int) (bool, error) {
	if s.stock[id] < quantity {
		return false, nil
	}
	s.stock[id] -= quantity
	if s.decremented == nil {
		s.decremented = map[uuid.UUID]int{}
	}
	s.decremented[id] += quantity
	return true, nil
}

func checkoutLine(userID uuid.UUID, price int64, quantity int) cart.Line {
	vegID := uuid.New()
	return cart.Line{
		Item: models.CartItem{
			ID:          uuid.New(),
			UserID:      userID,
			VegetableID: vegID,
			Quantity:    quantity,
		},
		Vegetable: models.Vegetable{
			ID:     vegID,
			Name:   "Bayam",
			Price:  decimal.NewFromInt(price),
			Status: enums.VegetableStatusAvailable,
		},
	}
}

func newCheckoutService(t *testing.T, repo *stubTransactionsRepo, cartStore *stubCheckoutCart, inventory *stubInventory) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Repo:    repo,
		Tx:      stubTxRunner{},
		Cart:    cartStore,
		Catalog: inventory,
		Now:     func() time.Time { return time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC) },
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestCheckoutCreatesSnapshotAndClearsCart(t *testing.T) {
	userID := uuid.New()
	lineA := checkoutLine(userID, 3000, 2)
	lineB := checkoutLine(userID, 5000, 1)
	repo := newStubTransactionsRepo()
	cartStore := &stubCheckoutCart{lines: []cart.Line{lineA, lineB}}
	inventory := &stubInventory{stock: map[uuid.UUID]int{
		lineA.Vegetable.ID: 10,
		lineB.Vegetable.ID: 5,
	}}
	svc := newCheckoutService(t, repo, cartStore, inventory)

	dto, err := svc.Checkout(context.Background(), userID, CheckoutInput{PaymentMethod: "transfer"})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	if !strings.HasPrefix(dto.Code, "TRX-20250601-") {
		t.Fatalf("unexpected code %q", dto.Code)
	}
	if !dto.TotalPrice.Equal(decimal.NewFromInt(11000)) {
		t.Fatalf("expected total 11000, got %s", dto.TotalPrice)
	}
	if dto.Status != string(enums.TransactionStatusPending) {
		t.Fatalf("expected pending, got %s", dto.Status)
	}
	if len(dto.Details) != 2 {
		t.Fatalf("expected 2 detail lines, got %d", len(dto.Details))
	}
	if !dto.Details[0].UnitPrice.Equal(decimal.NewFromInt(3000)) {
		t.Fatalf("expected snapshot unit price 3000, got %s", dto.Details[0].UnitPrice)
	}
	if !dto.Details[0].Subtotal.Equal(decimal.NewFromInt(6000)) {
		t.Fatalf("expected snapshot subtotal 6000, got %s", dto.Details[0].Subtotal)
	}
	if !cartStore.cleared {
		t.Fatal("expected cart to be cleared")
	}
	if inventory.stock[lineA.Vegetable.ID] != 8 || inventory.stock[lineB.Vegetable.ID] != 4 {
		t.Fatalf("expected stock decremented, got %+v", inventory.stock)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	svc := newCheckoutService(t, newStubTransactionsRepo(), &stubCheckoutCart{}, &stubInventory{stock: map[uuid.UUID]int{}})

	_, err := svc.Checkout(context.Background(), uuid.New(), CheckoutInput{PaymentMethod: "cash"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if typed.Message() != "cart is empty" {
		t.Fatalf("unexpected message %q", typed.Message())
	}
}

func TestCheckoutInsufficientStockRollsBack(t *testing.T) {
	userID := uuid.New()
	line := checkoutLine(userID, 3000, 5)
	repo := newStubTransactionsRepo()
	cartStore := &stubCheckoutCart{lines: []cart.Line{line}}
	inventory := &stubInventory{stock: map[uuid.UUID]int{line.Vegetable.ID: 3}}
	svc := newCheckoutService(t, repo, cartStore, inventory)

	_, err := svc.Checkout(context.Background(), userID, CheckoutInput{PaymentMethod: "transfer"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	if repo.created != nil {
		t.Fatal("no transaction should be created on stock failure")
	}
	if cartStore.cleared {
		t.Fatal("cart must survive a failed checkout")
	}
}

func TestCheckoutUnknownPaymentMethod(t *testing.T) {
	svc := newCheckoutService(t, newStubTransactionsRepo(), &stubCheckoutCart{}, &stubInventory{})

	_, err := svc.Checkout(context.Background(), uuid.New(), CheckoutInput{PaymentMethod: "dana"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDetailScopedToOwnerOrAdminTier(t *testing.T) {
	ownerID := uuid.New()
	repo := newStubTransactionsRepo()
	transaction := &models.Transaction{
		ID:     uuid.New(),
		Code:   "TRX-20250601-ABCDEF",
		UserID: ownerID,
		Status: enums.TransactionStatusPending,
	}
	repo.byID[transaction.ID] = transaction
	svc := newCheckoutService(t, repo, &stubCheckoutCart{}, &stubInventory{})

	owner := policy.Actor{ID: ownerID, Role: enums.RoleUser, SubRole: enums.SubRoleWarga}
	if _, err := svc.Detail(context.Background(), owner, transaction.ID); err != nil {
		t.Fatalf("owner detail: %v", err)
	}

	admin := policy.Actor{ID: uuid.New(), Role: enums.RoleAdmin, SubRole: enums.SubRoleWarga}
	if _, err := svc.Detail(context.Background(), admin, transaction.ID); err != nil {
		t.Fatalf("admin detail: %v", err)
	}

	stranger := policy.Actor{ID: uuid.New(), Role: enums.RoleUser, SubRole: enums.SubRoleWarga}
	_, err := svc.Detail(context.Background(), stranger, transaction.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}

	_, err = svc.Detail(context.Background(), owner, uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestHistoryPassesUserScope(t *testing.T) {
	userID := uuid.New()
	repo := newStubTransactionsRepo()
	var captured ListQuery
	next := pagination.Cursor{CreatedAt: time.Now().UTC(), ID: uuid.New()}
	repo.listFn = func(query ListQuery) ([]models.Transaction, *pagination.Cursor, error) {
		captured = query
		return []models.Transaction{{ID: uuid.New(), UserID: userID}}, &next, nil
	}
	svc := newCheckoutService(t, repo, &stubCheckoutCart{}, &stubInventory{})

	list, err := svc.History(context.Background(), userID, pagination.Params{Limit: 10})
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if captured.UserID != userID {
		t.Fatal("expected list to be scoped to the caller")
	}
	if list.NextCursor == "" {
		t.Fatal("expected next cursor to be encoded")
	}
}

func TestListAllStatusFilter(t *testing.T) {
	repo := newStubTransactionsRepo()
	var captured ListQuery
	repo.listFn = func(query ListQuery) ([]models.Transaction, *pagination.Cursor, error) {
		captured = query
		return nil, nil, nil
	}
	svc := newCheckoutService(t, repo, &stubCheckoutCart{}, &stubInventory{})

	if _, err := svc.ListAll(context.Background(), pagination.Params{}, "completed"); err != nil {
		t.Fatalf("list all: %v", err)
	}
	if captured.Status == nil || *captured.Status != enums.TransactionStatusCompleted {
		t.Fatal("expected status filter to reach the repository")
	}
	if captured.UserID != uuid.Nil {
		t.Fatal("admin list must not be user scoped")
	}

	if _, err := svc.ListAll(context.Background(), pagination.Params{}, "refunded"); err == nil {
		t.Fatal("expected unknown status rejection")
	}
}

func TestUpdateAllowsAnyStatusDirection(t *testing.T) {
	repo := newStubTransactionsRepo()
	transaction := &models.Transaction{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Status: enums.TransactionStatusCompleted,
	}
	repo.byID[transaction.ID] = transaction
	svc := newCheckoutService(t, repo, &stubCheckoutCart{}, &stubInventory{})

	// Completed back to pending is a plain update, not a state violation.
	status := "pending"
	dto, err := svc.Update(context.Background(), transaction.ID, UpdateTransactionInput{Status: &status})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if dto.Status != string(enums.TransactionStatusPending) {
		t.Fatalf("expected pending, got %s", dto.Status)
	}

	_, err = svc.Update(context.Background(), transaction.ID, UpdateTransactionInput{})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for empty update, got %v", err)
	}

	bad := "refunded"
	_, err = svc.Update(context.Background(), transaction.ID, UpdateTransactionInput{Status: &bad})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for unknown status, got %v", err)
	}
}

func TestDeleteTransaction(t *testing.T) {
	repo := newStubTransactionsRepo()
	transaction := &models.Transaction{ID: uuid.New(), UserID: uuid.New()}
	repo.byID[transaction.ID] = transaction
	svc := newCheckoutService(t, repo, &stubCheckoutCart{}, &stubInventory{})

	if err := svc.Delete(context.Background(), transaction.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	err := svc.Delete(context.Background(), transaction.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
