package transactions

import (
	"context"
	"errors"
	"fmt"
	"strings"
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

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type cartCheckoutStore interface {
	ListForUserWithTx(tx *gorm.DB, userID uuid.UUID) ([]cart.Line, error)
	ClearForUserWithTx(tx *gorm.DB, userID uuid.UUID) error
}

type stockDecrementer interface {
	DecrementStockWithTx(tx *gorm.DB, id uuid.UUID, quantity int) (bool, error)
}

// CheckoutInput carries the buyer's choices at checkout. Everything
// else (lines, prices, total) comes from the persisted cart and the
// catalog inside the checkout transaction.
type CheckoutInput struct {
	PaymentMethod string
	Notes         *string
}

// UpdateTransactionInput is a partial update to a transaction header.
// Status changes are unrestricted between the known statuses; there is
// no ordering requirement between pending, completed and cancelled.
type UpdateTransactionInput struct {
	Status        *string
	PaymentMethod *string
	Notes         *string
}

// Service implements checkout and transaction management.
type Service interface {
	Checkout(ctx context.Context, userID uuid.UUID, input CheckoutInput) (*TransactionDTO, error)
	Detail(ctx context.Context, actor policy.Actor, id uuid.UUID) (*TransactionDTO, error)
	History(ctx context.Context, userID uuid.UUID, params pagination.Params) (*TransactionList, error)
	ListAll(ctx context.Context, params pagination.Params, status string) (*TransactionList, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateTransactionInput) (*TransactionDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo    Repository
	tx      txRunner
	cart    cartCheckoutStore
	catalog stockDecrementer
	now     func() time.Time
}

// ServiceParams carries the transaction service dependencies.
type ServiceParams struct {
	Repo    Repository
	Tx      txRunner
	Cart    cartCheckoutStore
	Catalog stockDecrementer
	Now     func() time.Time
}

// NewService builds a transaction service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("transactions repository required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if params.Cart == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if params.Catalog == nil {
		return nil, fmt.Errorf("catalog store required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:    params.Repo,
		tx:      params.Tx,
		cart:    params.Cart,
		catalog: params.Catalog,
		now:     now,
	}, nil
}

// Checkout converts the caller's cart into a transaction. The whole
// operation runs in one database transaction: stock is decremented
// with a conditional guard per line, prices are snapshotted from the
// catalog rows read inside the transaction, and the cart is cleared.
// Any failed line rolls back everything.
func (s *service) Checkout(ctx context.Context, userID uuid.UUID, input CheckoutInput) (*TransactionDTO, error) {
	method, err := enums.ParsePaymentMethod(input.PaymentMethod)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown payment method").
			WithDetails(map[string]any{"payment_method": input.PaymentMethod})
	}

	var created *models.Transaction
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		lines, err := s.cart.ListForUserWithTx(tx, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
		}
		if len(lines) == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
		}

		total := decimal.Zero
		details := make([]models.TransactionDetail, 0, len(lines))
		for _, line := range lines {
			ok, err := s.catalog.DecrementStockWithTx(tx, line.Vegetable.ID, line.Item.Quantity)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decrement stock")
			}
			if !ok {
				return pkgerrors.New(pkgerrors.CodeConflict, "insufficient stock").
					WithDetails(map[string]any{
						"vegetable_id": line.Vegetable.ID,
						"vegetable":    line.Vegetable.Name,
						"requested":    line.Item.Quantity,
					})
			}
			subtotal := line.Vegetable.Price.Mul(decimal.NewFromInt(int64(line.Item.Quantity)))
			details = append(details, models.TransactionDetail{
				VegetableID: line.Vegetable.ID,
				Quantity:    line.Item.Quantity,
				UnitPrice:   line.Vegetable.Price,
				Subtotal:    subtotal,
			})
			total = total.Add(subtotal)
		}

		code, err := GenerateCode(s.now())
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate code")
		}

		transaction := &models.Transaction{
			Code:          code,
			UserID:        userID,
			TotalPrice:    total,
			PaymentMethod: method,
			Status:        enums.TransactionStatusPending,
			Notes:         input.Notes,
			Details:       details,
		}
		if err := repo.Create(ctx, transaction); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create transaction")
		}

		if err := s.cart.ClearForUserWithTx(tx, userID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
		}

		created = transaction
		return nil
	})
	if err != nil {
		return nil, err
	}
	return FromModel(created), nil
}

// Detail returns one transaction. Owners see their own; admin-tier
// actors see any.
func (s *service) Detail(ctx context.Context, actor policy.Actor, id uuid.UUID) (*TransactionDTO, error) {
	transaction, err := s.findTransaction(ctx, id)
	if err != nil {
		return nil, err
	}
	if transaction.UserID != actor.ID && !actor.IsAdminTier() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "transaction does not belong to user")
	}
	return FromModel(transaction), nil
}

// History lists the caller's transactions, newest first.
func (s *service) History(ctx context.Context, userID uuid.UUID, params pagination.Params) (*TransactionList, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}
	list, next, err := s.repo.List(ctx, ListQuery{
		UserID: userID,
		Limit:  params.Limit,
		Cursor: cursor,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list transactions")
	}
	return buildList(list, next), nil
}

// ListAll lists every transaction, optionally filtered by status.
func (s *service) ListAll(ctx context.Context, params pagination.Params, status string) (*TransactionList, error) {
	var statusFilter *enums.TransactionStatus
	if strings.TrimSpace(status) != "" {
		parsed, err := enums.ParseTransactionStatus(status)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown status").
				WithDetails(map[string]any{"status": status})
		}
		statusFilter = &parsed
	}
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}
	list, next, err := s.repo.List(ctx, ListQuery{
		Status: statusFilter,
		Limit:  params.Limit,
		Cursor: cursor,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list transactions")
	}
	return buildList(list, next), nil
}

// Update applies a partial update to the transaction header. Detail
// lines are immutable after checkout.
func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateTransactionInput) (*TransactionDTO, error) {
	fields := map[string]any{}
	if input.Status != nil {
		parsed, err := enums.ParseTransactionStatus(*input.Status)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown status").
				WithDetails(map[string]any{"status": *input.Status})
		}
		fields["status"] = parsed
	}
	if input.PaymentMethod != nil {
		parsed, err := enums.ParsePaymentMethod(*input.PaymentMethod)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown payment method").
				WithDetails(map[string]any{"payment_method": *input.PaymentMethod})
		}
		fields["payment_method"] = parsed
	}
	if input.Notes != nil {
		fields["notes"] = *input.Notes
	}
	if len(fields) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "nothing to update")
	}

	if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "transaction not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update transaction")
	}

	transaction, err := s.findTransaction(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(transaction), nil
}

// Delete removes a transaction and its detail lines. Stock is not
// restored.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "transaction not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete transaction")
	}
	return nil
}

func (s *service) findTransaction(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	transaction, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "transaction not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load transaction")
	}
	return transaction, nil
}

func buildList(list []models.Transaction, next *pagination.Cursor) *TransactionList {
	out := &TransactionList{Transactions: FromModels(list)}
	if next != nil {
		out.NextCursor = pagination.EncodeCursor(*next)
	}
	return out
}
