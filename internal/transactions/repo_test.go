package transactions

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/parisy/pasarsayur-backend/pkg/db/models"
	"github.com/parisy/pasarsayur-backend/pkg/enums"
)

func setupTransactionsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	transactions := `
CREATE TABLE IF NOT EXISTS transactions (
  id TEXT PRIMARY KEY,
  code TEXT NOT NULL UNIQUE,
  user_id TEXT NOT NULL,
  total_price NUMERIC NOT NULL,
  payment_method TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  notes TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	details := `
CREATE TABLE IF NOT EXISTS transaction_details (
  id TEXT PRIMARY KEY,
  transaction_id TEXT NOT NULL,
  vegetable_id TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  unit_price NUMERIC NOT NULL,
  subtotal NUMERIC NOT NULL,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(transactions).Error)
	require.NoError(t, db.Exec(details).Error)
	return db
}

func createTestTransaction(t *testing.T, repo Repository, userID uuid.UUID, code string, created time.Time, status enums.TransactionStatus) *models.Transaction {
	t.Helper()

	unit := decimal.NewFromInt(5000)
	transaction := &models.Transaction{
		ID:            uuid.New(),
		Code:          code,
		UserID:        userID,
		TotalPrice:    unit.Mul(decimal.NewFromInt(2)),
		PaymentMethod: enums.PaymentMethodTransfer,
		Status:        status,
		CreatedAt:     created,
		UpdatedAt:     created,
		Details: []models.TransactionDetail{
			{
				ID:          uuid.New(),
				VegetableID: uuid.New(),
				Quantity:    2,
				UnitPrice:   unit,
				Subtotal:    unit.Mul(decimal.NewFromInt(2)),
				CreatedAt:   created,
			},
		},
	}
	require.NoError(t, repo.Create(context.Background(), transaction))
	return transaction
}

func TestRepositoryFindByIDPreloadsDetails(t *testing.T) {
	repo := NewRepository(setupTransactionsTestDB(t))
	created := createTestTransaction(t, repo, uuid.New(), "TRX-20250601-AAAAAA", time.Now().UTC(), enums.TransactionStatusPending)

	found, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, found.Details, 1)
	assert.Equal(t, created.Code, found.Code)
	assert.Equal(t, created.Details[0].VegetableID, found.Details[0].VegetableID)
	assert.True(t, found.Details[0].Subtotal.Equal(decimal.NewFromInt(10000)))

	_, err = repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryListPagination(t *testing.T) {
	repo := NewRepository(setupTransactionsTestDB(t))
	userID := uuid.New()

	now := time.Now().UTC()
	older := createTestTransaction(t, repo, userID, "TRX-20250601-BBBBBB", now.Add(-time.Hour), enums.TransactionStatusPending)
	newer := createTestTransaction(t, repo, userID, "TRX-20250601-CCCCCC", now, enums.TransactionStatusCompleted)
	createTestTransaction(t, repo, uuid.New(), "TRX-20250601-DDDDDD", now, enums.TransactionStatusPending)

	list, cursor, err := repo.List(context.Background(), ListQuery{UserID: userID, Limit: 1})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, cursor)
	assert.Equal(t, newer.Code, list[0].Code)
	require.Len(t, list[0].Details, 1)

	second, last, err := repo.List(context.Background(), ListQuery{UserID: userID, Limit: 1, Cursor: cursor})
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, older.Code, second[0].Code)
	assert.Nil(t, last)
}

func TestRepositoryListStatusFilter(t *testing.T) {
	repo := NewRepository(setupTransactionsTestDB(t))
	userID := uuid.New()

	now := time.Now().UTC()
	createTestTransaction(t, repo, userID, "TRX-20250601-EEEEEE", now.Add(-time.Minute), enums.TransactionStatusPending)
	completed := createTestTransaction(t, repo, userID, "TRX-20250601-FFFFFF", now, enums.TransactionStatusCompleted)

	status := enums.TransactionStatusCompleted
	list, _, err := repo.List(context.Background(), ListQuery{Status: &status, Limit: 10})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, completed.Code, list[0].Code)
}

func TestRepositoryUpdateFieldsAndDelete(t *testing.T) {
	repo := NewRepository(setupTransactionsTestDB(t))
	created := createTestTransaction(t, repo, uuid.New(), "TRX-20250601-GGGGGG", time.Now().UTC(), enums.TransactionStatusPending)

	err := repo.UpdateFields(context.Background(), created.ID, map[string]any{"status": enums.TransactionStatusCompleted})
	require.NoError(t, err)

	found, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.TransactionStatusCompleted, found.Status)

	assert.ErrorIs(t, repo.UpdateFields(context.Background(), uuid.New(), map[string]any{"status": enums.TransactionStatusCancelled}), gorm.ErrRecordNotFound)

	require.NoError(t, repo.Delete(context.Background(), created.ID))
	assert.ErrorIs(t, repo.Delete(context.Background(), created.ID), gorm.ErrRecordNotFound)
}
