package finance

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/parisy/pasarsayur-backend/pkg/db/models"
	"github.com/parisy/pasarsayur-backend/pkg/enums"
	"github.com/parisy/pasarsayur-backend/pkg/pagination"
)

// StatusAggregate is one row of the per-status rollup.
type StatusAggregate struct {
	Status enums.TransactionStatus
	Count  int64
	Total  decimal.Decimal
}

// HistoryQuery filters the transaction history listing.
type HistoryQuery struct {
	Status *enums.TransactionStatus
	Start  *time.Time
	End    *time.Time
	Limit  int
	Cursor *pagination.Cursor
}

// Repository runs the finance read queries against the transactions
// tables.
type Repository interface {
	AggregateByStatus(ctx context.Context) ([]StatusAggregate, error)
	ListHistory(ctx context.Context, query HistoryQuery) ([]models.Transaction, *pagination.Cursor, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a finance repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// AggregateByStatus sums total_price and counts rows per transaction
// status in a single grouped query.
func (r *repository) AggregateByStatus(ctx context.Context) ([]StatusAggregate, error) {
	var rows []StatusAggregate
	err := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(total_price), 0) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) ListHistory(ctx context.Context, query HistoryQuery) ([]models.Transaction, *pagination.Cursor, error) {
	limit := pagination.LimitWithBuffer(query.Limit)
	normalized := pagination.NormalizeLimit(query.Limit)

	q := r.db.WithContext(ctx).Model(&models.Transaction{}).Preload("Details")
	if query.Status != nil {
		q = q.Where("status = ?", *query.Status)
	}
	if query.Start != nil {
		q = q.Where("created_at >= ?", *query.Start)
	}
	if query.End != nil {
		q = q.Where("created_at < ?", *query.End)
	}
	if query.Cursor != nil {
		q = q.Where("(created_at, id) < (?, ?)", query.Cursor.CreatedAt, query.Cursor.ID)
	}

	var list []models.Transaction
	if err := q.Order("created_at DESC, id DESC").Limit(limit).Find(&list).Error; err != nil {
		return nil, nil, err
	}

	if len(list) > normalized {
		next := list[normalized]
		list = list[:normalized]
		return list, &pagination.Cursor{CreatedAt: next.CreatedAt, ID: next.ID}, nil
	}
	return list, nil, nil
}
