package finance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/parisy/pasarsayur-backend/internal/transactions"
	"github.com/parisy/pasarsayur-backend/pkg/enums"
	pkgerrors "github.com/parisy/pasarsayur-backend/pkg/errors"
	"github.com/parisy/pasarsayur-backend/pkg/pagination"
)

const dateLayout = "2006-01-02"

// SummaryDTO is the community treasury rollup. Only completed
// transactions count as income; pending and cancelled totals are
// informational.
type SummaryDTO struct {
	TotalIncome    decimal.Decimal `json:"total_income"`
	TotalPending   decimal.Decimal `json:"total_pending"`
	TotalCancelled decimal.Decimal `json:"total_cancelled"`
	CountCompleted int64           `json:"count_completed"`
	CountPending   int64           `json:"count_pending"`
	CountCancelled int64           `json:"count_cancelled"`
	CountTotal     int64           `json:"count_total"`
}

// HistoryInput carries raw history filters as received from the API.
type HistoryInput struct {
	Status    string
	StartDate string
	EndDate   string
	Limit     int
	Cursor    string
}

// Service exposes the finance reads available to the treasury roles.
type Service interface {
	Summary(ctx context.Context) (*SummaryDTO, error)
	History(ctx context.Context, input HistoryInput) (*transactions.TransactionList, error)
}

type service struct {
	repo Repository
}

// NewService constructs a finance service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("finance repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Summary(ctx context.Context) (*SummaryDTO, error) {
	rows, err := s.repo.AggregateByStatus(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "aggregate transactions")
	}

	out := &SummaryDTO{
		TotalIncome:    decimal.Zero,
		TotalPending:   decimal.Zero,
		TotalCancelled: decimal.Zero,
	}
	for _, row := range rows {
		out.CountTotal += row.Count
		switch row.Status {
		case enums.TransactionStatusCompleted:
			out.TotalIncome = out.TotalIncome.Add(row.Total)
			out.CountCompleted = row.Count
		case enums.TransactionStatusPending:
			out.TotalPending = out.TotalPending.Add(row.Total)
			out.CountPending = row.Count
		case enums.TransactionStatusCancelled:
			out.TotalCancelled = out.TotalCancelled.Add(row.Total)
			out.CountCancelled = row.Count
		}
	}
	return out, nil
}

func (s *service) History(ctx context.Context, input HistoryInput) (*transactions.TransactionList, error) {
	query := HistoryQuery{Limit: input.Limit}

	if strings.TrimSpace(input.Status) != "" {
		parsed, err := enums.ParseTransactionStatus(input.Status)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown status").
				WithDetails(map[string]any{"status": input.Status})
		}
		query.Status = &parsed
	}
	if strings.TrimSpace(input.StartDate) != "" {
		start, err := time.Parse(dateLayout, input.StartDate)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid start_date, expected YYYY-MM-DD")
		}
		query.Start = &start
	}
	if strings.TrimSpace(input.EndDate) != "" {
		end, err := time.Parse(dateLayout, input.EndDate)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid end_date, expected YYYY-MM-DD")
		}
		// End date is inclusive: filter up to the start of the next day.
		endExclusive := end.AddDate(0, 0, 1)
		query.End = &endExclusive
	}
	if query.Start != nil && query.End != nil && !query.Start.Before(*query.End) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "start_date must be before end_date")
	}

	cursor, err := pagination.ParseCursor(input.Cursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}
	query.Cursor = cursor

	list, next, err := s.repo.ListHistory(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list history")
	}

	out := &transactions.TransactionList{Transactions: transactions.FromModels(list)}
	if next != nil {
		out.NextCursor = pagination.EncodeCursor(*next)
	}
	return out, nil
}
