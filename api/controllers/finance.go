package controllers

import (
	"net/http"

	"github.com/parisy/pasarsayur-backend/api/responses"
	"github.com/parisy/pasarsayur-backend/api/validators"
	financesvc "github.com/parisy/pasarsayur-backend/internal/finance"
	pkgerrors "github.com/parisy/pasarsayur-backend/pkg/errors"
	"github.com/parisy/pasarsayur-backend/pkg/logger"
	"github.com/parisy/pasarsayur-backend/pkg/pagination"
)

// FinanceSummary returns the treasury rollup for the community.
func FinanceSummary(svc financesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "finance service unavailable"))
			return
		}

		summary, err := svc.Summary(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

// FinanceHistory lists transactions for the treasury view, filtered by
// status and an inclusive date range.
func FinanceHistory(svc financesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "finance service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 0, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		query := r.URL.Query()
		list, err := svc.History(r.Context(), financesvc.HistoryInput{
			Status:    query.Get("status"),
			StartDate: query.Get("start_date"),
			EndDate:   query.Get("end_date"),
			Limit:     limit,
			Cursor:    query.Get("cursor"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}
