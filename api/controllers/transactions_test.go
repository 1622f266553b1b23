package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/parisy/pasarsayur-backend/internal/policy"
	txsvc "github.com/parisy/pasarsayur-backend/internal/transactions"
	pkgerrors "github.com/parisy/pasarsayur-backend/pkg/errors"
	"github.com/parisy/pasarsayur-backend/pkg/pagination"
)

type stubTransactionService struct {
	checkoutUser  uuid.UUID
	checkoutInput txsvc.CheckoutInput
	detailActor   policy.Actor
	transaction   *txsvc.TransactionDTO
	list          *txsvc.TransactionList
	err           error
}

func (s *stubTransactionService) Checkout(ctx context.Context, userID uuid.UUID, input txsvc.CheckoutInput) (*txsvc.TransactionDTO, error) {
	s.checkoutUser = userID
	s.checkoutInput = input
	return s.transaction, s.err
}

func (s *stubTransactionService) Detail(ctx context.Context, actor policy.Actor, id uuid.UUID) (*txsvc.TransactionDTO, error) {
	s.detailActor = actor
	return s.transaction, s.err
}

func (s *stubTransactionService) History(ctx context.Context, userID uuid.UUID, params pagination.Params) (*txsvc.TransactionList, error) {
	return s.list, s.err
}

func (s *stubTransactionService) ListAll(ctx context.Context, params pagination.Params, status string) (*txsvc.TransactionList, error) {
	return s.list, s.err
}

func (s *stubTransactionService) Update(ctx context.Context, id uuid.UUID, input txsvc.UpdateTransactionInput) (*txsvc.TransactionDTO, error) {
	return s.transaction, s.err
}

func (s *stubTransactionService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.err
}

func TestCheckoutCreated(t *testing.T) {
	userID := uuid.New()
	svc := &stubTransactionService{transaction: &txsvc.TransactionDTO{
		ID:         uuid.New(),
		Code:       "TRX-20250601-8KQ2ZN",
		UserID:     userID,
		TotalPrice: decimal.NewFromInt(11000),
		Status:     "pending",
	}}
	handler := Checkout(svc, nil)

	body := []byte(`{"payment_method":"transfer","notes":"antar sore"}`)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(t, http.MethodPost, "/transaction/create", body, userID))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.checkoutUser != userID {
		t.Fatal("checkout must use the authenticated user")
	}
	if svc.checkoutInput.PaymentMethod != "transfer" {
		t.Fatalf("unexpected payment method %q", svc.checkoutInput.PaymentMethod)
	}
	if svc.checkoutInput.Notes == nil || *svc.checkoutInput.Notes != "antar sore" {
		t.Fatal("expected notes to reach the service")
	}

	var envelope struct {
		Data txsvc.TransactionDTO `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Code != "TRX-20250601-8KQ2ZN" {
		t.Fatalf("unexpected code %q", envelope.Data.Code)
	}
}

func TestCheckoutRejectsUnknownPaymentMethod(t *testing.T) {
	handler := Checkout(&stubTransactionService{}, nil)

	body := []byte(`{"payment_method":"dana"}`)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(t, http.MethodPost, "/transaction/create", body, uuid.New()))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestCheckoutConflictPropagates(t *testing.T) {
	svc := &stubTransactionService{err: pkgerrors.New(pkgerrors.CodeConflict, "insufficient stock")}
	handler := Checkout(svc, nil)

	body := []byte(`{"payment_method":"cash"}`)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(t, http.MethodPost, "/transaction/create", body, uuid.New()))

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", rec.Code)
	}
}

func TestTransactionDetailCarriesActor(t *testing.T) {
	userID := uuid.New()
	txID := uuid.New()
	svc := &stubTransactionService{transaction: &txsvc.TransactionDTO{ID: txID, UserID: userID}}
	handler := TransactionDetail(svc, nil)

	req := authedRequest(t, http.MethodGet, "/transaction/"+txID.String(), nil, userID)
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("id", txID.String())
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.detailActor.ID != userID {
		t.Fatal("expected actor identity to reach the service")
	}
}
