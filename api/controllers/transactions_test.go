package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/alnoorestates/saleledger-backend/internal/transactions"
	"github.com/alnoorestates/saleledger-backend/pkg/db/models"
	"github.com/alnoorestates/saleledger-backend/pkg/enums"
	pkgerrors "github.com/alnoorestates/saleledger-backend/pkg/errors"
	"github.com/alnoorestates/saleledger-backend/pkg/pagination"
)

type fakeTransactionService struct {
	recordFn func(ctx context.Context, input transactions.RecordTransactionInput) (*models.Transaction, error)
	matchFn  func(ctx context.Context, txID, bookingID uuid.UUID) (int64, error)
}

func (f *fakeTransactionService) Record(ctx context.Context, input transactions.RecordTransactionInput) (*models.Transaction, error) {
	return f.recordFn(ctx, input)
}

func (f *fakeTransactionService) Match(ctx context.Context, txID, bookingID uuid.UUID) (int64, error) {
	return f.matchFn(ctx, txID, bookingID)
}

func (f *fakeTransactionService) ListByBuilder(context.Context, uuid.UUID) ([]transactions.TransactionView, error) {
	return nil, nil
}

func (f *fakeTransactionService) ListAll(context.Context, pagination.Params) (*transactions.TransactionPage, error) {
	return &transactions.TransactionPage{}, nil
}

func TestBuyerRecordTransactionParsesPaymentMethod(t *testing.T) {
	var captured transactions.RecordTransactionInput
	svc := &fakeTransactionService{
		recordFn: func(_ context.Context, input transactions.RecordTransactionInput) (*models.Transaction, error) {
			captured = input
			return &models.Transaction{ID: uuid.New(), PaymentMethod: input.PaymentMethod}, nil
		},
	}

	req := authedRequest(http.MethodPost, "/buyer/transactions", `{"unit_code":"APT101","amount":"100000","date":"2026-02-14","payment_method":"bank_transfer"}`)
	resp := httptest.NewRecorder()
	BuyerRecordTransaction(svc, nil)(resp, req)

	require.Equal(t, http.StatusCreated, resp.Code)
	require.Equal(t, enums.PaymentMethodBankTransfer, captured.PaymentMethod)
}

func TestBuyerRecordTransactionRejectsUnknownMethod(t *testing.T) {
	svc := &fakeTransactionService{
		recordFn: func(context.Context, transactions.RecordTransactionInput) (*models.Transaction, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}

	req := authedRequest(http.MethodPost, "/buyer/transactions", `{"unit_code":"APT101","amount":"100000","date":"2026-02-14","payment_method":"cheque"}`)
	resp := httptest.NewRecorder()
	BuyerRecordTransaction(svc, nil)(resp, req)

	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestBuilderMatchTransactionReportsRows(t *testing.T) {
	txID := uuid.New()
	bookingID := uuid.New()
	svc := &fakeTransactionService{
		matchFn: func(_ context.Context, gotTx, gotBooking uuid.UUID) (int64, error) {
			require.Equal(t, txID, gotTx)
			require.Equal(t, bookingID, gotBooking)
			return 1, nil
		},
	}

	body := `{"transaction_id":"` + txID.String() + `","booking_id":"` + bookingID.String() + `"}`
	req := authedRequest(http.MethodPost, "/builder/transactions/match", body)
	resp := httptest.NewRecorder()
	BuilderMatchTransaction(svc, nil)(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), `"matched_rows":1`)
}

func TestBuilderMatchTransactionMapsStateConflict(t *testing.T) {
	svc := &fakeTransactionService{
		matchFn: func(context.Context, uuid.UUID, uuid.UUID) (int64, error) {
			return 0, pkgerrors.New(pkgerrors.CodeStateConflict, "transaction is already matched")
		},
	}

	body := `{"transaction_id":"` + uuid.NewString() + `","booking_id":"` + uuid.NewString() + `"}`
	req := authedRequest(http.MethodPost, "/builder/transactions/match", body)
	resp := httptest.NewRecorder()
	BuilderMatchTransaction(svc, nil)(resp, req)

	require.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}
