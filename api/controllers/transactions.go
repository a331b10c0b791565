package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/alnoorestates/saleledger-backend/api/responses"
	"github.com/alnoorestates/saleledger-backend/api/validators"
	"github.com/alnoorestates/saleledger-backend/internal/transactions"
	"github.com/alnoorestates/saleledger-backend/pkg/db/models"
	"github.com/alnoorestates/saleledger-backend/pkg/enums"
	pkgerrors "github.com/alnoorestates/saleledger-backend/pkg/errors"
	"github.com/alnoorestates/saleledger-backend/pkg/logger"
	"github.com/alnoorestates/saleledger-backend/pkg/pagination"
)

type recordTransactionRequest struct {
	UnitCode      string          `json:"unit_code" validate:"required,max=40"`
	Amount        decimal.Decimal `json:"amount"`
	Date          string          `json:"date" validate:"required"`
	PaymentMethod string          `json:"payment_method" validate:"required,oneof=cash bank_transfer"`
}

type matchTransactionRequest struct {
	TransactionID uuid.UUID `json:"transaction_id" validate:"required"`
	BookingID     uuid.UUID `json:"booking_id" validate:"required"`
}

type transactionResponse struct {
	ID            uuid.UUID           `json:"id"`
	Amount        decimal.Decimal     `json:"amount"`
	Date          time.Time           `json:"date"`
	PaymentMethod enums.PaymentMethod `json:"payment_method"`
	BuyerID       *uuid.UUID          `json:"buyer_id"`
	UnitID        *uuid.UUID          `json:"unit_id"`
	BookingID     *uuid.UUID          `json:"booking_id"`
	CreatedAt     time.Time           `json:"created_at"`
}

func toTransactionResponse(txn *models.Transaction) transactionResponse {
	return transactionResponse{
		ID:            txn.ID,
		Amount:        txn.Amount,
		Date:          txn.Date,
		PaymentMethod: txn.PaymentMethod,
		BuyerID:       txn.BuyerID,
		UnitID:        txn.UnitID,
		BookingID:     txn.BookingID,
		CreatedAt:     txn.CreatedAt,
	}
}

// BuyerRecordTransaction records a payment event for the calling buyer. The
// row starts unmatched; linking it to a booking is a separate step.
func BuyerRecordTransaction(svc transactions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "transaction service unavailable"))
			return
		}

		buyerID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body recordTransactionRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		date, err := parseDate(body.Date)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		method, err := enums.ParsePaymentMethod(body.PaymentMethod)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unknown payment method"))
			return
		}

		txn, err := svc.Record(r.Context(), transactions.RecordTransactionInput{
			BuyerID:       buyerID,
			UnitCode:      body.UnitCode,
			Amount:        body.Amount,
			Date:          date,
			PaymentMethod: method,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, toTransactionResponse(txn))
	}
}

// BuilderListTransactions lists payment events on the builder's units, matched
// and unmatched.
func BuilderListTransactions(svc transactions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "transaction service unavailable"))
			return
		}

		builderID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListByBuilder(r.Context(), builderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// BuilderMatchTransaction links a payment event to a booking.
func BuilderMatchTransaction(svc transactions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "transaction service unavailable"))
			return
		}

		var body matchTransactionRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.Match(r.Context(), body.TransactionID, body.BookingID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]int64{"matched_rows": rows})
	}
}

// AdminListTransactions lists every payment event with display fields joined
// through the matched booking.
func AdminListTransactions(svc transactions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "transaction service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		cursor, err := validators.ParseQueryString(r, "cursor", 200)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.ListAll(r.Context(), pagination.Params{Limit: limit, Cursor: cursor})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}
