package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/alnoorestates/saleledger-backend/api/middleware"
	"github.com/alnoorestates/saleledger-backend/internal/bookings"
	pkgerrors "github.com/alnoorestates/saleledger-backend/pkg/errors"
	"github.com/alnoorestates/saleledger-backend/pkg/pagination"
)

type fakeBookingService struct {
	createFn func(ctx context.Context, input bookings.CreateBookingInput) (*bookings.BookingView, error)
	listAll  func(ctx context.Context, search string, params pagination.Params) (*bookings.BookingPage, error)
}

func (f *fakeBookingService) Create(ctx context.Context, input bookings.CreateBookingInput) (*bookings.BookingView, error) {
	return f.createFn(ctx, input)
}

func (f *fakeBookingService) ListByBuyer(context.Context, uuid.UUID) ([]bookings.BookingView, error) {
	return nil, nil
}

func (f *fakeBookingService) ListByBuilder(context.Context, uuid.UUID) ([]bookings.BookingView, error) {
	return nil, nil
}

func (f *fakeBookingService) FindByUnit(context.Context, uuid.UUID) (*bookings.BookingView, error) {
	return nil, nil
}

func (f *fakeBookingService) ListAll(ctx context.Context, search string, params pagination.Params) (*bookings.BookingPage, error) {
	if f.listAll != nil {
		return f.listAll(ctx, search, params)
	}
	return &bookings.BookingPage{}, nil
}

func authedRequest(method, target, body string) *http.Request {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	return req.WithContext(middleware.WithActor(req.Context(), uuid.NewString(), "buyer"))
}

func TestBuyerCreateBookingPassesActorAsBuyer(t *testing.T) {
	var captured bookings.CreateBookingInput
	svc := &fakeBookingService{
		createFn: func(_ context.Context, input bookings.CreateBookingInput) (*bookings.BookingView, error) {
			captured = input
			return &bookings.BookingView{ID: uuid.New(), UnitCode: input.UnitCode}, nil
		},
	}

	req := authedRequest(http.MethodPost, "/buyer/bookings", `{"unit_code":"APT101","amount":"100000","date":"2026-02-14"}`)
	resp := httptest.NewRecorder()
	BuyerCreateBooking(svc, nil)(resp, req)

	require.Equal(t, http.StatusCreated, resp.Code)
	require.Equal(t, "APT101", captured.UnitCode)
	require.NotEqual(t, uuid.Nil, captured.BuyerID)
	require.Equal(t, 2026, captured.Date.Year())
}

func TestBuyerCreateBookingRejectsBadDate(t *testing.T) {
	svc := &fakeBookingService{
		createFn: func(context.Context, bookings.CreateBookingInput) (*bookings.BookingView, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}

	req := authedRequest(http.MethodPost, "/buyer/bookings", `{"unit_code":"APT101","amount":"100000","date":"14/02/2026"}`)
	resp := httptest.NewRecorder()
	BuyerCreateBooking(svc, nil)(resp, req)

	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestBuyerCreateBookingMapsConflict(t *testing.T) {
	svc := &fakeBookingService{
		createFn: func(context.Context, bookings.CreateBookingInput) (*bookings.BookingView, error) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "unit is already booked")
		},
	}

	req := authedRequest(http.MethodPost, "/buyer/bookings", `{"unit_code":"APT101","amount":"100000","date":"2026-02-14"}`)
	resp := httptest.NewRecorder()
	BuyerCreateBooking(svc, nil)(resp, req)

	require.Equal(t, http.StatusConflict, resp.Code)
	require.Contains(t, resp.Body.String(), "unit is already booked")
}

func TestBuyerCreateBookingRequiresActor(t *testing.T) {
	svc := &fakeBookingService{
		createFn: func(context.Context, bookings.CreateBookingInput) (*bookings.BookingView, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/buyer/bookings", strings.NewReader(`{}`))
	resp := httptest.NewRecorder()
	BuyerCreateBooking(svc, nil)(resp, req)

	require.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestAdminListBookingsForwardsSearch(t *testing.T) {
	var capturedSearch string
	var capturedParams pagination.Params
	svc := &fakeBookingService{
		listAll: func(_ context.Context, search string, params pagination.Params) (*bookings.BookingPage, error) {
			capturedSearch = search
			capturedParams = params
			return &bookings.BookingPage{Items: []bookings.BookingView{}}, nil
		},
	}

	req := authedRequest(http.MethodGet, "/admin/bookings?search=Amina&limit=5", "")
	resp := httptest.NewRecorder()
	AdminListBookings(svc, nil)(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, "Amina", capturedSearch)
	require.Equal(t, 5, capturedParams.Limit)
}
