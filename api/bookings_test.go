package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/neupane-rajan/airline-reservation/internal/domain"
	"github.com/neupane-rajan/airline-reservation/internal/service/booking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// MockBookingUseCase is a mock implementation of booking.BookingUseCase
type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) Create(ctx context.Context, actor booking.Actor, input booking.CreateBookingInput) (*domain.Booking, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) Get(ctx context.Context, actor booking.Actor, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) List(ctx context.Context, actor booking.Actor) ([]domain.Booking, error) {
	args := m.Called(ctx, actor)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) Pay(ctx context.Context, actor booking.Actor, id int64, input booking.PaymentInput) (*domain.Booking, error) {
	args := m.Called(ctx, actor, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) Cancel(ctx context.Context, actor booking.Actor, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) ETicket(ctx context.Context, actor booking.Actor, id int64) (*domain.ETicket, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ETicket), args.Error(1)
}

func testContext(t *testing.T, userID int64, role domain.UserRole) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(ctxUserID, userID)
	c.Set(ctxRole, role)
	return c, w
}

func TestBookingHandler_create(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, zap.NewNop())

	c, w := testContext(t, 7, domain.RolePassenger)

	input := booking.CreateBookingInput{FlightID: 1, SeatNumber: "12A"}
	body, _ := json.Marshal(input)
	c.Request = httptest.NewRequest("POST", "/api/bookings", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	created := &domain.Booking{
		ID:            1,
		Reference:     "BK-AAAA1111",
		PassengerID:   7,
		FlightID:      1,
		SeatNumber:    "12A",
		Status:        domain.BookingStatusPending,
		PaymentStatus: domain.PaymentStatusPending,
		AmountCents:   19900,
	}
	actor := booking.Actor{UserID: 7, Role: domain.RolePassenger}
	mockService.On("Create", c.Request.Context(), actor, input).Return(created, nil)

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response bookingResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "BK-AAAA1111", response.Reference)
	assert.Equal(t, string(domain.BookingStatusPending), response.Status)
	assert.Equal(t, int64(19900), response.AmountCents)

	mockService.AssertExpectations(t)
}

func TestBookingHandler_create_noSeats(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, zap.NewNop())

	c, w := testContext(t, 7, domain.RolePassenger)

	body, _ := json.Marshal(booking.CreateBookingInput{FlightID: 1, SeatNumber: "12A"})
	c.Request = httptest.NewRequest("POST", "/api/bookings", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil, domain.ErrNoSeats)

	handler.create(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestBookingHandler_pay(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, zap.NewNop())

	c, w := testContext(t, 7, domain.RolePassenger)
	c.Params = gin.Params{{Key: "id", Value: "5"}}

	input := booking.PaymentInput{CardNumber: "4111111111111111", ExpiryDate: "12/30", CVV: "123"}
	body, _ := json.Marshal(input)
	c.Request = httptest.NewRequest("POST", "/api/bookings/5/payment", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	actor := booking.Actor{UserID: 7, Role: domain.RolePassenger}
	mockService.On("Pay", c.Request.Context(), actor, int64(5), input).Return(&domain.Booking{
		ID:            5,
		Status:        domain.BookingStatusConfirmed,
		PaymentStatus: domain.PaymentStatusCompleted,
		PaymentID:     "PAY-ABCDEF123456",
	}, nil)

	handler.pay(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response bookingResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, string(domain.PaymentStatusCompleted), response.PaymentStatus)
	assert.Equal(t, "PAY-ABCDEF123456", response.PaymentID)

	mockService.AssertExpectations(t)
}

func TestBookingHandler_cancel_forbidden(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, zap.NewNop())

	c, w := testContext(t, 7, domain.RolePassenger)
	c.Params = gin.Params{{Key: "id", Value: "5"}}
	c.Request = httptest.NewRequest("POST", "/api/bookings/5/cancel", nil)

	mockService.On("Cancel", mock.Anything, mock.Anything, int64(5)).Return(nil, domain.ErrForbidden)

	handler.cancel(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestBookingHandler_eTicket_notConfirmed(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, zap.NewNop())

	c, w := testContext(t, 7, domain.RolePassenger)
	c.Params = gin.Params{{Key: "id", Value: "5"}}
	c.Request = httptest.NewRequest("GET", "/api/bookings/5/e-ticket", nil)

	mockService.On("ETicket", mock.Anything, mock.Anything, int64(5)).Return(nil, domain.ErrNotConfirmed)

	handler.eTicket(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestBookingHandler_get_invalidID(t *testing.T) {
	handler := NewBookingHandler(&MockBookingUseCase{}, zap.NewNop())

	c, w := testContext(t, 7, domain.RolePassenger)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	c.Request = httptest.NewRequest("GET", "/api/bookings/abc", nil)

	handler.get(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookingHandler_list(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, zap.NewNop())

	c, w := testContext(t, 99, domain.RoleStaff)
	c.Request = httptest.NewRequest("GET", "/api/bookings", nil)

	actor := booking.Actor{UserID: 99, Role: domain.RoleStaff}
	mockService.On("List", c.Request.Context(), actor).Return([]domain.Booking{{ID: 1}, {ID: 2}}, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response []bookingResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Len(t, response, 2)
}
