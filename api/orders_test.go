package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/avshorin/airport-api/internal/domain"
	"github.com/avshorin/airport-api/internal/service/orders"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockOrderUseCase struct {
	mock.Mock
}

func (m *MockOrderUseCase) CreateOrder(ctx context.Context, userID int64, userEmail string, input orders.CreateOrderInput) (*domain.Order, error) {
	args := m.Called(ctx, userID, userEmail, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderUseCase) ListOrders(ctx context.Context, userID int64, limit, offset int) ([]domain.Order, int, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Order), args.Int(1), args.Error(2)
}

func (m *MockOrderUseCase) GetOrder(ctx context.Context, id, callerID int64, callerIsStaff bool) (*domain.Order, error) {
	args := m.Called(ctx, id, callerID, callerIsStaff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func newOrderTestContext(t *testing.T, method, target string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	if body != nil {
		c.Request = httptest.NewRequest(method, target, bytes.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
	} else {
		c.Request = httptest.NewRequest(method, target, nil)
	}

	c.Set(ctxUserID, int64(42))
	c.Set(ctxUserEmail, "user@example.com")
	c.Set(ctxIsStaff, false)
	return c, w
}

func TestOrderHandler_create(t *testing.T) {
	mockService := &MockOrderUseCase{}
	handler := NewOrderHandler(mockService)

	input := orders.CreateOrderInput{
		Tickets: []orders.TicketInput{{Row: 1, Seat: 1, Flight: 7}},
	}
	body, _ := json.Marshal(input)
	c, w := newOrderTestContext(t, "POST", "/orders", body)

	created := &domain.Order{
		ID:        1,
		UserID:    42,
		CreatedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		Tickets:   []domain.Ticket{{ID: 1, Row: 1, Seat: 1, FlightID: 7, OrderID: 1}},
	}
	mockService.On("CreateOrder", c.Request.Context(), int64(42), "user@example.com", input).Return(created, nil)

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp orderResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.ID)
	assert.Len(t, resp.Tickets, 1)
	mockService.AssertExpectations(t)
}

func TestOrderHandler_create_conflict(t *testing.T) {
	mockService := &MockOrderUseCase{}
	handler := NewOrderHandler(mockService)

	input := orders.CreateOrderInput{
		Tickets: []orders.TicketInput{{Row: 1, Seat: 1, Flight: 7}},
	}
	body, _ := json.Marshal(input)
	c, w := newOrderTestContext(t, "POST", "/orders", body)

	mockService.On("CreateOrder", c.Request.Context(), int64(42), "user@example.com", input).Return(nil, domain.ErrSeatTaken)

	handler.create(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestOrderHandler_create_invalidSeat(t *testing.T) {
	mockService := &MockOrderUseCase{}
	handler := NewOrderHandler(mockService)

	input := orders.CreateOrderInput{
		Tickets: []orders.TicketInput{{Row: 6, Seat: 1, Flight: 7}},
	}
	body, _ := json.Marshal(input)
	c, w := newOrderTestContext(t, "POST", "/orders", body)

	seatErr := &domain.SeatError{Field: "row", Value: 6, Max: 5}
	mockService.On("CreateOrder", c.Request.Context(), int64(42), "user@example.com", input).Return(nil, seatErr)

	handler.create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "row must be in range [1, 5], not 6", resp["row"])
}

func TestOrderHandler_create_empty(t *testing.T) {
	mockService := &MockOrderUseCase{}
	handler := NewOrderHandler(mockService)

	input := orders.CreateOrderInput{}
	body, _ := json.Marshal(input)
	c, w := newOrderTestContext(t, "POST", "/orders", body)

	mockService.On("CreateOrder", c.Request.Context(), int64(42), "user@example.com", input).Return(nil, domain.ErrEmptyOrder)

	handler.create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderHandler_list_pagination(t *testing.T) {
	mockService := &MockOrderUseCase{}
	handler := NewOrderHandler(mockService)

	// page_size above the cap is clamped to 100.
	c, w := newOrderTestContext(t, "GET", "/orders?page=2&page_size=500", nil)
	mockService.On("ListOrders", c.Request.Context(), int64(42), 100, 100).Return([]domain.Order{}, 0, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestOrderHandler_list_defaultPageSize(t *testing.T) {
	mockService := &MockOrderUseCase{}
	handler := NewOrderHandler(mockService)

	c, w := newOrderTestContext(t, "GET", "/orders", nil)
	mockService.On("ListOrders", c.Request.Context(), int64(42), 5, 0).Return([]domain.Order{{ID: 1, UserID: 42}}, 1, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp pageResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, 5, resp.PageSize)
	assert.Len(t, resp.Results, 1)
}

func TestOrderHandler_get_notFound(t *testing.T) {
	mockService := &MockOrderUseCase{}
	handler := NewOrderHandler(mockService)

	c, w := newOrderTestContext(t, "GET", "/orders/3", nil)
	c.Params = gin.Params{{Key: "id", Value: "3"}}
	mockService.On("GetOrder", c.Request.Context(), int64(3), int64(42), false).Return(nil, domain.ErrNotFound)

	handler.get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
