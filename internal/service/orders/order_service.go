package orders

import (
	"context"
	"fmt"
	"log"

	"github.com/avshorin/airport-api/internal/domain"
	"github.com/avshorin/airport-api/internal/kafka"
	"github.com/avshorin/airport-api/internal/repository"
)

type OrderUseCase interface {
	CreateOrder(ctx context.Context, userID int64, userEmail string, input CreateOrderInput) (*domain.Order, error)
	ListOrders(ctx context.Context, userID int64, limit, offset int) ([]domain.Order, int, error)
	GetOrder(ctx context.Context, id, callerID int64, callerIsStaff bool) (*domain.Order, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type CreateOrderInput struct {
	Tickets []TicketInput `json:"tickets"`
}

type TicketInput struct {
	Row    int   `json:"row"`
	Seat   int   `json:"seat"`
	Flight int64 `json:"flight"`
}

type OrderService struct {
	orders      repository.OrderRepository
	flights     repository.FlightRepository
	producer    Producer
	ordersTopic string
}

func NewOrderService(orders repository.OrderRepository, flights repository.FlightRepository, producer Producer, ordersTopic string) *OrderService {
	return &OrderService{
		orders:      orders,
		flights:     flights,
		producer:    producer,
		ordersTopic: ordersTopic,
	}
}

// CreateOrder books every requested seat for the caller or nothing at all.
// Geometry is checked against each flight's current airplane before the
// transaction; the unique index on (flight, row, seat) settles races
// between concurrent requests, so a collision rolls the whole order back.
func (s *OrderService) CreateOrder(ctx context.Context, userID int64, userEmail string, input CreateOrderInput) (*domain.Order, error) {
	if len(input.Tickets) == 0 {
		return nil, domain.ErrEmptyOrder
	}

	resolved := make(map[int64]*domain.Flight)
	tickets := make([]domain.Ticket, 0, len(input.Tickets))
	for _, t := range input.Tickets {
		flight, ok := resolved[t.Flight]
		if !ok {
			var err error
			flight, err = s.flights.GetByID(ctx, t.Flight)
			if err != nil {
				return nil, fmt.Errorf("flight %d: %w", t.Flight, err)
			}
			resolved[t.Flight] = flight
		}

		if err := domain.ValidateSeat(t.Seat, flight.Airplane.SeatsInRow, t.Row, flight.Airplane.Rows); err != nil {
			return nil, err
		}

		tickets = append(tickets, domain.Ticket{
			Row:      t.Row,
			Seat:     t.Seat,
			FlightID: t.Flight,
		})
	}

	order := &domain.Order{UserID: userID, Tickets: tickets}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	// The order is committed at this point. The re-read only enriches
	// tickets with flight summaries; if it fails, return what the
	// transaction scanned back rather than an error for a persisted order.
	created, err := s.orders.GetByID(ctx, order.ID)
	if err != nil {
		log.Printf("WARNING: failed to reload order %d after commit: %v", order.ID, err)
		created = order
	}

	if err := s.publishCreated(ctx, created, userEmail); err != nil {
		log.Printf("WARNING: failed to publish order_created event for order %d: %v", created.ID, err)
	}
	return created, nil
}

func (s *OrderService) ListOrders(ctx context.Context, userID int64, limit, offset int) ([]domain.Order, int, error) {
	total, err := s.orders.CountByUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	items, err := s.orders.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// GetOrder hides other users' orders from non-staff callers the same way
// the listing does: they simply do not exist for them.
func (s *OrderService) GetOrder(ctx context.Context, id, callerID int64, callerIsStaff bool) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !callerIsStaff && order.UserID != callerID {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

func (s *OrderService) publishCreated(ctx context.Context, order *domain.Order, userEmail string) error {
	if s.producer == nil || s.ordersTopic == "" {
		return nil
	}

	event := kafka.OrderEvent{
		Type:      "order_created",
		OrderID:   order.ID,
		UserEmail: userEmail,
		CreatedAt: order.CreatedAt,
	}
	for _, t := range order.Tickets {
		event.Tickets = append(event.Tickets, kafka.SeatEvent{FlightID: t.FlightID, Row: t.Row, Seat: t.Seat})
	}
	return s.producer.Publish(ctx, s.ordersTopic, fmt.Sprintf("order-%d", order.ID), event)
}

var _ OrderUseCase = (*OrderService)(nil)
