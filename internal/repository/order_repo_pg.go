package repository

import (
	"context"

	"github.com/avshorin/airport-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRepository interface {
	// Create persists the order and every ticket in one transaction.
	// A unique-index collision on any ticket rolls the whole order back
	// and surfaces as domain.ErrSeatTaken.
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Order, error)
	CountByUser(ctx context.Context, userID int64) (int, error)
}

type PGOrderRepository struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) OrderRepository {
	return &PGOrderRepository{db: db}
}

func (r *PGOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `INSERT INTO orders (user_id) VALUES ($1) RETURNING id, created_at`, order.UserID).
		Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return mapErr(err)
	}

	for i := range order.Tickets {
		t := &order.Tickets[i]
		t.OrderID = order.ID
		err = tx.QueryRow(ctx, `INSERT INTO tickets (seat_row, seat_number, flight_id, order_id) VALUES ($1, $2, $3, $4) RETURNING id`,
			t.Row, t.Seat, t.FlightID, t.OrderID).Scan(&t.ID)
		if err != nil {
			return mapErr(err)
		}
	}

	return tx.Commit(ctx)
}

func (r *PGOrderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	row := r.db.QueryRow(ctx, `SELECT id, user_id, created_at FROM orders WHERE id=$1`, id)
	var o domain.Order
	if err := row.Scan(&o.ID, &o.UserID, &o.CreatedAt); err != nil {
		return nil, mapErr(err)
	}

	orders := []domain.Order{o}
	if err := r.loadTickets(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func (r *PGOrderRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx, `SELECT id, user_id, created_at FROM orders WHERE user_id=$1 ORDER BY id LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadTickets(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *PGOrderRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE user_id=$1`, userID).Scan(&n)
	return n, err
}

// loadTickets attaches tickets with their flight summary to every order
// in the slice, using one query for the whole set.
func (r *PGOrderRepository) loadTickets(ctx context.Context, orders []domain.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(orders))
	byID := make(map[int64]*domain.Order, len(orders))
	for i := range orders {
		orders[i].Tickets = make([]domain.Ticket, 0)
		ids = append(ids, orders[i].ID)
		byID[orders[i].ID] = &orders[i]
	}

	rows, err := r.db.Query(ctx, `
SELECT tk.id, tk.seat_row, tk.seat_number, tk.flight_id, tk.order_id,
       f.departure_time, f.arrival_time,
       src.name, dst.name,
       a.name, a.rows, a.seats_in_row
FROM tickets tk
JOIN flights f ON f.id = tk.flight_id
JOIN routes r ON r.id = f.route_id
JOIN airports src ON src.id = r.source_id
JOIN airports dst ON dst.id = r.destination_id
JOIN airplanes a ON a.id = f.airplane_id
WHERE tk.order_id = ANY($1::bigint[])
ORDER BY tk.id`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			t domain.Ticket
			f domain.Flight
		)
		err := rows.Scan(
			&t.ID, &t.Row, &t.Seat, &t.FlightID, &t.OrderID,
			&f.DepartureTime, &f.ArrivalTime,
			&f.Route.Source.Name, &f.Route.Destination.Name,
			&f.Airplane.Name, &f.Airplane.Rows, &f.Airplane.SeatsInRow,
		)
		if err != nil {
			return err
		}
		f.ID = t.FlightID
		t.Flight = &f
		if o, ok := byID[t.OrderID]; ok {
			o.Tickets = append(o.Tickets, t)
		}
	}
	return rows.Err()
}

var _ OrderRepository = (*PGOrderRepository)(nil)
