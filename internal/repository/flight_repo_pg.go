package repository

import (
	"context"
	"time"

	"github.com/avshorin/airport-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FlightRepository interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Create(ctx context.Context, routeID, airplaneID int64, departure, arrival time.Time, crewIDs []int64) (*domain.Flight, error)
	Update(ctx context.Context, id, routeID, airplaneID int64, departure, arrival time.Time, crewIDs []int64) (*domain.Flight, error)
	Delete(ctx context.Context, id int64) error
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

// tickets_available is computed per read so it never goes stale under
// concurrent bookings.
const flightSelect = `
SELECT f.id, f.departure_time, f.arrival_time,
       r.id, r.distance,
       src.id, src.name, src.closest_big_city,
       dst.id, dst.name, dst.closest_big_city,
       a.id, a.name, a.rows, a.seats_in_row, a.image_path,
       t.id, t.name,
       a.rows * a.seats_in_row - COUNT(tk.id) AS tickets_available
FROM flights f
JOIN routes r ON r.id = f.route_id
JOIN airports src ON src.id = r.source_id
JOIN airports dst ON dst.id = r.destination_id
JOIN airplanes a ON a.id = f.airplane_id
JOIN airplane_types t ON t.id = a.airplane_type_id
LEFT JOIN tickets tk ON tk.flight_id = f.id`

const flightGroupBy = ` GROUP BY f.id, r.id, src.id, dst.id, a.id, t.id`

func scanFlight(row interface{ Scan(dest ...any) error }) (*domain.Flight, error) {
	var (
		f         domain.Flight
		imagePath *string
	)
	err := row.Scan(
		&f.ID, &f.DepartureTime, &f.ArrivalTime,
		&f.Route.ID, &f.Route.Distance,
		&f.Route.Source.ID, &f.Route.Source.Name, &f.Route.Source.ClosestBigCity,
		&f.Route.Destination.ID, &f.Route.Destination.Name, &f.Route.Destination.ClosestBigCity,
		&f.Airplane.ID, &f.Airplane.Name, &f.Airplane.Rows, &f.Airplane.SeatsInRow, &imagePath,
		&f.Airplane.Type.ID, &f.Airplane.Type.Name,
		&f.TicketsAvailable,
	)
	if err != nil {
		return nil, err
	}
	if imagePath != nil {
		f.Airplane.ImagePath = *imagePath
	}
	return &f, nil
}

func (r *PGFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, flightSelect+flightGroupBy+` ORDER BY f.departure_time, f.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadCrews(ctx, flights); err != nil {
		return nil, err
	}
	return flights, nil
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	f, err := scanFlight(r.db.QueryRow(ctx, flightSelect+` WHERE f.id=$1`+flightGroupBy, id))
	if err != nil {
		return nil, mapErr(err)
	}

	flights := []domain.Flight{*f}
	if err := r.loadCrews(ctx, flights); err != nil {
		return nil, err
	}
	return &flights[0], nil
}

func (r *PGFlightRepository) loadCrews(ctx context.Context, flights []domain.Flight) error {
	if len(flights) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(flights))
	byID := make(map[int64]*domain.Flight, len(flights))
	for i := range flights {
		flights[i].Crew = make([]domain.Crew, 0)
		ids = append(ids, flights[i].ID)
		byID[flights[i].ID] = &flights[i]
	}

	rows, err := r.db.Query(ctx, `
SELECT fc.flight_id, c.id, c.first_name, c.last_name
FROM flight_crews fc
JOIN crews c ON c.id = fc.crew_id
WHERE fc.flight_id = ANY($1::bigint[])
ORDER BY c.id`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			flightID int64
			c        domain.Crew
		)
		if err := rows.Scan(&flightID, &c.ID, &c.FirstName, &c.LastName); err != nil {
			return err
		}
		if f, ok := byID[flightID]; ok {
			f.Crew = append(f.Crew, c)
		}
	}
	return rows.Err()
}

func (r *PGFlightRepository) Create(ctx context.Context, routeID, airplaneID int64, departure, arrival time.Time, crewIDs []int64) (*domain.Flight, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var id int64
	err = tx.QueryRow(ctx, `INSERT INTO flights (route_id, airplane_id, departure_time, arrival_time) VALUES ($1, $2, $3, $4) RETURNING id`,
		routeID, airplaneID, departure, arrival).Scan(&id)
	if err != nil {
		return nil, mapErr(err)
	}

	if err := insertFlightCrews(ctx, tx, id, crewIDs); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *PGFlightRepository) Update(ctx context.Context, id, routeID, airplaneID int64, departure, arrival time.Time, crewIDs []int64) (*domain.Flight, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, `UPDATE flights SET route_id=$1, airplane_id=$2, departure_time=$3, arrival_time=$4 WHERE id=$5`,
		routeID, airplaneID, departure, arrival, id)
	if err != nil {
		return nil, mapErr(err)
	}
	if cmd.RowsAffected() == 0 {
		return nil, domain.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM flight_crews WHERE flight_id=$1`, id); err != nil {
		return nil, err
	}
	if err := insertFlightCrews(ctx, tx, id, crewIDs); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func insertFlightCrews(ctx context.Context, tx pgx.Tx, flightID int64, crewIDs []int64) error {
	for _, crewID := range crewIDs {
		if _, err := tx.Exec(ctx, `INSERT INTO flight_crews (flight_id, crew_id) VALUES ($1, $2)`, flightID, crewID); err != nil {
			return mapErr(err)
		}
	}
	return nil
}

func (r *PGFlightRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM flights WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ FlightRepository = (*PGFlightRepository)(nil)
