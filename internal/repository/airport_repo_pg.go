package repository

import (
	"context"

	"github.com/avshorin/airport-api/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AirportRepository interface {
	List(ctx context.Context) ([]domain.Airport, error)
	GetByID(ctx context.Context, id int64) (*domain.Airport, error)
	Create(ctx context.Context, airport *domain.Airport) error
	Update(ctx context.Context, airport *domain.Airport) error
	Delete(ctx context.Context, id int64) error
}

type PGAirportRepository struct {
	db *pgxpool.Pool
}

func NewAirportRepository(db *pgxpool.Pool) AirportRepository {
	return &PGAirportRepository{db: db}
}

func (r *PGAirportRepository) List(ctx context.Context) ([]domain.Airport, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, closest_big_city FROM airports ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	airports := make([]domain.Airport, 0)
	for rows.Next() {
		var a domain.Airport
		if err := rows.Scan(&a.ID, &a.Name, &a.ClosestBigCity); err != nil {
			return nil, err
		}
		airports = append(airports, a)
	}
	return airports, rows.Err()
}

func (r *PGAirportRepository) GetByID(ctx context.Context, id int64) (*domain.Airport, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name, closest_big_city FROM airports WHERE id=$1`, id)
	var a domain.Airport
	if err := row.Scan(&a.ID, &a.Name, &a.ClosestBigCity); err != nil {
		return nil, mapErr(err)
	}
	return &a, nil
}

func (r *PGAirportRepository) Create(ctx context.Context, airport *domain.Airport) error {
	return r.db.QueryRow(ctx, `INSERT INTO airports (name, closest_big_city) VALUES ($1, $2) RETURNING id`,
		airport.Name, airport.ClosestBigCity).Scan(&airport.ID)
}

func (r *PGAirportRepository) Update(ctx context.Context, airport *domain.Airport) error {
	cmd, err := r.db.Exec(ctx, `UPDATE airports SET name=$1, closest_big_city=$2 WHERE id=$3`,
		airport.Name, airport.ClosestBigCity, airport.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGAirportRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM airports WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ AirportRepository = (*PGAirportRepository)(nil)
