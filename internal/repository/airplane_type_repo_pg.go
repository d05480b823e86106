package repository

import (
	"context"

	"github.com/avshorin/airport-api/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AirplaneTypeRepository interface {
	List(ctx context.Context) ([]domain.AirplaneType, error)
	GetByID(ctx context.Context, id int64) (*domain.AirplaneType, error)
	Create(ctx context.Context, t *domain.AirplaneType) error
	Update(ctx context.Context, t *domain.AirplaneType) error
	Delete(ctx context.Context, id int64) error
}

type PGAirplaneTypeRepository struct {
	db *pgxpool.Pool
}

func NewAirplaneTypeRepository(db *pgxpool.Pool) AirplaneTypeRepository {
	return &PGAirplaneTypeRepository{db: db}
}

func (r *PGAirplaneTypeRepository) List(ctx context.Context) ([]domain.AirplaneType, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM airplane_types ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := make([]domain.AirplaneType, 0)
	for rows.Next() {
		var t domain.AirplaneType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

func (r *PGAirplaneTypeRepository) GetByID(ctx context.Context, id int64) (*domain.AirplaneType, error) {
	var t domain.AirplaneType
	if err := r.db.QueryRow(ctx, `SELECT id, name FROM airplane_types WHERE id=$1`, id).Scan(&t.ID, &t.Name); err != nil {
		return nil, mapErr(err)
	}
	return &t, nil
}

func (r *PGAirplaneTypeRepository) Create(ctx context.Context, t *domain.AirplaneType) error {
	return r.db.QueryRow(ctx, `INSERT INTO airplane_types (name) VALUES ($1) RETURNING id`, t.Name).Scan(&t.ID)
}

func (r *PGAirplaneTypeRepository) Update(ctx context.Context, t *domain.AirplaneType) error {
	cmd, err := r.db.Exec(ctx, `UPDATE airplane_types SET name=$1 WHERE id=$2`, t.Name, t.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGAirplaneTypeRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM airplane_types WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ AirplaneTypeRepository = (*PGAirplaneTypeRepository)(nil)
