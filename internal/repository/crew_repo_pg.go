package repository

import (
	"context"

	"github.com/avshorin/airport-api/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CrewRepository interface {
	List(ctx context.Context) ([]domain.Crew, error)
	GetByID(ctx context.Context, id int64) (*domain.Crew, error)
	Create(ctx context.Context, crew *domain.Crew) error
	Update(ctx context.Context, crew *domain.Crew) error
	Delete(ctx context.Context, id int64) error
}

type PGCrewRepository struct {
	db *pgxpool.Pool
}

func NewCrewRepository(db *pgxpool.Pool) CrewRepository {
	return &PGCrewRepository{db: db}
}

func (r *PGCrewRepository) List(ctx context.Context) ([]domain.Crew, error) {
	rows, err := r.db.Query(ctx, `SELECT id, first_name, last_name FROM crews ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	crews := make([]domain.Crew, 0)
	for rows.Next() {
		var c domain.Crew
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName); err != nil {
			return nil, err
		}
		crews = append(crews, c)
	}
	return crews, rows.Err()
}

func (r *PGCrewRepository) GetByID(ctx context.Context, id int64) (*domain.Crew, error) {
	var c domain.Crew
	if err := r.db.QueryRow(ctx, `SELECT id, first_name, last_name FROM crews WHERE id=$1`, id).Scan(&c.ID, &c.FirstName, &c.LastName); err != nil {
		return nil, mapErr(err)
	}
	return &c, nil
}

func (r *PGCrewRepository) Create(ctx context.Context, crew *domain.Crew) error {
	return r.db.QueryRow(ctx, `INSERT INTO crews (first_name, last_name) VALUES ($1, $2) RETURNING id`,
		crew.FirstName, crew.LastName).Scan(&crew.ID)
}

func (r *PGCrewRepository) Update(ctx context.Context, crew *domain.Crew) error {
	cmd, err := r.db.Exec(ctx, `UPDATE crews SET first_name=$1, last_name=$2 WHERE id=$3`,
		crew.FirstName, crew.LastName, crew.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGCrewRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM crews WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ CrewRepository = (*PGCrewRepository)(nil)
