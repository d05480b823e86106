package repository

import (
	"context"

	"github.com/avshorin/airport-api/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AirplaneRepository interface {
	List(ctx context.Context, typeIDs []int64) ([]domain.Airplane, error)
	GetByID(ctx context.Context, id int64) (*domain.Airplane, error)
	Create(ctx context.Context, name string, rows, seatsInRow int, typeID int64) (*domain.Airplane, error)
	Update(ctx context.Context, id int64, name string, rows, seatsInRow int, typeID int64) (*domain.Airplane, error)
	Delete(ctx context.Context, id int64) error
	SetImagePath(ctx context.Context, id int64, path string) error
}

type PGAirplaneRepository struct {
	db *pgxpool.Pool
}

func NewAirplaneRepository(db *pgxpool.Pool) AirplaneRepository {
	return &PGAirplaneRepository{db: db}
}

const airplaneSelect = `
SELECT a.id, a.name, a.rows, a.seats_in_row, a.image_path, t.id, t.name
FROM airplanes a
JOIN airplane_types t ON t.id = a.airplane_type_id`

func scanAirplane(row interface{ Scan(dest ...any) error }) (*domain.Airplane, error) {
	var (
		a         domain.Airplane
		imagePath *string
	)
	if err := row.Scan(&a.ID, &a.Name, &a.Rows, &a.SeatsInRow, &imagePath, &a.Type.ID, &a.Type.Name); err != nil {
		return nil, err
	}
	if imagePath != nil {
		a.ImagePath = *imagePath
	}
	return &a, nil
}

func (r *PGAirplaneRepository) List(ctx context.Context, typeIDs []int64) ([]domain.Airplane, error) {
	query := airplaneSelect + `
WHERE (cardinality($1::bigint[]) = 0 OR a.airplane_type_id = ANY($1::bigint[]))
ORDER BY a.id`

	if typeIDs == nil {
		typeIDs = []int64{}
	}
	rows, err := r.db.Query(ctx, query, typeIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	airplanes := make([]domain.Airplane, 0)
	for rows.Next() {
		a, err := scanAirplane(rows)
		if err != nil {
			return nil, err
		}
		airplanes = append(airplanes, *a)
	}
	return airplanes, rows.Err()
}

func (r *PGAirplaneRepository) GetByID(ctx context.Context, id int64) (*domain.Airplane, error) {
	a, err := scanAirplane(r.db.QueryRow(ctx, airplaneSelect+` WHERE a.id=$1`, id))
	if err != nil {
		return nil, mapErr(err)
	}
	return a, nil
}

func (r *PGAirplaneRepository) Create(ctx context.Context, name string, rows, seatsInRow int, typeID int64) (*domain.Airplane, error) {
	var id int64
	err := r.db.QueryRow(ctx, `INSERT INTO airplanes (name, rows, seats_in_row, airplane_type_id) VALUES ($1, $2, $3, $4) RETURNING id`,
		name, rows, seatsInRow, typeID).Scan(&id)
	if err != nil {
		return nil, mapErr(err)
	}
	return r.GetByID(ctx, id)
}

func (r *PGAirplaneRepository) Update(ctx context.Context, id int64, name string, rows, seatsInRow int, typeID int64) (*domain.Airplane, error) {
	cmd, err := r.db.Exec(ctx, `UPDATE airplanes SET name=$1, rows=$2, seats_in_row=$3, airplane_type_id=$4 WHERE id=$5`,
		name, rows, seatsInRow, typeID, id)
	if err != nil {
		return nil, mapErr(err)
	}
	if cmd.RowsAffected() == 0 {
		return nil, domain.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *PGAirplaneRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM airplanes WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGAirplaneRepository) SetImagePath(ctx context.Context, id int64, path string) error {
	cmd, err := r.db.Exec(ctx, `UPDATE airplanes SET image_path=$1 WHERE id=$2`, path, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ AirplaneRepository = (*PGAirplaneRepository)(nil)
