package repository

import (
	"context"

	"github.com/avshorin/airport-api/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RouteFilter narrows route listings by case-insensitive substring match
// on the related airport names. Empty fields are ignored.
type RouteFilter struct {
	Source      string
	Destination string
}

type RouteRepository interface {
	List(ctx context.Context, filter RouteFilter) ([]domain.Route, error)
	GetByID(ctx context.Context, id int64) (*domain.Route, error)
	Create(ctx context.Context, sourceID, destinationID int64, distance int) (*domain.Route, error)
	Update(ctx context.Context, id, sourceID, destinationID int64, distance int) (*domain.Route, error)
	Delete(ctx context.Context, id int64) error
}

type PGRouteRepository struct {
	db *pgxpool.Pool
}

func NewRouteRepository(db *pgxpool.Pool) RouteRepository {
	return &PGRouteRepository{db: db}
}

const routeSelect = `
SELECT r.id, r.distance,
       src.id, src.name, src.closest_big_city,
       dst.id, dst.name, dst.closest_big_city
FROM routes r
JOIN airports src ON src.id = r.source_id
JOIN airports dst ON dst.id = r.destination_id`

func scanRoute(row interface{ Scan(dest ...any) error }) (*domain.Route, error) {
	var rt domain.Route
	err := row.Scan(
		&rt.ID, &rt.Distance,
		&rt.Source.ID, &rt.Source.Name, &rt.Source.ClosestBigCity,
		&rt.Destination.ID, &rt.Destination.Name, &rt.Destination.ClosestBigCity,
	)
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

func (r *PGRouteRepository) List(ctx context.Context, filter RouteFilter) ([]domain.Route, error) {
	query := routeSelect + `
WHERE ($1 = '' OR src.name ILIKE '%' || $1 || '%')
  AND ($2 = '' OR dst.name ILIKE '%' || $2 || '%')
ORDER BY r.id`

	rows, err := r.db.Query(ctx, query, filter.Source, filter.Destination)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	routes := make([]domain.Route, 0)
	for rows.Next() {
		rt, err := scanRoute(rows)
		if err != nil {
			return nil, err
		}
		routes = append(routes, *rt)
	}
	return routes, rows.Err()
}

func (r *PGRouteRepository) GetByID(ctx context.Context, id int64) (*domain.Route, error) {
	rt, err := scanRoute(r.db.QueryRow(ctx, routeSelect+` WHERE r.id=$1`, id))
	if err != nil {
		return nil, mapErr(err)
	}
	return rt, nil
}

func (r *PGRouteRepository) Create(ctx context.Context, sourceID, destinationID int64, distance int) (*domain.Route, error) {
	var id int64
	err := r.db.QueryRow(ctx, `INSERT INTO routes (source_id, destination_id, distance) VALUES ($1, $2, $3) RETURNING id`,
		sourceID, destinationID, distance).Scan(&id)
	if err != nil {
		return nil, mapErr(err)
	}
	return r.GetByID(ctx, id)
}

func (r *PGRouteRepository) Update(ctx context.Context, id, sourceID, destinationID int64, distance int) (*domain.Route, error) {
	cmd, err := r.db.Exec(ctx, `UPDATE routes SET source_id=$1, destination_id=$2, distance=$3 WHERE id=$4`,
		sourceID, destinationID, distance, id)
	if err != nil {
		return nil, mapErr(err)
	}
	if cmd.RowsAffected() == 0 {
		return nil, domain.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *PGRouteRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM routes WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ RouteRepository = (*PGRouteRepository)(nil)
