package catalog

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/avshorin/airport-api/internal/domain"
	"github.com/avshorin/airport-api/internal/repository"
	"github.com/google/uuid"
)

type AirportUseCase interface {
	ListAirports(ctx context.Context) ([]domain.Airport, error)
	GetAirport(ctx context.Context, id int64) (*domain.Airport, error)
	CreateAirport(ctx context.Context, name, closestBigCity string) (*domain.Airport, error)
	UpdateAirport(ctx context.Context, id int64, name, closestBigCity string) (*domain.Airport, error)
	DeleteAirport(ctx context.Context, id int64) error
}

type AirplaneTypeUseCase interface {
	ListAirplaneTypes(ctx context.Context) ([]domain.AirplaneType, error)
	GetAirplaneType(ctx context.Context, id int64) (*domain.AirplaneType, error)
	CreateAirplaneType(ctx context.Context, name string) (*domain.AirplaneType, error)
	UpdateAirplaneType(ctx context.Context, id int64, name string) (*domain.AirplaneType, error)
	DeleteAirplaneType(ctx context.Context, id int64) error
}

type CrewUseCase interface {
	ListCrew(ctx context.Context) ([]domain.Crew, error)
	GetCrew(ctx context.Context, id int64) (*domain.Crew, error)
	CreateCrew(ctx context.Context, firstName, lastName string) (*domain.Crew, error)
	UpdateCrew(ctx context.Context, id int64, firstName, lastName string) (*domain.Crew, error)
	DeleteCrew(ctx context.Context, id int64) error
}

type RouteUseCase interface {
	ListRoutes(ctx context.Context, filter repository.RouteFilter) ([]domain.Route, error)
	GetRoute(ctx context.Context, id int64) (*domain.Route, error)
	CreateRoute(ctx context.Context, sourceID, destinationID int64, distance int) (*domain.Route, error)
	UpdateRoute(ctx context.Context, id, sourceID, destinationID int64, distance int) (*domain.Route, error)
	DeleteRoute(ctx context.Context, id int64) error
}

type AirplaneUseCase interface {
	ListAirplanes(ctx context.Context, typeIDs []int64) ([]domain.Airplane, error)
	GetAirplane(ctx context.Context, id int64) (*domain.Airplane, error)
	CreateAirplane(ctx context.Context, name string, rows, seatsInRow int, typeID int64) (*domain.Airplane, error)
	UpdateAirplane(ctx context.Context, id int64, name string, rows, seatsInRow int, typeID int64) (*domain.Airplane, error)
	DeleteAirplane(ctx context.Context, id int64) error
	AttachAirplaneImage(ctx context.Context, id int64, filename string, src io.Reader) (*domain.Airplane, error)
}

// Cache keeps the airport list warm between requests. Writes invalidate it.
type Cache interface {
	GetAirports(ctx context.Context) ([]domain.Airport, error)
	SetAirports(ctx context.Context, airports []domain.Airport) error
	InvalidateAirports(ctx context.Context) error
}

type Service struct {
	airports  repository.AirportRepository
	types     repository.AirplaneTypeRepository
	crews     repository.CrewRepository
	routes    repository.RouteRepository
	airplanes repository.AirplaneRepository
	cache     Cache
	uploadDir string
}

func NewService(
	airports repository.AirportRepository,
	types repository.AirplaneTypeRepository,
	crews repository.CrewRepository,
	routes repository.RouteRepository,
	airplanes repository.AirplaneRepository,
	cache Cache,
	uploadDir string,
) *Service {
	return &Service{
		airports:  airports,
		types:     types,
		crews:     crews,
		routes:    routes,
		airplanes: airplanes,
		cache:     cache,
		uploadDir: uploadDir,
	}
}

func (s *Service) ListAirports(ctx context.Context) ([]domain.Airport, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetAirports(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	airports, err := s.airports.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetAirports(ctx, airports)
	}
	return airports, nil
}

func (s *Service) GetAirport(ctx context.Context, id int64) (*domain.Airport, error) {
	return s.airports.GetByID(ctx, id)
}

func (s *Service) CreateAirport(ctx context.Context, name, closestBigCity string) (*domain.Airport, error) {
	airport := &domain.Airport{Name: name, ClosestBigCity: closestBigCity}
	if err := s.airports.Create(ctx, airport); err != nil {
		return nil, err
	}
	s.dropAirportCache(ctx)
	return airport, nil
}

func (s *Service) UpdateAirport(ctx context.Context, id int64, name, closestBigCity string) (*domain.Airport, error) {
	airport := &domain.Airport{ID: id, Name: name, ClosestBigCity: closestBigCity}
	if err := s.airports.Update(ctx, airport); err != nil {
		return nil, err
	}
	s.dropAirportCache(ctx)
	return airport, nil
}

func (s *Service) DeleteAirport(ctx context.Context, id int64) error {
	if err := s.airports.Delete(ctx, id); err != nil {
		return err
	}
	s.dropAirportCache(ctx)
	return nil
}

func (s *Service) dropAirportCache(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.InvalidateAirports(ctx)
	}
}

func (s *Service) ListAirplaneTypes(ctx context.Context) ([]domain.AirplaneType, error) {
	return s.types.List(ctx)
}

func (s *Service) GetAirplaneType(ctx context.Context, id int64) (*domain.AirplaneType, error) {
	return s.types.GetByID(ctx, id)
}

func (s *Service) CreateAirplaneType(ctx context.Context, name string) (*domain.AirplaneType, error) {
	t := &domain.AirplaneType{Name: name}
	if err := s.types.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) UpdateAirplaneType(ctx context.Context, id int64, name string) (*domain.AirplaneType, error) {
	t := &domain.AirplaneType{ID: id, Name: name}
	if err := s.types.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) DeleteAirplaneType(ctx context.Context, id int64) error {
	return s.types.Delete(ctx, id)
}

func (s *Service) ListCrew(ctx context.Context) ([]domain.Crew, error) {
	return s.crews.List(ctx)
}

func (s *Service) GetCrew(ctx context.Context, id int64) (*domain.Crew, error) {
	return s.crews.GetByID(ctx, id)
}

func (s *Service) CreateCrew(ctx context.Context, firstName, lastName string) (*domain.Crew, error) {
	c := &domain.Crew{FirstName: firstName, LastName: lastName}
	if err := s.crews.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) UpdateCrew(ctx context.Context, id int64, firstName, lastName string) (*domain.Crew, error) {
	c := &domain.Crew{ID: id, FirstName: firstName, LastName: lastName}
	if err := s.crews.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) DeleteCrew(ctx context.Context, id int64) error {
	return s.crews.Delete(ctx, id)
}

func (s *Service) ListRoutes(ctx context.Context, filter repository.RouteFilter) ([]domain.Route, error) {
	return s.routes.List(ctx, filter)
}

func (s *Service) GetRoute(ctx context.Context, id int64) (*domain.Route, error) {
	return s.routes.GetByID(ctx, id)
}

func (s *Service) CreateRoute(ctx context.Context, sourceID, destinationID int64, distance int) (*domain.Route, error) {
	return s.routes.Create(ctx, sourceID, destinationID, distance)
}

func (s *Service) UpdateRoute(ctx context.Context, id, sourceID, destinationID int64, distance int) (*domain.Route, error) {
	return s.routes.Update(ctx, id, sourceID, destinationID, distance)
}

func (s *Service) DeleteRoute(ctx context.Context, id int64) error {
	return s.routes.Delete(ctx, id)
}

func (s *Service) ListAirplanes(ctx context.Context, typeIDs []int64) ([]domain.Airplane, error) {
	return s.airplanes.List(ctx, typeIDs)
}

func (s *Service) GetAirplane(ctx context.Context, id int64) (*domain.Airplane, error) {
	return s.airplanes.GetByID(ctx, id)
}

func (s *Service) CreateAirplane(ctx context.Context, name string, rows, seatsInRow int, typeID int64) (*domain.Airplane, error) {
	if err := validateSeatGrid(rows, seatsInRow); err != nil {
		return nil, err
	}
	return s.airplanes.Create(ctx, name, rows, seatsInRow, typeID)
}

func (s *Service) UpdateAirplane(ctx context.Context, id int64, name string, rows, seatsInRow int, typeID int64) (*domain.Airplane, error) {
	if err := validateSeatGrid(rows, seatsInRow); err != nil {
		return nil, err
	}
	return s.airplanes.Update(ctx, id, name, rows, seatsInRow, typeID)
}

func validateSeatGrid(rows, seatsInRow int) error {
	if rows < 1 {
		return domain.NewValidationError("rows must be at least 1, got %d", rows)
	}
	if seatsInRow < 1 {
		return domain.NewValidationError("seats in row must be at least 1, got %d", seatsInRow)
	}
	return nil
}

func (s *Service) DeleteAirplane(ctx context.Context, id int64) error {
	return s.airplanes.Delete(ctx, id)
}

// AttachAirplaneImage stores the uploaded file under a generated name and
// records the path on the airplane.
func (s *Service) AttachAirplaneImage(ctx context.Context, id int64, filename string, src io.Reader) (*domain.Airplane, error) {
	if _, err := s.airplanes.GetByID(ctx, id); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	name := uuid.NewString() + filepath.Ext(filename)
	path := filepath.Join(s.uploadDir, name)

	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create image file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("write image file: %w", err)
	}

	if err := s.airplanes.SetImagePath(ctx, id, path); err != nil {
		os.Remove(path)
		return nil, err
	}
	return s.airplanes.GetByID(ctx, id)
}

var (
	_ AirportUseCase      = (*Service)(nil)
	_ AirplaneTypeUseCase = (*Service)(nil)
	_ CrewUseCase         = (*Service)(nil)
	_ RouteUseCase        = (*Service)(nil)
	_ AirplaneUseCase     = (*Service)(nil)
)
