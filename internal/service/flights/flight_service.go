package flights

import (
	"context"
	"time"

	"github.com/avshorin/airport-api/internal/domain"
	"github.com/avshorin/airport-api/internal/repository"
)

type FlightUseCase interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Create(ctx context.Context, input FlightInput) (*domain.Flight, error)
	Update(ctx context.Context, id int64, input FlightInput) (*domain.Flight, error)
	Delete(ctx context.Context, id int64) error
}

type FlightInput struct {
	RouteID       int64     `json:"route"`
	AirplaneID    int64     `json:"airplane"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
	CrewIDs       []int64   `json:"crew"`
}

// FlightService reads always go to the store so tickets_available is
// recomputed per request.
type FlightService struct {
	repo repository.FlightRepository
}

func NewFlightService(repo repository.FlightRepository) *FlightService {
	return &FlightService{repo: repo}
}

func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	return s.repo.List(ctx)
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *FlightService) Create(ctx context.Context, input FlightInput) (*domain.Flight, error) {
	return s.repo.Create(ctx, input.RouteID, input.AirplaneID, input.DepartureTime, input.ArrivalTime, input.CrewIDs)
}

func (s *FlightService) Update(ctx context.Context, id int64, input FlightInput) (*domain.Flight, error) {
	return s.repo.Update(ctx, id, input.RouteID, input.AirplaneID, input.DepartureTime, input.ArrivalTime, input.CrewIDs)
}

func (s *FlightService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

var _ FlightUseCase = (*FlightService)(nil)
