package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/avshorin/airport-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAirportRepository struct {
	mock.Mock
}

func (m *MockAirportRepository) List(ctx context.Context) ([]domain.Airport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Airport), args.Error(1)
}

func (m *MockAirportRepository) GetByID(ctx context.Context, id int64) (*domain.Airport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Airport), args.Error(1)
}

func (m *MockAirportRepository) Create(ctx context.Context, airport *domain.Airport) error {
	args := m.Called(ctx, airport)
	return args.Error(0)
}

func (m *MockAirportRepository) Update(ctx context.Context, airport *domain.Airport) error {
	args := m.Called(ctx, airport)
	return args.Error(0)
}

func (m *MockAirportRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockAirplaneRepository struct {
	mock.Mock
}

func (m *MockAirplaneRepository) List(ctx context.Context, typeIDs []int64) ([]domain.Airplane, error) {
	args := m.Called(ctx, typeIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Airplane), args.Error(1)
}

func (m *MockAirplaneRepository) GetByID(ctx context.Context, id int64) (*domain.Airplane, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Airplane), args.Error(1)
}

func (m *MockAirplaneRepository) Create(ctx context.Context, name string, rows, seatsInRow int, typeID int64) (*domain.Airplane, error) {
	args := m.Called(ctx, name, rows, seatsInRow, typeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Airplane), args.Error(1)
}

func (m *MockAirplaneRepository) Update(ctx context.Context, id int64, name string, rows, seatsInRow int, typeID int64) (*domain.Airplane, error) {
	args := m.Called(ctx, id, name, rows, seatsInRow, typeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Airplane), args.Error(1)
}

func (m *MockAirplaneRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAirplaneRepository) SetImagePath(ctx context.Context, id int64, path string) error {
	args := m.Called(ctx, id, path)
	return args.Error(0)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetAirports(ctx context.Context) ([]domain.Airport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Airport), args.Error(1)
}

func (m *MockCache) SetAirports(ctx context.Context, airports []domain.Airport) error {
	args := m.Called(ctx, airports)
	return args.Error(0)
}

func (m *MockCache) InvalidateAirports(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestListAirports_cacheMiss(t *testing.T) {
	repo := &MockAirportRepository{}
	cache := &MockCache{}
	service := NewService(repo, nil, nil, nil, nil, cache, "")
	ctx := context.Background()

	stored := []domain.Airport{{ID: 1, Name: "Heathrow", ClosestBigCity: "London"}}
	cache.On("GetAirports", ctx).Return(nil, errors.New("cache miss"))
	repo.On("List", ctx).Return(stored, nil)
	cache.On("SetAirports", ctx, stored).Return(nil)

	airports, err := service.ListAirports(ctx)
	require.NoError(t, err)
	assert.Equal(t, stored, airports)
	cache.AssertExpectations(t)
}

func TestListAirports_cacheHit(t *testing.T) {
	repo := &MockAirportRepository{}
	cache := &MockCache{}
	service := NewService(repo, nil, nil, nil, nil, cache, "")
	ctx := context.Background()

	cached := []domain.Airport{{ID: 1, Name: "Heathrow", ClosestBigCity: "London"}}
	cache.On("GetAirports", ctx).Return(cached, nil)

	airports, err := service.ListAirports(ctx)
	require.NoError(t, err)
	assert.Equal(t, cached, airports)
	repo.AssertNotCalled(t, "List")
}

func TestCreateAirport_invalidatesCache(t *testing.T) {
	repo := &MockAirportRepository{}
	cache := &MockCache{}
	service := NewService(repo, nil, nil, nil, nil, cache, "")
	ctx := context.Background()

	repo.On("Create", ctx, mock.MatchedBy(func(a *domain.Airport) bool {
		return a.Name == "Gatwick"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Airport).ID = 2
	}).Return(nil)
	cache.On("InvalidateAirports", ctx).Return(nil)

	airport, err := service.CreateAirport(ctx, "Gatwick", "London")
	require.NoError(t, err)
	assert.Equal(t, int64(2), airport.ID)
	cache.AssertExpectations(t)
}

func TestCreateAirplane_rejectsBadGeometry(t *testing.T) {
	airplanes := &MockAirplaneRepository{}
	service := NewService(nil, nil, nil, nil, airplanes, nil, "")
	ctx := context.Background()

	var valErr *domain.ValidationError

	_, err := service.CreateAirplane(ctx, "Dreamliner", 0, 9, 1)
	assert.ErrorAs(t, err, &valErr)

	_, err = service.CreateAirplane(ctx, "Dreamliner", 30, 0, 1)
	assert.ErrorAs(t, err, &valErr)

	_, err = service.UpdateAirplane(ctx, 1, "Dreamliner", -1, 9, 1)
	assert.ErrorAs(t, err, &valErr)

	airplanes.AssertNotCalled(t, "Create")
	airplanes.AssertNotCalled(t, "Update")
}

func TestAttachAirplaneImage(t *testing.T) {
	airplanes := &MockAirplaneRepository{}
	dir := t.TempDir()
	service := NewService(nil, nil, nil, nil, airplanes, nil, dir)
	ctx := context.Background()

	plane := &domain.Airplane{ID: 1, Name: "Dreamliner", Rows: 30, SeatsInRow: 9}
	airplanes.On("GetByID", ctx, int64(1)).Return(plane, nil)

	var savedPath string
	airplanes.On("SetImagePath", ctx, int64(1), mock.MatchedBy(func(path string) bool {
		savedPath = path
		return filepath.Dir(path) == dir && filepath.Ext(path) == ".png"
	})).Return(nil)

	_, err := service.AttachAirplaneImage(ctx, 1, "photo.png", strings.NewReader("pngdata"))
	require.NoError(t, err)

	data, err := os.ReadFile(savedPath)
	require.NoError(t, err)
	assert.Equal(t, "pngdata", string(data))
}

func TestAttachAirplaneImage_unknownAirplane(t *testing.T) {
	airplanes := &MockAirplaneRepository{}
	service := NewService(nil, nil, nil, nil, airplanes, nil, t.TempDir())
	ctx := context.Background()

	airplanes.On("GetByID", ctx, int64(9)).Return(nil, domain.ErrNotFound)

	_, err := service.AttachAirplaneImage(ctx, 9, "photo.png", strings.NewReader("pngdata"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	airplanes.AssertNotCalled(t, "SetImagePath")
}
