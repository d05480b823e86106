package users

import (
	"context"
	"testing"
	"time"

	"github.com/avshorin/airport-api/internal/auth"
	"github.com/avshorin/airport-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func newTestManager() *auth.Manager {
	return auth.NewManager("test-secret", time.Hour)
}

func TestRegister(t *testing.T) {
	repo := &MockUserRepository{}
	service := NewUserService(repo, newTestManager())
	ctx := context.Background()

	repo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "user@example.com" && u.PasswordHash != "" && u.PasswordHash != "pass123"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.User).ID = 1
	}).Return(nil)

	user, err := service.Register(ctx, "user@example.com", "pass123")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.True(t, auth.CheckPassword("pass123", user.PasswordHash))
	repo.AssertExpectations(t)
}

func TestRegister_validation(t *testing.T) {
	repo := &MockUserRepository{}
	service := NewUserService(repo, newTestManager())
	ctx := context.Background()

	var valErr *domain.ValidationError

	_, err := service.Register(ctx, "", "pass123")
	assert.ErrorAs(t, err, &valErr)
	assert.EqualError(t, err, "email is required")

	_, err = service.Register(ctx, "user@example.com", "abcd")
	assert.ErrorAs(t, err, &valErr)
	assert.EqualError(t, err, "password must be at least 5 characters")

	repo.AssertNotCalled(t, "Create")
}

func TestRegister_emailTaken(t *testing.T) {
	repo := &MockUserRepository{}
	service := NewUserService(repo, newTestManager())
	ctx := context.Background()

	repo.On("Create", ctx, mock.Anything).Return(domain.ErrEmailTaken)

	_, err := service.Register(ctx, "user@example.com", "pass123")
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	repo := &MockUserRepository{}
	tokens := newTestManager()
	service := NewUserService(repo, tokens)
	ctx := context.Background()

	hash, err := auth.HashPassword("pass123")
	require.NoError(t, err)

	repo.On("GetByEmail", ctx, "user@example.com").Return(&domain.User{
		ID:           42,
		Email:        "user@example.com",
		PasswordHash: hash,
	}, nil)

	token, err := service.Login(ctx, "user@example.com", "pass123")
	require.NoError(t, err)

	claims, err := tokens.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "user@example.com", claims.Subject)
	assert.False(t, claims.IsStaff)
}

func TestLogin_wrongPassword(t *testing.T) {
	repo := &MockUserRepository{}
	service := NewUserService(repo, newTestManager())
	ctx := context.Background()

	hash, err := auth.HashPassword("pass123")
	require.NoError(t, err)

	repo.On("GetByEmail", ctx, "user@example.com").Return(&domain.User{
		ID:           42,
		Email:        "user@example.com",
		PasswordHash: hash,
	}, nil)

	_, err = service.Login(ctx, "user@example.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_unknownEmail(t *testing.T) {
	repo := &MockUserRepository{}
	service := NewUserService(repo, newTestManager())
	ctx := context.Background()

	repo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, domain.ErrNotFound)

	// Unknown email and wrong password are indistinguishable to the caller.
	_, err := service.Login(ctx, "nobody@example.com", "pass123")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestUpdateProfile(t *testing.T) {
	repo := &MockUserRepository{}
	service := NewUserService(repo, newTestManager())
	ctx := context.Background()

	hash, err := auth.HashPassword("pass123")
	require.NoError(t, err)

	repo.On("GetByID", ctx, int64(42)).Return(&domain.User{
		ID:           42,
		Email:        "old@example.com",
		PasswordHash: hash,
	}, nil)
	repo.On("Update", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "new@example.com"
	})).Return(nil)

	user, err := service.UpdateProfile(ctx, 42, "new@example.com", "")
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", user.Email)
	// Empty password leaves the hash untouched.
	assert.Equal(t, hash, user.PasswordHash)
	repo.AssertExpectations(t)
}
