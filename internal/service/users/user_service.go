package users

import (
	"context"
	"errors"

	"github.com/avshorin/airport-api/internal/auth"
	"github.com/avshorin/airport-api/internal/domain"
	"github.com/avshorin/airport-api/internal/repository"
)

const minPasswordLen = 5

type UserUseCase interface {
	Register(ctx context.Context, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	UpdateProfile(ctx context.Context, id int64, email, password string) (*domain.User, error)
}

type UserService struct {
	users  repository.UserRepository
	tokens *auth.Manager
}

func NewUserService(users repository.UserRepository, tokens *auth.Manager) *UserService {
	return &UserService{users: users, tokens: tokens}
}

func (s *UserService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" {
		return nil, domain.NewValidationError("email is required")
	}
	if len(password) < minPasswordLen {
		return nil, domain.NewValidationError("password must be at least %d characters", minPasswordLen)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{Email: email, PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		return "", domain.ErrInvalidCredentials
	}
	return s.tokens.Issue(user.ID, user.Email, user.IsStaff)
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// UpdateProfile changes the caller's email and, when non-empty, password.
func (s *UserService) UpdateProfile(ctx context.Context, id int64, email, password string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if email != "" {
		user.Email = email
	}
	if password != "" {
		if len(password) < minPasswordLen {
			return nil, domain.NewValidationError("password must be at least %d characters", minPasswordLen)
		}
		hash, err := auth.HashPassword(password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

var _ UserUseCase = (*UserService)(nil)
