package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/splitshare-service/internal/auth"
	"github.com/splitshare-service/internal/domain/user"
)

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userRepo user.Repository
	tokens   *auth.TokenManager
}

// NewUserService creates a new user service
func NewUserService(userRepo user.Repository, tokens *auth.TokenManager) UserService {
	return &UserServiceImpl{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Register creates a new user, checking for duplicate emails, and signs a token
func (s *UserServiceImpl) Register(ctx context.Context, name, email, password string) (*user.User, string, error) {
	existingUser, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if existingUser != nil {
		return nil, "", user.ErrDuplicateEmail{Email: email}
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	u, err := user.NewUser(name, email, hash)
	if err != nil {
		return nil, "", err
	}

	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Generate(u.ID, u.Email)
	if err != nil {
		return nil, "", err
	}

	return u, token, nil
}

// Login verifies credentials and signs a token for the user
func (s *UserServiceImpl) Login(ctx context.Context, email, password string) (*user.User, string, error) {
	u, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if u == nil {
		return nil, "", auth.ErrInvalidCredentials
	}

	if err := auth.VerifyPassword(u.PasswordHash, password); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Generate(u.ID, u.Email)
	if err != nil {
		return nil, "", err
	}

	return u, token, nil
}

// GetUserByID retrieves a user by its ID, returns ErrUserNotFound if not found
func (s *UserServiceImpl) GetUserByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return s.userRepo.GetByID(ctx, id)
}
