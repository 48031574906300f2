package auth

import (
	"context"
	"errors"
	"fmt"

	"dental-portal/internal/model"
	"dental-portal/internal/repository"
	"dental-portal/pkg/security"
)

var (
	ErrMissingField       = errors.New("all fields are required")
	ErrUsernameTaken      = errors.New("username is already registered")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type Service struct {
	users  repository.UserRepository
	hasher security.PasswordHasher
}

func NewService(users repository.UserRepository, hasher security.PasswordHasher) *Service {
	return &Service{
		users:  users,
		hasher: hasher,
	}
}

// Register creates a new account. Validation short-circuits on the first
// failure and nothing is written on any failure branch. The plaintext
// password is hashed before it touches the store and is never logged.
func (s *Service) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	if username == "" {
		return nil, ErrMissingField
	}
	if email == "" {
		return nil, ErrMissingField
	}
	if password == "" {
		return nil, ErrMissingField
	}

	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// A concurrent registration can slip between the checks above and
		// the insert; the store's UNIQUE indexes still reject it.
		switch {
		case errors.Is(err, repository.ErrUsernameExists):
			return nil, ErrUsernameTaken
		case errors.Is(err, repository.ErrEmailExists):
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and returns the account. An unknown email and a
// wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
