package account

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"golang.org/x/crypto/bcrypt"

	"newsroom/internal/domain/entity"
	"newsroom/internal/repository"
)

const minPasswordLength = 8

// RegisterInput represents the input parameters for registering a new user.
type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	PasswordConfirm string
	Role            string
}

// Service provides account management use cases.
type Service struct {
	Repo repository.UserRepository
}

// Register creates a new user account.
//
// The role is fixed at registration: it must be one of reader, journalist
// or editor, and the matching permission group is assigned immediately.
// Returns a ValidationError for bad input and ErrDuplicateUsername when
// the username is taken.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	if in.Username == "" {
		return nil, &entity.ValidationError{Field: "username", Message: "is required"}
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return nil, &entity.ValidationError{Field: "email", Message: "must be a valid address"}
	}
	if len(in.Password) < minPasswordLength {
		return nil, &entity.ValidationError{Field: "password", Message: fmt.Sprintf("must be at least %d characters", minPasswordLength)}
	}
	if in.Password != in.PasswordConfirm {
		return nil, &entity.ValidationError{Field: "passwordConfirm", Message: "does not match password"}
	}

	role, err := entity.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &entity.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now(),
	}
	u.AssignGroups()

	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// Authenticate verifies a username and password pair.
// Returns ErrInvalidCredentials when either does not match; the caller
// cannot distinguish an unknown username from a wrong password.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*entity.User, error) {
	u, err := s.Repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Get retrieves a single user by ID.
// Returns ErrInvalidUserID if the ID is not positive.
// Returns ErrUserNotFound if the user does not exist.
func (s *Service) Get(ctx context.Context, id int64) (*entity.User, error) {
	if id <= 0 {
		return nil, ErrInvalidUserID
	}
	u, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// GetJournalist retrieves a user and verifies the journalist role.
// Returns ErrUserNotFound for a missing user or a user holding a
// different role, so the journalist directory never leaks other accounts.
func (s *Service) GetJournalist(ctx context.Context, id int64) (*entity.User, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.Role != entity.RoleJournalist {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// ListJournalists retrieves all users holding the journalist role.
func (s *Service) ListJournalists(ctx context.Context) ([]*entity.User, error) {
	users, err := s.Repo.ListByRole(ctx, entity.RoleJournalist)
	if err != nil {
		return nil, fmt.Errorf("list journalists: %w", err)
	}
	return users, nil
}
