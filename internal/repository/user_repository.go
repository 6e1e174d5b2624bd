package repository

import (
	"context"

	"newsroom/internal/domain/entity"
)

type UserRepository interface {
	// Get retrieves a user by ID. Returns (nil, nil) if not found.
	Get(ctx context.Context, id int64) (*entity.User, error)
	// GetByUsername retrieves a user by username. Returns (nil, nil) if not found.
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	// ListByRole retrieves all users holding the given role,
	// ordered by username.
	ListByRole(ctx context.Context, role entity.Role) ([]*entity.User, error)
	// ListByIDs retrieves the users with the given IDs. Missing IDs are
	// skipped. Returns an empty slice when ids is empty.
	ListByIDs(ctx context.Context, ids []int64) ([]*entity.User, error)
	// Create inserts a new user and sets its generated ID.
	// Returns ErrDuplicateUsername when the username is already taken.
	Create(ctx context.Context, user *entity.User) error
	// Update persists username and email changes.
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id int64) error
}
