package repository

import (
	"context"

	"newsroom/internal/domain/entity"
)

type PublisherRepository interface {
	// Get retrieves a publisher with its editor and journalist sets loaded.
	// Returns (nil, nil) if not found.
	Get(ctx context.Context, id int64) (*entity.Publisher, error)
	// List retrieves all publishers ordered by name. Member sets are loaded.
	List(ctx context.Context) ([]*entity.Publisher, error)
	// ListByEditor retrieves the publishers whose editor set contains the user.
	ListByEditor(ctx context.Context, editorID int64) ([]*entity.Publisher, error)
	Create(ctx context.Context, publisher *entity.Publisher) error
	Update(ctx context.Context, publisher *entity.Publisher) error
	Delete(ctx context.Context, id int64) error
	// AddEditor adds the user to the publisher's editor set. Idempotent.
	AddEditor(ctx context.Context, publisherID, userID int64) error
	// RemoveEditor removes the user from the publisher's editor set.
	RemoveEditor(ctx context.Context, publisherID, userID int64) error
	// AddJournalist adds the user to the publisher's journalist set. Idempotent.
	AddJournalist(ctx context.Context, publisherID, userID int64) error
	// RemoveJournalist removes the user from the publisher's journalist set.
	RemoveJournalist(ctx context.Context, publisherID, userID int64) error
	// IsEditor reports whether the user belongs to the publisher's editor set.
	IsEditor(ctx context.Context, publisherID, userID int64) (bool, error)
}
