package repository

import (
	"context"
	"time"

	"newsroom/internal/domain/entity"
)

type NewsletterRepository interface {
	// Get retrieves a newsletter by ID. Returns (nil, nil) if not found.
	Get(ctx context.Context, id int64) (*entity.Newsletter, error)
	// ListPublished retrieves all published newsletters ordered by
	// published_at DESC.
	ListPublished(ctx context.Context) ([]*entity.Newsletter, error)
	// ListByAuthor retrieves all newsletters by the author, drafts included,
	// ordered by created_at DESC.
	ListByAuthor(ctx context.Context, authorID int64) ([]*entity.Newsletter, error)
	// ListDraftsByPublishers retrieves unpublished newsletters attached to
	// any of the given publishers, ordered by created_at DESC.
	ListDraftsByPublishers(ctx context.Context, publisherIDs []int64) ([]*entity.Newsletter, error)
	Create(ctx context.Context, newsletter *entity.Newsletter) error
	Update(ctx context.Context, newsletter *entity.Newsletter) error
	Delete(ctx context.Context, id int64) error
	// Publish atomically flips the newsletter to published and stamps
	// published_at if it was never stamped. Returns false when the
	// newsletter was already published or does not exist.
	Publish(ctx context.Context, id int64, publishedAt time.Time) (bool, error)
}
