package repository

import (
	"context"
	"time"

	"newsroom/internal/domain/entity"
)

type ArticleRepository interface {
	// Get retrieves an article by ID. Returns (nil, nil) if not found.
	Get(ctx context.Context, id int64) (*entity.Article, error)
	// ListApproved retrieves all approved articles ordered by created_at DESC.
	ListApproved(ctx context.Context) ([]*entity.Article, error)
	// ListByAuthor retrieves all articles by the author, approved or not,
	// ordered by created_at DESC.
	ListByAuthor(ctx context.Context, authorID int64) ([]*entity.Article, error)
	// ListPendingByPublishers retrieves unapproved articles attached to any
	// of the given publishers, ordered by created_at DESC. Returns an empty
	// slice when publisherIDs is empty.
	ListPendingByPublishers(ctx context.Context, publisherIDs []int64) ([]*entity.Article, error)
	// ListApprovedByPublishers retrieves approved articles attached to any
	// of the given publishers, ordered by published_at DESC.
	ListApprovedByPublishers(ctx context.Context, publisherIDs []int64) ([]*entity.Article, error)
	// ListApprovedByAuthors retrieves approved independent articles (no
	// publisher) written by any of the given authors, ordered by
	// published_at DESC. Publisher-attached work is excluded: a reader
	// reaches it through a publisher subscription only.
	ListApprovedByAuthors(ctx context.Context, authorIDs []int64) ([]*entity.Article, error)
	Create(ctx context.Context, article *entity.Article) error
	Update(ctx context.Context, article *entity.Article) error
	Delete(ctx context.Context, id int64) error
	// Approve atomically flips the article to approved and stamps
	// published_at if it was never stamped. Returns false when the article
	// was already approved or does not exist, without touching the row.
	Approve(ctx context.Context, id int64, publishedAt time.Time) (bool, error)
}
