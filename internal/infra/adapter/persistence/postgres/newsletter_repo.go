package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"newsroom/internal/domain/entity"
	"newsroom/internal/repository"
)

type NewsletterRepo struct{ db *sql.DB }

func NewNewsletterRepo(db *sql.DB) repository.NewsletterRepository {
	return &NewsletterRepo{db: db}
}

const newsletterColumns = `id, title, content, author_id, publisher_id, is_published, created_at, published_at`

func scanNewsletter(rows *sql.Rows) (*entity.Newsletter, error) {
	var n entity.Newsletter
	if err := rows.Scan(
		&n.ID, &n.Title, &n.Content, &n.AuthorID, &n.PublisherID,
		&n.IsPublished, &n.CreatedAt, &n.PublishedAt,
	); err != nil {
		return nil, err
	}
	return &n, nil
}

func (repo *NewsletterRepo) Get(ctx context.Context, id int64) (*entity.Newsletter, error) {
	const query = `
SELECT ` + newsletterColumns + `
FROM newsletters
WHERE id = $1
LIMIT 1`
	var n entity.Newsletter
	err := repo.db.QueryRowContext(ctx, query, id).Scan(
		&n.ID, &n.Title, &n.Content, &n.AuthorID, &n.PublisherID,
		&n.IsPublished, &n.CreatedAt, &n.PublishedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &n, nil
}

func (repo *NewsletterRepo) ListPublished(ctx context.Context) ([]*entity.Newsletter, error) {
	const query = `
SELECT ` + newsletterColumns + `
FROM newsletters
WHERE is_published = TRUE
ORDER BY published_at DESC`
	return repo.list(ctx, "ListPublished", query)
}

func (repo *NewsletterRepo) ListByAuthor(ctx context.Context, authorID int64) ([]*entity.Newsletter, error) {
	const query = `
SELECT ` + newsletterColumns + `
FROM newsletters
WHERE author_id = $1
ORDER BY created_at DESC`
	return repo.list(ctx, "ListByAuthor", query, authorID)
}

func (repo *NewsletterRepo) ListDraftsByPublishers(ctx context.Context, publisherIDs []int64) ([]*entity.Newsletter, error) {
	if len(publisherIDs) == 0 {
		return []*entity.Newsletter{}, nil
	}
	holders, args := int64Placeholders(1, publisherIDs)
	query := fmt.Sprintf(`
SELECT `+newsletterColumns+`
FROM newsletters
WHERE is_published = FALSE
  AND publisher_id IN (%s)
ORDER BY created_at DESC`, holders)
	return repo.list(ctx, "ListDraftsByPublishers", query, args...)
}

func (repo *NewsletterRepo) Create(ctx context.Context, newsletter *entity.Newsletter) error {
	const query = `
INSERT INTO newsletters (title, content, author_id, publisher_id, is_published, created_at, published_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query,
		newsletter.Title, newsletter.Content, newsletter.AuthorID, newsletter.PublisherID,
		newsletter.IsPublished, newsletter.CreatedAt, newsletter.PublishedAt,
	).Scan(&newsletter.ID)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *NewsletterRepo) Update(ctx context.Context, newsletter *entity.Newsletter) error {
	const query = `
UPDATE newsletters
SET title = $1, content = $2
WHERE id = $3`
	if _, err := repo.db.ExecContext(ctx, query,
		newsletter.Title, newsletter.Content, newsletter.ID,
	); err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	return nil
}

func (repo *NewsletterRepo) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM newsletters WHERE id = $1`
	if _, err := repo.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	return nil
}

// Publish mirrors ArticleRepo.Approve: the is_published guard guarantees
// a single winner under concurrent publishes.
func (repo *NewsletterRepo) Publish(ctx context.Context, id int64, publishedAt time.Time) (bool, error) {
	const query = `
UPDATE newsletters
SET is_published = TRUE,
    published_at = COALESCE(published_at, $1)
WHERE id = $2
  AND is_published = FALSE`
	res, err := repo.db.ExecContext(ctx, query, publishedAt, id)
	if err != nil {
		return false, fmt.Errorf("Publish: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("Publish: RowsAffected: %w", err)
	}
	return affected == 1, nil
}

func (repo *NewsletterRepo) list(ctx context.Context, op, query string, args ...interface{}) ([]*entity.Newsletter, error) {
	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	newsletters := make([]*entity.Newsletter, 0, 50)
	for rows.Next() {
		n, err := scanNewsletter(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		newsletters = append(newsletters, n)
	}
	return newsletters, rows.Err()
}
