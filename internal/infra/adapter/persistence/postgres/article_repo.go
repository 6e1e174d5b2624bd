package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"newsroom/internal/domain/entity"
	"newsroom/internal/repository"
)

type ArticleRepo struct{ db *sql.DB }

func NewArticleRepo(db *sql.DB) repository.ArticleRepository {
	return &ArticleRepo{db: db}
}

const articleColumns = `id, title, content, author_id, publisher_id, is_approved, created_at, updated_at, published_at`

func scanArticle(rows *sql.Rows) (*entity.Article, error) {
	var a entity.Article
	if err := rows.Scan(
		&a.ID, &a.Title, &a.Content, &a.AuthorID, &a.PublisherID,
		&a.IsApproved, &a.CreatedAt, &a.UpdatedAt, &a.PublishedAt,
	); err != nil {
		return nil, err
	}
	return &a, nil
}

func (repo *ArticleRepo) Get(ctx context.Context, id int64) (*entity.Article, error) {
	const query = `
SELECT ` + articleColumns + `
FROM articles
WHERE id = $1
LIMIT 1`
	var a entity.Article
	err := repo.db.QueryRowContext(ctx, query, id).Scan(
		&a.ID, &a.Title, &a.Content, &a.AuthorID, &a.PublisherID,
		&a.IsApproved, &a.CreatedAt, &a.UpdatedAt, &a.PublishedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &a, nil
}

func (repo *ArticleRepo) ListApproved(ctx context.Context) ([]*entity.Article, error) {
	const query = `
SELECT ` + articleColumns + `
FROM articles
WHERE is_approved = TRUE
ORDER BY created_at DESC`
	return repo.list(ctx, "ListApproved", query)
}

func (repo *ArticleRepo) ListByAuthor(ctx context.Context, authorID int64) ([]*entity.Article, error) {
	const query = `
SELECT ` + articleColumns + `
FROM articles
WHERE author_id = $1
ORDER BY created_at DESC`
	return repo.list(ctx, "ListByAuthor", query, authorID)
}

func (repo *ArticleRepo) ListPendingByPublishers(ctx context.Context, publisherIDs []int64) ([]*entity.Article, error) {
	if len(publisherIDs) == 0 {
		return []*entity.Article{}, nil
	}
	holders, args := int64Placeholders(1, publisherIDs)
	query := fmt.Sprintf(`
SELECT `+articleColumns+`
FROM articles
WHERE is_approved = FALSE
  AND publisher_id IN (%s)
ORDER BY created_at DESC`, holders)
	return repo.list(ctx, "ListPendingByPublishers", query, args...)
}

func (repo *ArticleRepo) ListApprovedByPublishers(ctx context.Context, publisherIDs []int64) ([]*entity.Article, error) {
	if len(publisherIDs) == 0 {
		return []*entity.Article{}, nil
	}
	holders, args := int64Placeholders(1, publisherIDs)
	query := fmt.Sprintf(`
SELECT `+articleColumns+`
FROM articles
WHERE is_approved = TRUE
  AND publisher_id IN (%s)
ORDER BY published_at DESC`, holders)
	return repo.list(ctx, "ListApprovedByPublishers", query, args...)
}

func (repo *ArticleRepo) ListApprovedByAuthors(ctx context.Context, authorIDs []int64) ([]*entity.Article, error) {
	if len(authorIDs) == 0 {
		return []*entity.Article{}, nil
	}
	holders, args := int64Placeholders(1, authorIDs)
	query := fmt.Sprintf(`
SELECT `+articleColumns+`
FROM articles
WHERE is_approved = TRUE
  AND publisher_id IS NULL
  AND author_id IN (%s)
ORDER BY published_at DESC`, holders)
	return repo.list(ctx, "ListApprovedByAuthors", query, args...)
}

func (repo *ArticleRepo) Create(ctx context.Context, article *entity.Article) error {
	const query = `
INSERT INTO articles (title, content, author_id, publisher_id, is_approved, created_at, updated_at, published_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query,
		article.Title, article.Content, article.AuthorID, article.PublisherID,
		article.IsApproved, article.CreatedAt, article.UpdatedAt, article.PublishedAt,
	).Scan(&article.ID)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *ArticleRepo) Update(ctx context.Context, article *entity.Article) error {
	const query = `
UPDATE articles
SET title = $1, content = $2, updated_at = $3
WHERE id = $4`
	if _, err := repo.db.ExecContext(ctx, query,
		article.Title, article.Content, article.UpdatedAt, article.ID,
	); err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	return nil
}

func (repo *ArticleRepo) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM articles WHERE id = $1`
	if _, err := repo.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	return nil
}

// Approve flips the draft in one statement. The is_approved guard makes
// concurrent approvals race-free: exactly one caller sees an affected row.
func (repo *ArticleRepo) Approve(ctx context.Context, id int64, publishedAt time.Time) (bool, error) {
	const query = `
UPDATE articles
SET is_approved = TRUE,
    updated_at = $1,
    published_at = COALESCE(published_at, $2)
WHERE id = $3
  AND is_approved = FALSE`
	res, err := repo.db.ExecContext(ctx, query, publishedAt, publishedAt, id)
	if err != nil {
		return false, fmt.Errorf("Approve: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("Approve: RowsAffected: %w", err)
	}
	return affected == 1, nil
}

func (repo *ArticleRepo) list(ctx context.Context, op, query string, args ...interface{}) ([]*entity.Article, error) {
	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	articles := make([]*entity.Article, 0, 50)
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}
