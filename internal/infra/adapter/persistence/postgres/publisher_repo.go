package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"newsroom/internal/domain/entity"
	"newsroom/internal/repository"
)

type PublisherRepo struct{ db *sql.DB }

func NewPublisherRepo(db *sql.DB) repository.PublisherRepository {
	return &PublisherRepo{db: db}
}

func (repo *PublisherRepo) Get(ctx context.Context, id int64) (*entity.Publisher, error) {
	const query = `
SELECT id, name, description, created_at
FROM publishers
WHERE id = $1
LIMIT 1`
	var p entity.Publisher
	err := repo.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	if err := repo.loadMembers(ctx, &p); err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &p, nil
}

func (repo *PublisherRepo) List(ctx context.Context) ([]*entity.Publisher, error) {
	const query = `
SELECT id, name, description, created_at
FROM publishers
ORDER BY name ASC`
	return repo.listWithMembers(ctx, "List", query)
}

func (repo *PublisherRepo) ListByEditor(ctx context.Context, editorID int64) ([]*entity.Publisher, error) {
	const query = `
SELECT p.id, p.name, p.description, p.created_at
FROM publishers p
JOIN publisher_editors pe ON pe.publisher_id = p.id
WHERE pe.user_id = $1
ORDER BY p.name ASC`
	return repo.listWithMembers(ctx, "ListByEditor", query, editorID)
}

func (repo *PublisherRepo) Create(ctx context.Context, publisher *entity.Publisher) error {
	const query = `
INSERT INTO publishers (name, description, created_at)
VALUES ($1, $2, $3)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query,
		publisher.Name, publisher.Description, publisher.CreatedAt,
	).Scan(&publisher.ID)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *PublisherRepo) Update(ctx context.Context, publisher *entity.Publisher) error {
	const query = `
UPDATE publishers
SET name = $1, description = $2
WHERE id = $3`
	if _, err := repo.db.ExecContext(ctx, query,
		publisher.Name, publisher.Description, publisher.ID,
	); err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	return nil
}

func (repo *PublisherRepo) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM publishers WHERE id = $1`
	if _, err := repo.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	return nil
}

func (repo *PublisherRepo) AddEditor(ctx context.Context, publisherID, userID int64) error {
	const query = `
INSERT INTO publisher_editors (publisher_id, user_id)
VALUES ($1, $2)
ON CONFLICT DO NOTHING`
	if _, err := repo.db.ExecContext(ctx, query, publisherID, userID); err != nil {
		return fmt.Errorf("AddEditor: %w", err)
	}
	return nil
}

func (repo *PublisherRepo) RemoveEditor(ctx context.Context, publisherID, userID int64) error {
	const query = `DELETE FROM publisher_editors WHERE publisher_id = $1 AND user_id = $2`
	if _, err := repo.db.ExecContext(ctx, query, publisherID, userID); err != nil {
		return fmt.Errorf("RemoveEditor: %w", err)
	}
	return nil
}

func (repo *PublisherRepo) AddJournalist(ctx context.Context, publisherID, userID int64) error {
	const query = `
INSERT INTO publisher_journalists (publisher_id, user_id)
VALUES ($1, $2)
ON CONFLICT DO NOTHING`
	if _, err := repo.db.ExecContext(ctx, query, publisherID, userID); err != nil {
		return fmt.Errorf("AddJournalist: %w", err)
	}
	return nil
}

func (repo *PublisherRepo) RemoveJournalist(ctx context.Context, publisherID, userID int64) error {
	const query = `DELETE FROM publisher_journalists WHERE publisher_id = $1 AND user_id = $2`
	if _, err := repo.db.ExecContext(ctx, query, publisherID, userID); err != nil {
		return fmt.Errorf("RemoveJournalist: %w", err)
	}
	return nil
}

func (repo *PublisherRepo) IsEditor(ctx context.Context, publisherID, userID int64) (bool, error) {
	const query = `
SELECT EXISTS (
    SELECT 1 FROM publisher_editors
    WHERE publisher_id = $1 AND user_id = $2
)`
	var exists bool
	if err := repo.db.QueryRowContext(ctx, query, publisherID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("IsEditor: %w", err)
	}
	return exists, nil
}

// loadMembers fills the editor and journalist ID sets of one publisher.
func (repo *PublisherRepo) loadMembers(ctx context.Context, p *entity.Publisher) error {
	const editorQuery = `
SELECT user_id FROM publisher_editors
WHERE publisher_id = $1
ORDER BY user_id ASC`
	editors, err := repo.memberIDs(ctx, editorQuery, p.ID)
	if err != nil {
		return fmt.Errorf("loadMembers: editors: %w", err)
	}
	p.EditorIDs = editors

	const journalistQuery = `
SELECT user_id FROM publisher_journalists
WHERE publisher_id = $1
ORDER BY user_id ASC`
	journalists, err := repo.memberIDs(ctx, journalistQuery, p.ID)
	if err != nil {
		return fmt.Errorf("loadMembers: journalists: %w", err)
	}
	p.JournalistIDs = journalists
	return nil
}

func (repo *PublisherRepo) memberIDs(ctx context.Context, query string, publisherID int64) ([]int64, error) {
	rows, err := repo.db.QueryContext(ctx, query, publisherID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	ids := make([]int64, 0, 8)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (repo *PublisherRepo) listWithMembers(ctx context.Context, op, query string, args ...interface{}) ([]*entity.Publisher, error) {
	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	publishers := make([]*entity.Publisher, 0, 20)
	for rows.Next() {
		var p entity.Publisher
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		publishers = append(publishers, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, p := range publishers {
		if err := repo.loadMembers(ctx, p); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	return publishers, nil
}
