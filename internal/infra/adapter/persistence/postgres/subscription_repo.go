package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"newsroom/internal/domain/entity"
	"newsroom/internal/repository"
)

type SubscriptionRepo struct{ db *sql.DB }

func NewSubscriptionRepo(db *sql.DB) repository.SubscriptionRepository {
	return &SubscriptionRepo{db: db}
}

// Insert and delete report affected rows so toggles are race-free: the
// unique pair constraint plus ON CONFLICT DO NOTHING means two concurrent
// subscribes store exactly one row and exactly one caller sees true.

func (repo *SubscriptionRepo) SubscribePublisher(ctx context.Context, readerID, publisherID int64) (bool, error) {
	const query = `
INSERT INTO publisher_subscriptions (reader_id, publisher_id)
VALUES ($1, $2)
ON CONFLICT DO NOTHING`
	return repo.exec(ctx, "SubscribePublisher", query, readerID, publisherID)
}

func (repo *SubscriptionRepo) UnsubscribePublisher(ctx context.Context, readerID, publisherID int64) (bool, error) {
	const query = `
DELETE FROM publisher_subscriptions
WHERE reader_id = $1 AND publisher_id = $2`
	return repo.exec(ctx, "UnsubscribePublisher", query, readerID, publisherID)
}

func (repo *SubscriptionRepo) IsSubscribedToPublisher(ctx context.Context, readerID, publisherID int64) (bool, error) {
	const query = `
SELECT EXISTS (
    SELECT 1 FROM publisher_subscriptions
    WHERE reader_id = $1 AND publisher_id = $2
)`
	var exists bool
	if err := repo.db.QueryRowContext(ctx, query, readerID, publisherID).Scan(&exists); err != nil {
		return false, fmt.Errorf("IsSubscribedToPublisher: %w", err)
	}
	return exists, nil
}

func (repo *SubscriptionRepo) ListPublisherSubscriptions(ctx context.Context, readerID int64) ([]*entity.PublisherSubscription, error) {
	const query = `
SELECT id, reader_id, publisher_id, subscribed_at
FROM publisher_subscriptions
WHERE reader_id = $1
ORDER BY subscribed_at DESC`
	rows, err := repo.db.QueryContext(ctx, query, readerID)
	if err != nil {
		return nil, fmt.Errorf("ListPublisherSubscriptions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	subs := make([]*entity.PublisherSubscription, 0, 20)
	for rows.Next() {
		var s entity.PublisherSubscription
		if err := rows.Scan(&s.ID, &s.ReaderID, &s.PublisherID, &s.SubscribedAt); err != nil {
			return nil, fmt.Errorf("ListPublisherSubscriptions: %w", err)
		}
		subs = append(subs, &s)
	}
	return subs, rows.Err()
}

func (repo *SubscriptionRepo) ListPublisherSubscribers(ctx context.Context, publisherID int64) ([]int64, error) {
	const query = `
SELECT reader_id
FROM publisher_subscriptions
WHERE publisher_id = $1
ORDER BY reader_id ASC`
	return repo.readerIDs(ctx, "ListPublisherSubscribers", query, publisherID)
}

func (repo *SubscriptionRepo) SubscribeJournalist(ctx context.Context, readerID, journalistID int64) (bool, error) {
	const query = `
INSERT INTO journalist_subscriptions (reader_id, journalist_id)
VALUES ($1, $2)
ON CONFLICT DO NOTHING`
	return repo.exec(ctx, "SubscribeJournalist", query, readerID, journalistID)
}

func (repo *SubscriptionRepo) UnsubscribeJournalist(ctx context.Context, readerID, journalistID int64) (bool, error) {
	const query = `
DELETE FROM journalist_subscriptions
WHERE reader_id = $1 AND journalist_id = $2`
	return repo.exec(ctx, "UnsubscribeJournalist", query, readerID, journalistID)
}

func (repo *SubscriptionRepo) IsSubscribedToJournalist(ctx context.Context, readerID, journalistID int64) (bool, error) {
	const query = `
SELECT EXISTS (
    SELECT 1 FROM journalist_subscriptions
    WHERE reader_id = $1 AND journalist_id = $2
)`
	var exists bool
	if err := repo.db.QueryRowContext(ctx, query, readerID, journalistID).Scan(&exists); err != nil {
		return false, fmt.Errorf("IsSubscribedToJournalist: %w", err)
	}
	return exists, nil
}

func (repo *SubscriptionRepo) ListJournalistSubscriptions(ctx context.Context, readerID int64) ([]*entity.JournalistSubscription, error) {
	const query = `
SELECT id, reader_id, journalist_id, subscribed_at
FROM journalist_subscriptions
WHERE reader_id = $1
ORDER BY subscribed_at DESC`
	rows, err := repo.db.QueryContext(ctx, query, readerID)
	if err != nil {
		return nil, fmt.Errorf("ListJournalistSubscriptions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	subs := make([]*entity.JournalistSubscription, 0, 20)
	for rows.Next() {
		var s entity.JournalistSubscription
		if err := rows.Scan(&s.ID, &s.ReaderID, &s.JournalistID, &s.SubscribedAt); err != nil {
			return nil, fmt.Errorf("ListJournalistSubscriptions: %w", err)
		}
		subs = append(subs, &s)
	}
	return subs, rows.Err()
}

func (repo *SubscriptionRepo) ListJournalistSubscribers(ctx context.Context, journalistID int64) ([]int64, error) {
	const query = `
SELECT reader_id
FROM journalist_subscriptions
WHERE journalist_id = $1
ORDER BY reader_id ASC`
	return repo.readerIDs(ctx, "ListJournalistSubscribers", query, journalistID)
}

func (repo *SubscriptionRepo) exec(ctx context.Context, op, query string, args ...interface{}) (bool, error) {
	res, err := repo.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: RowsAffected: %w", op, err)
	}
	return affected == 1, nil
}

func (repo *SubscriptionRepo) readerIDs(ctx context.Context, op, query string, arg int64) ([]int64, error) {
	rows, err := repo.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	ids := make([]int64, 0, 50)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
