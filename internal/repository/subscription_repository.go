package repository

import (
	"context"

	"newsroom/internal/domain/entity"
)

// SubscriptionRepository manages the reader subscription registry.
// Both subscription kinds enforce uniqueness on the (reader, target) pair
// at the storage level, so concurrent toggles never produce duplicates.
type SubscriptionRepository interface {
	// SubscribePublisher inserts a (reader, publisher) pair.
	// Returns false if the pair already existed.
	SubscribePublisher(ctx context.Context, readerID, publisherID int64) (bool, error)
	// UnsubscribePublisher deletes the pair. Returns false if no pair existed.
	UnsubscribePublisher(ctx context.Context, readerID, publisherID int64) (bool, error)
	// IsSubscribedToPublisher reports whether the pair exists.
	IsSubscribedToPublisher(ctx context.Context, readerID, publisherID int64) (bool, error)
	// ListPublisherSubscriptions retrieves the reader's publisher
	// subscriptions ordered by subscribed_at DESC.
	ListPublisherSubscriptions(ctx context.Context, readerID int64) ([]*entity.PublisherSubscription, error)
	// ListPublisherSubscribers retrieves the reader IDs subscribed to the publisher.
	ListPublisherSubscribers(ctx context.Context, publisherID int64) ([]int64, error)

	// SubscribeJournalist inserts a (reader, journalist) pair.
	// Returns false if the pair already existed.
	SubscribeJournalist(ctx context.Context, readerID, journalistID int64) (bool, error)
	// UnsubscribeJournalist deletes the pair. Returns false if no pair existed.
	UnsubscribeJournalist(ctx context.Context, readerID, journalistID int64) (bool, error)
	// IsSubscribedToJournalist reports whether the pair exists.
	IsSubscribedToJournalist(ctx context.Context, readerID, journalistID int64) (bool, error)
	// ListJournalistSubscriptions retrieves the reader's journalist
	// subscriptions ordered by subscribed_at DESC.
	ListJournalistSubscriptions(ctx context.Context, readerID int64) ([]*entity.JournalistSubscription, error)
	// ListJournalistSubscribers retrieves the reader IDs subscribed to the journalist.
	ListJournalistSubscribers(ctx context.Context, journalistID int64) ([]int64, error)
}
