package subscription

import (
	"context"
	"fmt"

	"newsroom/internal/domain/access"
	"newsroom/internal/domain/entity"
	"newsroom/internal/repository"
)

// Overview bundles a reader's current subscriptions of both kinds.
type Overview struct {
	Publishers  []*entity.PublisherSubscription
	Journalists []*entity.JournalistSubscription
}

// Service provides subscription management use cases.
//
// Only readers hold subscriptions. Toggles are idempotent at the storage
// level: the unique (reader, target) pair guarantees that concurrent
// toggles settle on exactly zero or one row.
type Service struct {
	Repo       repository.SubscriptionRepository
	Publishers repository.PublisherRepository
	Users      repository.UserRepository
}

// TogglePublisher flips the actor's subscription to a publisher.
// Returns the resulting state: true if the reader is now subscribed.
func (s *Service) TogglePublisher(ctx context.Context, actor access.Actor, publisherID int64) (bool, error) {
	if err := requireReader(actor); err != nil {
		return false, err
	}
	if publisherID <= 0 {
		return false, ErrInvalidTargetID
	}

	p, err := s.Publishers.Get(ctx, publisherID)
	if err != nil {
		return false, fmt.Errorf("get publisher: %w", err)
	}
	if p == nil {
		return false, ErrTargetNotFound
	}

	// Try removal first. If no row was there, this is a subscribe.
	removed, err := s.Repo.UnsubscribePublisher(ctx, actor.UserID, publisherID)
	if err != nil {
		return false, fmt.Errorf("unsubscribe publisher: %w", err)
	}
	if removed {
		return false, nil
	}
	if _, err := s.Repo.SubscribePublisher(ctx, actor.UserID, publisherID); err != nil {
		return false, fmt.Errorf("subscribe publisher: %w", err)
	}
	return true, nil
}

// ToggleJournalist flips the actor's subscription to a journalist.
// The target must exist and hold the journalist role.
// Returns the resulting state: true if the reader is now subscribed.
func (s *Service) ToggleJournalist(ctx context.Context, actor access.Actor, journalistID int64) (bool, error) {
	if err := requireReader(actor); err != nil {
		return false, err
	}
	if journalistID <= 0 {
		return false, ErrInvalidTargetID
	}

	u, err := s.Users.Get(ctx, journalistID)
	if err != nil {
		return false, fmt.Errorf("get journalist: %w", err)
	}
	if u == nil || u.Role != entity.RoleJournalist {
		return false, ErrTargetNotFound
	}

	removed, err := s.Repo.UnsubscribeJournalist(ctx, actor.UserID, journalistID)
	if err != nil {
		return false, fmt.Errorf("unsubscribe journalist: %w", err)
	}
	if removed {
		return false, nil
	}
	if _, err := s.Repo.SubscribeJournalist(ctx, actor.UserID, journalistID); err != nil {
		return false, fmt.Errorf("subscribe journalist: %w", err)
	}
	return true, nil
}

// List retrieves the actor's subscriptions of both kinds.
func (s *Service) List(ctx context.Context, actor access.Actor) (*Overview, error) {
	if err := requireReader(actor); err != nil {
		return nil, err
	}

	pubs, err := s.Repo.ListPublisherSubscriptions(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("list publisher subscriptions: %w", err)
	}
	journalists, err := s.Repo.ListJournalistSubscriptions(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("list journalist subscriptions: %w", err)
	}
	return &Overview{Publishers: pubs, Journalists: journalists}, nil
}

func requireReader(actor access.Actor) error {
	if !actor.Authenticated() || actor.Role != entity.RoleReader {
		return entity.ErrPermissionDenied
	}
	return nil
}
