package newsletter

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"newsroom/internal/domain/access"
	"newsroom/internal/domain/entity"
	"newsroom/internal/repository"
	"newsroom/internal/usecase/notify"
)

// CreateInput represents the input parameters for creating a newsletter.
type CreateInput struct {
	Title       string
	Content     string
	PublisherID *int64
}

// UpdateInput represents the input parameters for updating a newsletter.
// Fields with nil values will not be updated.
type UpdateInput struct {
	ID      int64
	Title   *string
	Content *string
}

// Service provides newsletter management use cases.
type Service struct {
	Repo       repository.NewsletterRepository
	Publishers repository.PublisherRepository
	Subs       repository.SubscriptionRepository
	Users      repository.UserRepository
	Notifier   notify.Service
}

// Create creates a newsletter authored by the actor.
// Editors must attach a publisher; journalists write independently and
// their newsletters are published immediately.
func (s *Service) Create(ctx context.Context, actor access.Actor, in CreateInput) (*entity.Newsletter, error) {
	if actor.Role != entity.RoleJournalist && actor.Role != entity.RoleEditor {
		return nil, entity.ErrPermissionDenied
	}

	if in.PublisherID != nil {
		p, err := s.Publishers.Get(ctx, *in.PublisherID)
		if err != nil {
			return nil, fmt.Errorf("get publisher: %w", err)
		}
		if p == nil {
			return nil, &entity.ValidationError{Field: "publisherID", Message: "publisher does not exist"}
		}
	}

	author := &entity.User{ID: actor.UserID, Role: actor.Role}
	nl, err := entity.NewNewsletter(author, in.Title, in.Content, in.PublisherID)
	if err != nil {
		return nil, err
	}
	if nl.Independent() {
		nl.Publish(nl.CreatedAt)
	}

	if err := s.Repo.Create(ctx, nl); err != nil {
		return nil, fmt.Errorf("create newsletter: %w", err)
	}

	if nl.IsPublished {
		s.notifyPublished(ctx, nl)
	}
	return nl, nil
}

// Get retrieves a newsletter together with the actor's capability flags.
func (s *Service) Get(ctx context.Context, actor access.Actor, id int64) (*entity.Newsletter, access.Decision, error) {
	if id <= 0 {
		return nil, access.Decision{}, ErrInvalidNewsletterID
	}

	nl, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, access.Decision{}, fmt.Errorf("get newsletter: %w", err)
	}
	if nl == nil {
		return nil, access.Decision{}, ErrNewsletterNotFound
	}

	rel, err := s.relationFor(ctx, actor, nl)
	if err != nil {
		return nil, access.Decision{}, err
	}
	d := access.Decide(actor, access.ItemOfNewsletter(nl), rel)
	if !d.CanView {
		return nil, access.Decision{}, entity.ErrPermissionDenied
	}
	return nl, d, nil
}

// List retrieves the newsletters visible to the actor: published ones,
// plus the journalist's own drafts, plus drafts of the editor's
// publishers. Duplicates are removed, newest creation first.
func (s *Service) List(ctx context.Context, actor access.Actor) ([]*entity.Newsletter, error) {
	published, err := s.Repo.ListPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("list published newsletters: %w", err)
	}

	var extra []*entity.Newsletter
	switch actor.Role {
	case entity.RoleJournalist:
		extra, err = s.Repo.ListByAuthor(ctx, actor.UserID)
		if err != nil {
			return nil, fmt.Errorf("list own newsletters: %w", err)
		}
	case entity.RoleEditor:
		pubs, err := s.Publishers.ListByEditor(ctx, actor.UserID)
		if err != nil {
			return nil, fmt.Errorf("list editor publishers: %w", err)
		}
		ids := make([]int64, 0, len(pubs))
		for _, p := range pubs {
			ids = append(ids, p.ID)
		}
		if len(ids) > 0 {
			extra, err = s.Repo.ListDraftsByPublishers(ctx, ids)
			if err != nil {
				return nil, fmt.Errorf("list draft newsletters: %w", err)
			}
		}
	}

	merged := mergeByID(published, extra)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})
	return merged, nil
}

// Update modifies a newsletter's title and content.
func (s *Service) Update(ctx context.Context, actor access.Actor, in UpdateInput) (*entity.Newsletter, error) {
	if in.ID <= 0 {
		return nil, ErrInvalidNewsletterID
	}

	nl, err := s.Repo.Get(ctx, in.ID)
	if err != nil {
		return nil, fmt.Errorf("get newsletter: %w", err)
	}
	if nl == nil {
		return nil, ErrNewsletterNotFound
	}

	rel, err := s.relationFor(ctx, actor, nl)
	if err != nil {
		return nil, err
	}
	if !access.Allowed(actor, access.ItemOfNewsletter(nl), rel, access.Edit) {
		return nil, entity.ErrPermissionDenied
	}

	if in.Title != nil {
		if *in.Title == "" {
			return nil, &entity.ValidationError{Field: "title", Message: "cannot be empty"}
		}
		nl.Title = *in.Title
	}
	if in.Content != nil {
		if *in.Content == "" {
			return nil, &entity.ValidationError{Field: "content", Message: "cannot be empty"}
		}
		nl.Content = *in.Content
	}

	if err := s.Repo.Update(ctx, nl); err != nil {
		return nil, fmt.Errorf("update newsletter: %w", err)
	}
	return nl, nil
}

// Delete removes a newsletter, under the same rules as article deletion.
func (s *Service) Delete(ctx context.Context, actor access.Actor, id int64) error {
	if id <= 0 {
		return ErrInvalidNewsletterID
	}

	nl, err := s.Repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get newsletter: %w", err)
	}
	if nl == nil {
		return ErrNewsletterNotFound
	}

	rel, err := s.relationFor(ctx, actor, nl)
	if err != nil {
		return err
	}
	if !access.Allowed(actor, access.ItemOfNewsletter(nl), rel, access.Delete) {
		return entity.ErrPermissionDenied
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete newsletter: %w", err)
	}
	return nil
}

// Publish publishes a draft newsletter under a publisher.
// The actor must belong to the publisher's editor set. The transition is
// a single atomic update; the published_at stamp never moves afterwards.
func (s *Service) Publish(ctx context.Context, actor access.Actor, id int64) (*entity.Newsletter, error) {
	if id <= 0 {
		return nil, ErrInvalidNewsletterID
	}

	nl, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get newsletter: %w", err)
	}
	if nl == nil {
		return nil, ErrNewsletterNotFound
	}

	rel, err := s.relationFor(ctx, actor, nl)
	if err != nil {
		return nil, err
	}
	// Capability is checked against the draft state so an actor who could
	// never publish gets a denial, not a conflict, on a published newsletter.
	draft := access.ItemOfNewsletter(nl)
	draft.Published = false
	if !access.Allowed(actor, draft, rel, access.Approve) {
		return nil, entity.ErrPermissionDenied
	}
	if nl.IsPublished {
		return nil, ErrAlreadyPublished
	}

	now := time.Now()
	flipped, err := s.Repo.Publish(ctx, id, now)
	if err != nil {
		return nil, fmt.Errorf("publish newsletter: %w", err)
	}
	if !flipped {
		return nil, ErrAlreadyPublished
	}

	nl.Publish(now)
	s.notifyPublished(ctx, nl)
	return nl, nil
}

func (s *Service) relationFor(ctx context.Context, actor access.Actor, nl *entity.Newsletter) (access.Relation, error) {
	var rel access.Relation
	if actor.Role == entity.RoleEditor && nl.PublisherID != nil {
		ok, err := s.Publishers.IsEditor(ctx, *nl.PublisherID, actor.UserID)
		if err != nil {
			return rel, fmt.Errorf("check editorship: %w", err)
		}
		rel.EditorOf = ok
	}
	if actor.Role == entity.RoleReader {
		var (
			ok  bool
			err error
		)
		if nl.PublisherID != nil {
			ok, err = s.Subs.IsSubscribedToPublisher(ctx, actor.UserID, *nl.PublisherID)
		} else {
			ok, err = s.Subs.IsSubscribedToJournalist(ctx, actor.UserID, nl.AuthorID)
		}
		if err != nil {
			return rel, fmt.Errorf("check subscription: %w", err)
		}
		rel.Subscribed = ok
	}
	return rel, nil
}

func (s *Service) notifyPublished(ctx context.Context, nl *entity.Newsletter) {
	if s.Notifier == nil {
		return
	}

	var (
		readerIDs []int64
		err       error
	)
	if nl.PublisherID != nil {
		readerIDs, err = s.Subs.ListPublisherSubscribers(ctx, *nl.PublisherID)
	} else {
		readerIDs, err = s.Subs.ListJournalistSubscribers(ctx, nl.AuthorID)
	}
	if err != nil {
		slog.Warn("failed to resolve notification recipients",
			slog.Int64("newsletter_id", nl.ID),
			slog.Any("error", err))
		return
	}

	var recipients []string
	if len(readerIDs) > 0 {
		users, err := s.Users.ListByIDs(ctx, readerIDs)
		if err != nil {
			slog.Warn("failed to load recipient emails",
				slog.Int64("newsletter_id", nl.ID),
				slog.Any("error", err))
			return
		}
		for _, u := range users {
			if u.Email != "" {
				recipients = append(recipients, u.Email)
			}
		}
	}

	msg := &notify.Message{
		Kind:       "newsletter",
		Subject:    "New newsletter: " + nl.Title,
		Body:       nl.Content,
		Recipients: recipients,
	}
	if err := s.Notifier.Dispatch(ctx, msg); err != nil {
		slog.Warn("failed to dispatch newsletter notification",
			slog.Int64("newsletter_id", nl.ID),
			slog.Any("error", err))
	}
}

func mergeByID(a, b []*entity.Newsletter) []*entity.Newsletter {
	seen := make(map[int64]struct{}, len(a)+len(b))
	merged := make([]*entity.Newsletter, 0, len(a)+len(b))
	for _, list := range [][]*entity.Newsletter{a, b} {
		for _, nl := range list {
			if _, ok := seen[nl.ID]; ok {
				continue
			}
			seen[nl.ID] = struct{}{}
			merged = append(merged, nl)
		}
	}
	return merged
}
