package article

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

// CreateInput represents the input parameters for creating a new article.
type CreateInput struct {
	Title       string
	Content     string
	PublisherID *int64
}

// UpdateInput represents the input parameters for updating an existing article.
// Fields with nil values will not be updated.
type UpdateInput struct {
	ID      int64
	Title   *string
	Content *string
}

// Service provides article management use cases.
//
// Lifecycle: an independent article (no publisher) is approved and stamped
// at creation. An article under a publisher starts as a draft and must be
// approved by an editor belonging to that publisher; approval stamps
// published_at exactly once and has no reverse transition.
type Service struct {
	Repo       repository.ArticleRepository
	Publishers repository.PublisherRepository
	Subs       repository.SubscriptionRepository
	Users      repository.UserRepository
	Notifier   notify.Service
}

// Create creates a new article authored by the actor.
// Only journalists and editors may author articles. An independent article
// is approved immediately and subscribers of the author are notified.
func (s *Service) Create(ctx context.Context, actor access.Actor, in CreateInput) (*entity.Article, error) {
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

	now := time.Now()
	art := &entity.Article{
		Title:       in.Title,
		Content:     in.Content,
		AuthorID:    actor.UserID,
		PublisherID: in.PublisherID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := art.Validate(); err != nil {
		return nil, err
	}
	if art.Independent() {
		art.Publish(now)
	}

	if err := s.Repo.Create(ctx, art); err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}

	if art.IsApproved {
		s.notifyPublished(ctx, art)
	}
	return art, nil
}

// Get retrieves an article together with the actor's capability flags.
// Returns ErrArticleNotFound for a missing article and ErrPermissionDenied
// when the actor may not view it.
func (s *Service) Get(ctx context.Context, actor access.Actor, id int64) (*entity.Article, access.Decision, error) {
	if id <= 0 {
		return nil, access.Decision{}, ErrInvalidArticleID
	}

	art, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, access.Decision{}, fmt.Errorf("get article: %w", err)
	}
	if art == nil {
		return nil, access.Decision{}, ErrArticleNotFound
	}

	rel, err := s.relationFor(ctx, actor, art)
	if err != nil {
		return nil, access.Decision{}, err
	}
	d := access.Decide(actor, access.ItemOfArticle(art), rel)
	if !d.CanView {
		return nil, access.Decision{}, entity.ErrPermissionDenied
	}
	return art, d, nil
}

// List retrieves the articles visible to the actor in listings.
//
// Readers and anonymous callers see approved articles. Journalists
// additionally see their own drafts. Editors additionally see pending
// drafts of publishers they belong to. Overlapping results are
// deduplicated and ordered by creation time, newest first.
func (s *Service) List(ctx context.Context, actor access.Actor) ([]*entity.Article, error) {
	approved, err := s.Repo.ListApproved(ctx)
	if err != nil {
		return nil, fmt.Errorf("list approved articles: %w", err)
	}

	var extra []*entity.Article
	switch actor.Role {
	case entity.RoleJournalist:
		extra, err = s.Repo.ListByAuthor(ctx, actor.UserID)
		if err != nil {
			return nil, fmt.Errorf("list own articles: %w", err)
		}
	case entity.RoleEditor:
		ids, err := s.editorPublisherIDs(ctx, actor.UserID)
		if err != nil {
			return nil, err
		}
		extra, err = s.Repo.ListPendingByPublishers(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("list pending articles: %w", err)
		}
	}

	merged := mergeByID(approved, extra)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})
	return merged, nil
}

// Pending retrieves the unapproved articles awaiting the editor's review,
// scoped to publishers whose editor set contains the actor.
func (s *Service) Pending(ctx context.Context, actor access.Actor) ([]*entity.Article, error) {
	if actor.Role != entity.RoleEditor {
		return nil, entity.ErrPermissionDenied
	}
	ids, err := s.editorPublisherIDs(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	articles, err := s.Repo.ListPendingByPublishers(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list pending articles: %w", err)
	}
	return articles, nil
}

// Update modifies an article's title and content.
// The actor must be the author or an editor of the article's publisher.
func (s *Service) Update(ctx context.Context, actor access.Actor, in UpdateInput) (*entity.Article, error) {
	if in.ID <= 0 {
		return nil, ErrInvalidArticleID
	}

	art, err := s.Repo.Get(ctx, in.ID)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	if art == nil {
		return nil, ErrArticleNotFound
	}

	rel, err := s.relationFor(ctx, actor, art)
	if err != nil {
		return nil, err
	}
	if !access.Allowed(actor, access.ItemOfArticle(art), rel, access.Edit) {
		return nil, entity.ErrPermissionDenied
	}

	if in.Title != nil {
		if *in.Title == "" {
			return nil, &entity.ValidationError{Field: "title", Message: "cannot be empty"}
		}
		art.Title = *in.Title
	}
	if in.Content != nil {
		if *in.Content == "" {
			return nil, &entity.ValidationError{Field: "content", Message: "cannot be empty"}
		}
		art.Content = *in.Content
	}
	art.UpdatedAt = time.Now()

	if err := s.Repo.Update(ctx, art); err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}
	return art, nil
}

// Delete removes an article.
// Journalists may delete only their own articles. Editors may delete
// articles of publishers they belong to; independent articles are out of
// their reach.
func (s *Service) Delete(ctx context.Context, actor access.Actor, id int64) error {
	if id <= 0 {
		return ErrInvalidArticleID
	}

	art, err := s.Repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get article: %w", err)
	}
	if art == nil {
		return ErrArticleNotFound
	}

	rel, err := s.relationFor(ctx, actor, art)
	if err != nil {
		return err
	}
	if !access.Allowed(actor, access.ItemOfArticle(art), rel, access.Delete) {
		return entity.ErrPermissionDenied
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	return nil
}

// Approve approves a draft article under a publisher.
// The actor must belong to the publisher's editor set. The approval is a
// single atomic update, so two concurrent approvals stamp published_at
// only once; the loser receives ErrAlreadyApproved.
func (s *Service) Approve(ctx context.Context, actor access.Actor, id int64) (*entity.Article, error) {
	if id <= 0 {
		return nil, ErrInvalidArticleID
	}

	art, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	if art == nil {
		return nil, ErrArticleNotFound
	}

	rel, err := s.relationFor(ctx, actor, art)
	if err != nil {
		return nil, err
	}
	// Capability is checked against the draft state so an actor who could
	// never approve gets a denial, not a conflict, on a published article.
	draft := access.ItemOfArticle(art)
	draft.Published = false
	if !access.Allowed(actor, draft, rel, access.Approve) {
		return nil, entity.ErrPermissionDenied
	}
	if art.IsApproved {
		return nil, ErrAlreadyApproved
	}

	now := time.Now()
	flipped, err := s.Repo.Approve(ctx, id, now)
	if err != nil {
		return nil, fmt.Errorf("approve article: %w", err)
	}
	if !flipped {
		return nil, ErrAlreadyApproved
	}

	art.Publish(now)
	s.notifyPublished(ctx, art)
	return art, nil
}

// Feed retrieves the approved articles from the reader's subscriptions:
// articles of subscribed publishers plus independent work of subscribed
// journalists, newest publication first. Non-readers get an empty feed.
func (s *Service) Feed(ctx context.Context, actor access.Actor) ([]*entity.Article, error) {
	if actor.Role != entity.RoleReader {
		return []*entity.Article{}, nil
	}

	pubSubs, err := s.Subs.ListPublisherSubscriptions(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("list publisher subscriptions: %w", err)
	}
	jSubs, err := s.Subs.ListJournalistSubscriptions(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("list journalist subscriptions: %w", err)
	}

	pubIDs := make([]int64, 0, len(pubSubs))
	for _, sub := range pubSubs {
		pubIDs = append(pubIDs, sub.PublisherID)
	}
	authorIDs := make([]int64, 0, len(jSubs))
	for _, sub := range jSubs {
		authorIDs = append(authorIDs, sub.JournalistID)
	}

	var fromPublishers, fromAuthors []*entity.Article
	if len(pubIDs) > 0 {
		fromPublishers, err = s.Repo.ListApprovedByPublishers(ctx, pubIDs)
		if err != nil {
			return nil, fmt.Errorf("list articles by publishers: %w", err)
		}
	}
	if len(authorIDs) > 0 {
		fromAuthors, err = s.Repo.ListApprovedByAuthors(ctx, authorIDs)
		if err != nil {
			return nil, fmt.Errorf("list articles by authors: %w", err)
		}
	}

	merged := mergeByID(fromPublishers, fromAuthors)
	sort.SliceStable(merged, func(i, j int) bool {
		ti, tj := merged[i].PublishedAt, merged[j].PublishedAt
		if ti == nil || tj == nil {
			return tj == nil && ti != nil
		}
		return ti.After(*tj)
	})
	return merged, nil
}

// relationFor resolves the actor's relationship to the article against the
// persistence layer: publisher editorship for editors, subscription state
// for readers.
func (s *Service) relationFor(ctx context.Context, actor access.Actor, art *entity.Article) (access.Relation, error) {
	var rel access.Relation
	if actor.Role == entity.RoleEditor && art.PublisherID != nil {
		ok, err := s.Publishers.IsEditor(ctx, *art.PublisherID, actor.UserID)
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
		if art.PublisherID != nil {
			ok, err = s.Subs.IsSubscribedToPublisher(ctx, actor.UserID, *art.PublisherID)
		} else {
			ok, err = s.Subs.IsSubscribedToJournalist(ctx, actor.UserID, art.AuthorID)
		}
		if err != nil {
			return rel, fmt.Errorf("check subscription: %w", err)
		}
		rel.Subscribed = ok
	}
	return rel, nil
}

// notifyPublished dispatches a publication notification to subscribers.
// Failures are logged and swallowed; publication never depends on
// notification delivery.
func (s *Service) notifyPublished(ctx context.Context, art *entity.Article) {
	if s.Notifier == nil {
		return
	}

	var (
		readerIDs []int64
		err       error
	)
	if art.PublisherID != nil {
		readerIDs, err = s.Subs.ListPublisherSubscribers(ctx, *art.PublisherID)
	} else {
		readerIDs, err = s.Subs.ListJournalistSubscribers(ctx, art.AuthorID)
	}
	if err != nil {
		slog.Warn("failed to resolve notification recipients",
			slog.Int64("article_id", art.ID),
			slog.Any("error", err))
		return
	}

	recipients, err := s.recipientEmails(ctx, readerIDs)
	if err != nil {
		slog.Warn("failed to load recipient emails",
			slog.Int64("article_id", art.ID),
			slog.Any("error", err))
		return
	}

	msg := &notify.Message{
		Kind:       "article",
		Subject:    "New article: " + art.Title,
		Body:       art.Content,
		Recipients: recipients,
	}
	if err := s.Notifier.Dispatch(ctx, msg); err != nil {
		slog.Warn("failed to dispatch article notification",
			slog.Int64("article_id", art.ID),
			slog.Any("error", err))
	}
}

func (s *Service) recipientEmails(ctx context.Context, readerIDs []int64) ([]string, error) {
	if len(readerIDs) == 0 {
		return nil, nil
	}
	users, err := s.Users.ListByIDs(ctx, readerIDs)
	if err != nil {
		return nil, fmt.Errorf("list recipients: %w", err)
	}
	emails := make([]string, 0, len(users))
	for _, u := range users {
		if u.Email != "" {
			emails = append(emails, u.Email)
		}
	}
	return emails, nil
}

func (s *Service) editorPublisherIDs(ctx context.Context, editorID int64) ([]int64, error) {
	pubs, err := s.Publishers.ListByEditor(ctx, editorID)
	if err != nil {
		return nil, fmt.Errorf("list editor publishers: %w", err)
	}
	ids := make([]int64, 0, len(pubs))
	for _, p := range pubs {
		ids = append(ids, p.ID)
	}
	return ids, nil
}

// mergeByID concatenates two article slices, dropping duplicates by ID.
func mergeByID(a, b []*entity.Article) []*entity.Article {
	seen := make(map[int64]struct{}, len(a)+len(b))
	merged := make([]*entity.Article, 0, len(a)+len(b))
	for _, list := range [][]*entity.Article{a, b} {
		for _, art := range list {
			if _, ok := seen[art.ID]; ok {
				continue
			}
			seen[art.ID] = struct{}{}
			merged = append(merged, art)
		}
	}
	return merged
}
