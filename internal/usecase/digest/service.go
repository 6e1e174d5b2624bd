// Package digest assembles per-reader digests of recently published
// content and hands them to the notification service. It backs the
// scheduled worker rather than any HTTP endpoint.
package digest

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"newsroom/internal/domain/entity"
	"newsroom/internal/repository"
	"newsroom/internal/usecase/notify"
)

// Service builds and dispatches reader digests.
type Service struct {
	Users         repository.UserRepository
	Subscriptions repository.SubscriptionRepository
	Articles      repository.ArticleRepository
	Newsletters   repository.NewsletterRepository
	Notifier      notify.Service
	MaxConcurrent int
	Logger        *slog.Logger
}

// Summary reports what a digest run did.
type Summary struct {
	Readers     int // readers examined
	Delivered   int // digests dispatched
	Skipped     int // readers with nothing new
	Failed      int // readers whose digest could not be built
	Articles    int // article items across all digests
	Newsletters int // newsletter items across all digests
}

// Run sends every subscribed reader a digest of content published after
// the cutoff. Readers without subscriptions or without new items are
// skipped. Per-reader failures are logged and counted; they do not abort
// the run.
func (s *Service) Run(ctx context.Context, since time.Time) (*Summary, error) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}

	readers, err := s.Users.ListByRole(ctx, entity.RoleReader)
	if err != nil {
		return nil, fmt.Errorf("digest: list readers: %w", err)
	}

	// Published newsletters change rarely relative to the fan-out, so
	// fetch them once and filter per reader.
	published, err := s.Newsletters.ListPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("digest: list newsletters: %w", err)
	}
	newsletters := make([]*entity.Newsletter, 0, len(published))
	for _, n := range published {
		if n.PublishedAt != nil && n.PublishedAt.After(since) {
			newsletters = append(newsletters, n)
		}
	}

	var delivered, skipped, failed, articleItems, newsletterItems atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	limit := s.MaxConcurrent
	if limit < 1 {
		limit = 1
	}
	g.SetLimit(limit)

	for _, reader := range readers {
		g.Go(func() error {
			d, err := s.buildForReader(gctx, reader, newsletters, since)
			if err != nil {
				logger.Warn("digest build failed",
					slog.Int64("reader_id", reader.ID),
					slog.Any("error", err))
				failed.Add(1)
				return nil
			}
			if d == nil {
				skipped.Add(1)
				return nil
			}
			if err := s.Notifier.Dispatch(gctx, d.message); err != nil {
				logger.Warn("digest dispatch failed",
					slog.Int64("reader_id", reader.ID),
					slog.Any("error", err))
				failed.Add(1)
				return nil
			}
			delivered.Add(1)
			articleItems.Add(int64(d.articles))
			newsletterItems.Add(int64(d.newsletters))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("digest: %w", err)
	}

	sum := &Summary{
		Readers:     len(readers),
		Delivered:   int(delivered.Load()),
		Skipped:     int(skipped.Load()),
		Failed:      int(failed.Load()),
		Articles:    int(articleItems.Load()),
		Newsletters: int(newsletterItems.Load()),
	}
	logger.Info("digest run complete",
		slog.Int("readers", sum.Readers),
		slog.Int("delivered", sum.Delivered),
		slog.Int("skipped", sum.Skipped),
		slog.Int("failed", sum.Failed))
	return sum, nil
}

type readerDigest struct {
	message     *notify.Message
	articles    int
	newsletters int
}

// buildForReader returns nil when the reader has nothing new.
func (s *Service) buildForReader(ctx context.Context, reader *entity.User, publishedNewsletters []*entity.Newsletter, since time.Time) (*readerDigest, error) {
	pubSubs, err := s.Subscriptions.ListPublisherSubscriptions(ctx, reader.ID)
	if err != nil {
		return nil, fmt.Errorf("publisher subscriptions: %w", err)
	}
	jSubs, err := s.Subscriptions.ListJournalistSubscriptions(ctx, reader.ID)
	if err != nil {
		return nil, fmt.Errorf("journalist subscriptions: %w", err)
	}
	if len(pubSubs) == 0 && len(jSubs) == 0 {
		return nil, nil
	}

	publisherIDs := make([]int64, 0, len(pubSubs))
	subscribedPub := make(map[int64]bool, len(pubSubs))
	for _, sub := range pubSubs {
		publisherIDs = append(publisherIDs, sub.PublisherID)
		subscribedPub[sub.PublisherID] = true
	}
	journalistIDs := make([]int64, 0, len(jSubs))
	for _, sub := range jSubs {
		journalistIDs = append(journalistIDs, sub.JournalistID)
	}

	articles, err := s.collectArticles(ctx, publisherIDs, journalistIDs, since)
	if err != nil {
		return nil, err
	}

	var newsletters []*entity.Newsletter
	for _, n := range publishedNewsletters {
		if n.PublisherID != nil && subscribedPub[*n.PublisherID] {
			newsletters = append(newsletters, n)
		}
	}

	if len(articles) == 0 && len(newsletters) == 0 {
		return nil, nil
	}

	return &readerDigest{
		message:     composeMessage(reader, articles, newsletters),
		articles:    len(articles),
		newsletters: len(newsletters),
	}, nil
}

// collectArticles merges publisher-sourced and journalist-sourced
// articles, deduplicating by ID. An article matching both a subscribed
// publisher and a subscribed journalist appears once.
func (s *Service) collectArticles(ctx context.Context, publisherIDs, journalistIDs []int64, since time.Time) ([]*entity.Article, error) {
	seen := make(map[int64]bool)
	var out []*entity.Article

	add := func(articles []*entity.Article) {
		for _, a := range articles {
			if a.PublishedAt == nil || !a.PublishedAt.After(since) {
				continue
			}
			if seen[a.ID] {
				continue
			}
			seen[a.ID] = true
			out = append(out, a)
		}
	}

	if len(publisherIDs) > 0 {
		byPublisher, err := s.Articles.ListApprovedByPublishers(ctx, publisherIDs)
		if err != nil {
			return nil, fmt.Errorf("articles by publisher: %w", err)
		}
		add(byPublisher)
	}
	if len(journalistIDs) > 0 {
		byAuthor, err := s.Articles.ListApprovedByAuthors(ctx, journalistIDs)
		if err != nil {
			return nil, fmt.Errorf("articles by author: %w", err)
		}
		add(byAuthor)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].PublishedAt.After(*out[j].PublishedAt)
	})
	return out, nil
}

func composeMessage(reader *entity.User, articles []*entity.Article, newsletters []*entity.Newsletter) *notify.Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s, here is what your subscriptions published recently.\n", reader.Username)

	if len(articles) > 0 {
		b.WriteString("\nArticles:\n")
		for _, a := range articles {
			fmt.Fprintf(&b, "  - %s\n", a.Title)
		}
	}
	if len(newsletters) > 0 {
		b.WriteString("\nNewsletters:\n")
		for _, n := range newsletters {
			fmt.Fprintf(&b, "  - %s\n", n.Title)
		}
	}

	return &notify.Message{
		Kind:       "digest",
		Subject:    fmt.Sprintf("Your digest: %d new publications", len(articles)+len(newsletters)),
		Body:       b.String(),
		Recipients: []string{reader.Email},
	}
}
