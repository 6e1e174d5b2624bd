package entity

import "time"

// Article represents a news article.
//
// Publishing rules:
//   - An article without a publisher is independent and auto-approved at creation.
//   - An article under a publisher starts unapproved and must be approved by
//     an editor belonging to that publisher.
type Article struct {
	ID          int64
	Title       string
	Content     string
	AuthorID    int64
	PublisherID *int64
	IsApproved  bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	PublishedAt *time.Time
}

// Independent reports whether the article is self-published (no publisher).
func (a *Article) Independent() bool {
	return a.PublisherID == nil
}

// Publish marks the article approved and stamps PublishedAt.
// The timestamp is set exactly once: re-publishing an already stamped
// article never moves it. There is no reverse transition.
func (a *Article) Publish(now time.Time) {
	a.IsApproved = true
	if a.PublishedAt == nil {
		t := now
		a.PublishedAt = &t
	}
}

// Validate checks the article's required fields.
func (a *Article) Validate() error {
	if a.Title == "" {
		return &ValidationError{Field: "title", Message: "is required"}
	}
	if a.Content == "" {
		return &ValidationError{Field: "content", Message: "is required"}
	}
	if a.AuthorID <= 0 {
		return &ValidationError{Field: "authorID", Message: "must be positive"}
	}
	return nil
}
