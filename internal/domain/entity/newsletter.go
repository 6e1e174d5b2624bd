package entity

import "time"

// Newsletter represents a newsletter authored by an editor or a journalist.
//
// Editors write newsletters on behalf of a publisher, so an editor-authored
// newsletter must carry one. Journalist newsletters are independent.
type Newsletter struct {
	ID          int64
	Title       string
	Content     string
	AuthorID    int64
	PublisherID *int64
	IsPublished bool
	CreatedAt   time.Time
	PublishedAt *time.Time
}

// NewNewsletter constructs a newsletter for the given author, enforcing the
// publisher rule per role at construction time: editors must carry one,
// journalists must not. A journalist draft under a publisher would be
// unpublishable, since publishing it requires publisher editorship.
func NewNewsletter(author *User, title, content string, publisherID *int64) (*Newsletter, error) {
	if author.Role == RoleEditor && publisherID == nil {
		return nil, &ValidationError{Field: "publisher", Message: "is required for editor newsletters"}
	}
	if author.Role == RoleJournalist && publisherID != nil {
		return nil, &ValidationError{Field: "publisher", Message: "must be empty for journalist newsletters"}
	}
	n := &Newsletter{
		Title:       title,
		Content:     content,
		AuthorID:    author.ID,
		PublisherID: publisherID,
		CreatedAt:   time.Now(),
	}
	if err := n.Validate(); err != nil {
		return nil, err
	}
	return n, nil
}

// Independent reports whether the newsletter has no publisher.
func (n *Newsletter) Independent() bool {
	return n.PublisherID == nil
}

// Publish marks the newsletter published and stamps PublishedAt once.
// Re-saving a published newsletter never changes the timestamp.
func (n *Newsletter) Publish(now time.Time) {
	n.IsPublished = true
	if n.PublishedAt == nil {
		t := now
		n.PublishedAt = &t
	}
}

// Validate checks the newsletter's required fields.
func (n *Newsletter) Validate() error {
	if n.Title == "" {
		return &ValidationError{Field: "title", Message: "is required"}
	}
	if n.Content == "" {
		return &ValidationError{Field: "content", Message: "is required"}
	}
	if n.AuthorID <= 0 {
		return &ValidationError{Field: "authorID", Message: "must be positive"}
	}
	return nil
}
