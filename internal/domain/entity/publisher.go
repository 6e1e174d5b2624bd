package entity

import "time"

// Publisher represents a news publisher.
// A publisher owns a set of editors and a set of journalists; articles and
// newsletters may be published under it.
type Publisher struct {
	ID            int64
	Name          string
	Description   string
	EditorIDs     []int64
	JournalistIDs []int64
	CreatedAt     time.Time
}

// HasEditor reports whether the given user belongs to the publisher's editor set.
func (p *Publisher) HasEditor(userID int64) bool {
	for _, id := range p.EditorIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// HasJournalist reports whether the given user belongs to the publisher's journalist set.
func (p *Publisher) HasJournalist(userID int64) bool {
	for _, id := range p.JournalistIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Validate checks the publisher's required fields.
func (p *Publisher) Validate() error {
	if p.Name == "" {
		return &ValidationError{Field: "name", Message: "is required"}
	}
	return nil
}
