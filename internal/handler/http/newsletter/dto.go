// Package newsletter provides HTTP handlers for newsletter endpoints.
// Newsletters follow the same lifecycle as articles with one wrinkle:
// editors must attach theirs to a publisher, journalists may publish
// independently.
package newsletter

import (
	"time"

	"newsroom/internal/domain/entity"
)

// DTO represents the JSON structure for newsletter data transfer.
type DTO struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	AuthorID    int64      `json:"author_id"`
	PublisherID *int64     `json:"publisher_id,omitempty"`
	IsPublished bool       `json:"is_published"`
	CreatedAt   time.Time  `json:"created_at"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

func toDTO(n *entity.Newsletter) DTO {
	return DTO{
		ID:          n.ID,
		Title:       n.Title,
		Content:     n.Content,
		AuthorID:    n.AuthorID,
		PublisherID: n.PublisherID,
		IsPublished: n.IsPublished,
		CreatedAt:   n.CreatedAt,
		PublishedAt: n.PublishedAt,
	}
}

func toDTOs(newsletters []*entity.Newsletter) []DTO {
	out := make([]DTO, 0, len(newsletters))
	for _, n := range newsletters {
		out = append(out, toDTO(n))
	}
	return out
}
