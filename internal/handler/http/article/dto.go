// Package article provides HTTP handlers for article endpoints: authoring,
// listing, the approval queue, approval itself and the subscription feed.
package article

import (
	"time"

	"newsroom/internal/domain/entity"
)

// DTO represents the JSON structure for article data transfer.
type DTO struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	AuthorID    int64      `json:"author_id"`
	PublisherID *int64     `json:"publisher_id,omitempty"`
	IsApproved  bool       `json:"is_approved"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

func toDTO(a *entity.Article) DTO {
	return DTO{
		ID:          a.ID,
		Title:       a.Title,
		Content:     a.Content,
		AuthorID:    a.AuthorID,
		PublisherID: a.PublisherID,
		IsApproved:  a.IsApproved,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
		PublishedAt: a.PublishedAt,
	}
}

func toDTOs(articles []*entity.Article) []DTO {
	out := make([]DTO, 0, len(articles))
	for _, a := range articles {
		out = append(out, toDTO(a))
	}
	return out
}
