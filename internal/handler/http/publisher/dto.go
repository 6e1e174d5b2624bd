// Package publisher provides HTTP handlers for publisher endpoints,
// including editor and journalist membership management.
package publisher

import (
	"time"

	"newsroom/internal/domain/entity"
)

// DTO represents the JSON structure for publisher data transfer.
type DTO struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	EditorIDs     []int64   `json:"editor_ids"`
	JournalistIDs []int64   `json:"journalist_ids"`
	CreatedAt     time.Time `json:"created_at"`
}

func toDTO(p *entity.Publisher) DTO {
	return DTO{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		EditorIDs:     p.EditorIDs,
		JournalistIDs: p.JournalistIDs,
		CreatedAt:     p.CreatedAt,
	}
}

func toDTOs(publishers []*entity.Publisher) []DTO {
	out := make([]DTO, 0, len(publishers))
	for _, p := range publishers {
		out = append(out, toDTO(p))
	}
	return out
}
