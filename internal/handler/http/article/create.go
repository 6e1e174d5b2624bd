package article

import (
	"encoding/json"
	"errors"
	"net/http"

	hhttp "newsroom/internal/handler/http"
	"newsroom/internal/handler/http/auth"
	"newsroom/internal/handler/http/respond"
	artUC "newsroom/internal/usecase/article"
)

type CreateHandler struct{ Svc *artUC.Service }

// ServeHTTP creates an article. Independent articles (no publisher) go
// live immediately; publisher-bound articles start as drafts awaiting
// editor approval.
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.RequireIdentity(w, r)
	if !ok {
		return
	}

	var req struct {
		Title       string `json:"title"`
		Content     string `json:"content"`
		PublisherID *int64 `json:"publisher_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	art, err := h.Svc.Create(r.Context(), id.Actor(), artUC.CreateInput{
		Title:       req.Title,
		Content:     req.Content,
		PublisherID: req.PublisherID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	if art.Independent() {
		hhttp.RecordArticlePublished("independent")
	}
	respond.JSON(w, http.StatusCreated, toDTO(art))
}
