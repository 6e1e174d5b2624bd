package article

import (
	"encoding/json"
	"errors"
	"net/http"

	"newsroom/internal/handler/http/auth"
	"newsroom/internal/handler/http/pathutil"
	"newsroom/internal/handler/http/respond"
	artUC "newsroom/internal/usecase/article"
)

type UpdateHandler struct{ Svc *artUC.Service }

// ServeHTTP applies a partial update. Omitted fields keep their values.
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.RequireIdentity(w, r)
	if !ok {
		return
	}

	articleID, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	var req struct {
		Title   *string `json:"title"`
		Content *string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	art, err := h.Svc.Update(r.Context(), id.Actor(), artUC.UpdateInput{
		ID:      articleID,
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(art))
}
