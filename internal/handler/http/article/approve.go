package article

import (
	"net/http"

	hhttp "newsroom/internal/handler/http"
	"newsroom/internal/handler/http/auth"
	"newsroom/internal/handler/http/pathutil"
	"newsroom/internal/handler/http/respond"
	artUC "newsroom/internal/usecase/article"
)

type ApproveHandler struct{ Svc *artUC.Service }

// ServeHTTP approves a draft, publishing it and stamping published_at
// exactly once. A second approval attempt returns 409.
func (h ApproveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.RequireIdentity(w, r)
	if !ok {
		return
	}

	articleID, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	art, err := h.Svc.Approve(r.Context(), id.Actor(), articleID)
	if err != nil {
		writeError(w, err)
		return
	}
	hhttp.RecordArticlePublished("approved")
	respond.JSON(w, http.StatusOK, toDTO(art))
}
