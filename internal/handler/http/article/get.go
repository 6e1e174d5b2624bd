package article

import (
	"net/http"

	"newsroom/internal/handler/http/auth"
	"newsroom/internal/handler/http/pathutil"
	"newsroom/internal/handler/http/respond"
	artUC "newsroom/internal/usecase/article"
)

type GetHandler struct{ Svc *artUC.Service }

// getResponse carries the article plus the caller's capabilities on it,
// so clients can render edit and approve controls without a second
// request.
type getResponse struct {
	Article    DTO  `json:"article"`
	CanEdit    bool `json:"can_edit"`
	CanDelete  bool `json:"can_delete"`
	CanApprove bool `json:"can_approve"`
}

func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.RequireIdentity(w, r)
	if !ok {
		return
	}

	articleID, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	art, decision, err := h.Svc.Get(r.Context(), id.Actor(), articleID)
	if err != nil {
		writeError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, getResponse{
		Article:    toDTO(art),
		CanEdit:    decision.CanEdit,
		CanDelete:  decision.CanDelete,
		CanApprove: decision.CanApprove,
	})
}
