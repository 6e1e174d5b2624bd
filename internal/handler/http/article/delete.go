package article

import (
	"net/http"

	"newsroom/internal/handler/http/auth"
	"newsroom/internal/handler/http/pathutil"
	"newsroom/internal/handler/http/respond"
	artUC "newsroom/internal/usecase/article"
)

type DeleteHandler struct{ Svc *artUC.Service }

func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.RequireIdentity(w, r)
	if !ok {
		return
	}

	articleID, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.Svc.Delete(r.Context(), id.Actor(), articleID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
