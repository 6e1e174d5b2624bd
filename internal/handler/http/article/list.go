package article

import (
	"net/http"

	"newsroom/internal/handler/http/auth"
	"newsroom/internal/handler/http/pathutil"
	"newsroom/internal/handler/http/respond"
	artUC "newsroom/internal/usecase/article"
)

type ListHandler struct{ Svc *artUC.Service }

// ServeHTTP lists the articles visible to the caller: everything
// published, plus the caller's own work and, for editors, the drafts of
// their publishers. An optional limit parameter trims the newest-first
// result, which is how the landing view asks for its headlines.
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.RequireIdentity(w, r)
	if !ok {
		return
	}

	limit, err := pathutil.ParseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	articles, err := h.Svc.List(r.Context(), id.Actor())
	if err != nil {
		writeError(w, err)
		return
	}
	if limit > 0 && len(articles) > limit {
		articles = articles[:limit]
	}
	respond.JSON(w, http.StatusOK, toDTOs(articles))
}

type PendingHandler struct{ Svc *artUC.Service }

// ServeHTTP lists the approval queue: unapproved articles of the
// publishers the caller edits. Editors only.
func (h PendingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.RequireIdentity(w, r)
	if !ok {
		return
	}

	articles, err := h.Svc.Pending(r.Context(), id.Actor())
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTOs(articles))
}

type FeedHandler struct{ Svc *artUC.Service }

// ServeHTTP returns the reader's personal feed: published articles from
// subscribed publishers and journalists, newest first.
func (h FeedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.RequireIdentity(w, r)
	if !ok {
		return
	}

	limit, err := pathutil.ParseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	articles, err := h.Svc.Feed(r.Context(), id.Actor())
	if err != nil {
		writeError(w, err)
		return
	}
	if limit > 0 && len(articles) > limit {
		articles = articles[:limit]
	}
	respond.JSON(w, http.StatusOK, toDTOs(articles))
}
