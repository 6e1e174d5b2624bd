package article

import (
	"net/http"

	artUC "newsroom/internal/usecase/article"
)

// Register registers all article-related HTTP handlers with the given mux.
// The Authn middleware wraps the whole mux, so every route here can rely
// on an identity being present.
func Register(mux *http.ServeMux, svc *artUC.Service) {
	mux.Handle("GET /articles", ListHandler{svc})
	mux.Handle("GET /articles/pending", PendingHandler{svc})
	mux.Handle("GET /articles/{id}", GetHandler{svc})
	mux.Handle("GET /feed", FeedHandler{svc})

	mux.Handle("POST /articles", CreateHandler{svc})
	mux.Handle("POST /articles/{id}/approve", ApproveHandler{svc})
	mux.Handle("PUT /articles/{id}", UpdateHandler{svc})
	mux.Handle("DELETE /articles/{id}", DeleteHandler{svc})
}
