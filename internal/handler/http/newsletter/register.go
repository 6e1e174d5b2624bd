package newsletter

import (
	"net/http"

	nlUC "newsroom/internal/usecase/newsletter"
)

// Register registers all newsletter-related HTTP handlers with the given mux.
func Register(mux *http.ServeMux, svc *nlUC.Service) {
	mux.Handle("GET /newsletters", ListHandler{svc})
	mux.Handle("GET /newsletters/{id}", GetHandler{svc})

	mux.Handle("POST /newsletters", CreateHandler{svc})
	mux.Handle("POST /newsletters/{id}/publish", PublishHandler{svc})
	mux.Handle("PUT /newsletters/{id}", UpdateHandler{svc})
	mux.Handle("DELETE /newsletters/{id}", DeleteHandler{svc})
}
