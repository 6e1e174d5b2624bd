package publisher

import (
	"net/http"

	pubUC "newsroom/internal/usecase/publisher"
)

// Register registers all publisher-related HTTP handlers with the given mux.
func Register(mux *http.ServeMux, svc *pubUC.Service) {
	mux.Handle("GET /publishers", ListHandler{svc})
	mux.Handle("GET /publishers/{id}", GetHandler{svc})

	mux.Handle("POST /publishers", CreateHandler{svc})
	mux.Handle("PUT /publishers/{id}", UpdateHandler{svc})
	mux.Handle("DELETE /publishers/{id}", DeleteHandler{svc})

	mux.Handle("POST /publishers/{id}/editors", MemberHandler{svc, entityKindEditor, memberOpAdd})
	mux.Handle("DELETE /publishers/{id}/editors/{userID}", MemberHandler{svc, entityKindEditor, memberOpRemove})
	mux.Handle("POST /publishers/{id}/journalists", MemberHandler{svc, entityKindJournalist, memberOpAdd})
	mux.Handle("DELETE /publishers/{id}/journalists/{userID}", MemberHandler{svc, entityKindJournalist, memberOpRemove})
}
