// Package journalist provides HTTP handlers for the journalist
// directory. The directory only ever exposes accounts holding the
// journalist role.
package journalist

import (
	"errors"
	"net/http"

	"newsroom/internal/domain/entity"
	"newsroom/internal/handler/http/auth"
	"newsroom/internal/handler/http/pathutil"
	"newsroom/internal/handler/http/respond"
	"newsroom/internal/usecase/account"
)

// DTO represents the JSON structure for journalist directory entries.
// Email and password material never leave the directory.
type DTO struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

func toDTO(u *entity.User) DTO {
	return DTO{ID: u.ID, Username: u.Username}
}

// Register registers the journalist directory handlers with the given mux.
func Register(mux *http.ServeMux, svc *account.Service) {
	mux.Handle("GET /journalists", ListHandler{svc})
	mux.Handle("GET /journalists/{id}", GetHandler{svc})
}

func writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, account.ErrInvalidUserID):
		code = http.StatusBadRequest
	case errors.Is(err, account.ErrUserNotFound):
		code = http.StatusNotFound
	}
	respond.SafeError(w, code, err)
}

type ListHandler struct{ Svc *account.Service }

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.RequireIdentity(w, r); !ok {
		return
	}

	users, err := h.Svc.ListJournalists(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]DTO, 0, len(users))
	for _, u := range users {
		out = append(out, toDTO(u))
	}
	respond.JSON(w, http.StatusOK, out)
}

type GetHandler struct{ Svc *account.Service }

func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.RequireIdentity(w, r); !ok {
		return
	}

	userID, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	u, err := h.Svc.GetJournalist(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(u))
}
