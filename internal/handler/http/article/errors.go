package article

import (
	"errors"
	"net/http"

	"newsroom/internal/domain/entity"
	"newsroom/internal/handler/http/respond"
	artUC "newsroom/internal/usecase/article"
)

// writeError maps usecase errors onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	var vErr *entity.ValidationError
	code := http.StatusInternalServerError
	switch {
	case errors.As(err, &vErr), errors.Is(err, artUC.ErrInvalidArticleID):
		code = http.StatusBadRequest
	case errors.Is(err, artUC.ErrArticleNotFound):
		code = http.StatusNotFound
	case errors.Is(err, entity.ErrPermissionDenied):
		code = http.StatusForbidden
	case errors.Is(err, artUC.ErrAlreadyApproved):
		code = http.StatusConflict
	}
	respond.SafeError(w, code, err)
}
