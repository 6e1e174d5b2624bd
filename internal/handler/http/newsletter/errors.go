package newsletter

import (
	"errors"
	"net/http"

	"newsroom/internal/domain/entity"
	"newsroom/internal/handler/http/respond"
	nlUC "newsroom/internal/usecase/newsletter"
)

// writeError maps usecase errors onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	var vErr *entity.ValidationError
	code := http.StatusInternalServerError
	switch {
	case errors.As(err, &vErr), errors.Is(err, nlUC.ErrInvalidNewsletterID):
		code = http.StatusBadRequest
	case errors.Is(err, nlUC.ErrNewsletterNotFound):
		code = http.StatusNotFound
	case errors.Is(err, entity.ErrPermissionDenied):
		code = http.StatusForbidden
	case errors.Is(err, nlUC.ErrAlreadyPublished):
		code = http.StatusConflict
	}
	respond.SafeError(w, code, err)
}
