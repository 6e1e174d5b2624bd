package publisher

import (
	"errors"
	"net/http"

	"newsroom/internal/domain/entity"
	"newsroom/internal/handler/http/respond"
	pubUC "newsroom/internal/usecase/publisher"
)

// writeError maps usecase errors onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	var vErr *entity.ValidationError
	code := http.StatusInternalServerError
	switch {
	case errors.As(err, &vErr), errors.Is(err, pubUC.ErrInvalidPublisherID):
		code = http.StatusBadRequest
	case errors.Is(err, pubUC.ErrPublisherNotFound):
		code = http.StatusNotFound
	case errors.Is(err, entity.ErrPermissionDenied):
		code = http.StatusForbidden
	}
	respond.SafeError(w, code, err)
}
