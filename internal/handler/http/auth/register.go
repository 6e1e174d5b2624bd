package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"newsroom/internal/domain/entity"
	"newsroom/internal/handler/http/respond"
	"newsroom/internal/observability/logging"
	"newsroom/internal/usecase/account"
)

type registerRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
	Role            string `json:"role"`
}

type registerResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// RegisterHandler creates a new account. The role comes from the request
// and is fixed for the account's lifetime.
func RegisterHandler(accounts *account.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := logging.WithRequestID(r.Context(), slog.Default())

		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
			return
		}

		user, err := accounts.Register(r.Context(), account.RegisterInput{
			Username:        req.Username,
			Email:           req.Email,
			Password:        req.Password,
			PasswordConfirm: req.PasswordConfirm,
			Role:            req.Role,
		})
		if err != nil {
			var vErr *entity.ValidationError
			switch {
			case errors.As(err, &vErr):
				respond.SafeError(w, http.StatusBadRequest, err)
			case errors.Is(err, entity.ErrDuplicateUsername):
				respond.SafeError(w, http.StatusConflict, err)
			default:
				respond.SafeError(w, http.StatusInternalServerError, err)
			}
			return
		}

		logger.Info("account registered",
			slog.Int64("user_id", user.ID),
			slog.String("role", string(user.Role)))

		respond.JSON(w, http.StatusCreated, registerResponse{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			Role:     string(user.Role),
		})
	}
}
