package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"newsroom/internal/domain/entity"
	"newsroom/internal/handler/http/respond"
	"newsroom/internal/observability/logging"
	"newsroom/internal/usecase/account"
)

// TokenTTL is the lifetime of an issued access token. Overridable from
// the security configuration at startup.
var TokenTTL = 1 * time.Hour

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// IssueToken signs an HS256 JWT for the user. The subject claim carries
// the user ID; username and role ride along so the middleware can build
// an Identity without a database round trip.
func IssueToken(user *entity.User, secret []byte, now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      strconv.FormatInt(user.ID, 10),
		"username": user.Username,
		"role":     string(user.Role),
		"iat":      now.Unix(),
		"exp":      now.Add(TokenTTL).Unix(),
	})
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("IssueToken: %w", err)
	}
	return signed, nil
}

// ParseToken verifies the signed token and reconstructs the identity.
func ParseToken(tokenString string, secret []byte) (*Identity, error) {
	tok, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !tok.Valid {
		return nil, errors.New("invalid token")
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	if exp, ok := claims["exp"].(float64); !ok || int64(exp) < time.Now().Unix() {
		return nil, errors.New("token expired")
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, errors.New("invalid sub claim")
	}
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil || userID <= 0 {
		return nil, errors.New("invalid sub claim")
	}
	username, ok := claims["username"].(string)
	if !ok {
		return nil, errors.New("invalid username claim")
	}
	roleClaim, ok := claims["role"].(string)
	if !ok {
		return nil, errors.New("invalid role claim")
	}
	role, err := entity.ParseRole(roleClaim)
	if err != nil {
		return nil, errors.New("invalid role claim")
	}
	return &Identity{UserID: userID, Username: username, Role: role}, nil
}

// TokenHandler authenticates a username and password and issues a JWT.
// Failed logins get a uniform 401 regardless of whether the username
// exists.
func TokenHandler(accounts *account.Service, secret []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		logger := logging.WithRequestID(r.Context(), slog.Default())

		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			RecordAuthRequest("unknown", "failure")
			RecordAuthDuration("unknown", time.Since(start).Seconds())
			respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
			return
		}

		user, err := accounts.Authenticate(r.Context(), req.Username, req.Password)
		if err != nil {
			logger.Warn("authentication failed",
				slog.String("reason", "invalid_credentials"),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()))
			RecordAuthRequest("unknown", "failure")
			RecordAuthDuration("unknown", time.Since(start).Seconds())
			respond.SafeError(w, http.StatusUnauthorized, errors.New("unauthorized"))
			return
		}

		signed, err := IssueToken(user, secret, time.Now())
		if err != nil {
			logger.Error("token generation failed", slog.Any("error", err))
			RecordAuthRequest(string(user.Role), "failure")
			RecordAuthDuration(string(user.Role), time.Since(start).Seconds())
			respond.SafeError(w, http.StatusInternalServerError, errors.New("token generation failed"))
			return
		}

		logger.Info("authentication successful",
			slog.String("username", user.Username),
			slog.String("role", string(user.Role)),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()))
		RecordAuthRequest(string(user.Role), "success")
		RecordAuthDuration(string(user.Role), time.Since(start).Seconds())

		respond.JSON(w, http.StatusOK, tokenResponse{Token: signed})
	}
}
