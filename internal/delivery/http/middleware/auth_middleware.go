package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"hospital-management-api/internal/domain/policy"
	"hospital-management-api/internal/usecase"
	"hospital-management-api/pkg/response"

	"github.com/sirupsen/logrus"
)

// Authenticator resolves a bearer access token into the calling principal.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*policy.Principal, error)
}

type AuthMiddleware struct {
	auth Authenticator
	log  *logrus.Logger
}

func NewAuthMiddleware(auth Authenticator, log *logrus.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		auth: auth,
		log:  log,
	}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header is required")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		principal, err := m.auth.Authenticate(r.Context(), parts[1])
		if err != nil {
			switch {
			case errors.Is(err, usecase.ErrTokenRevoked):
				response.Unauthorized(w, "Token has been revoked")
			case errors.Is(err, usecase.ErrAccountInactive):
				response.Unauthorized(w, "Account is inactive")
			case errors.Is(err, usecase.ErrInvalidToken), errors.Is(err, usecase.ErrUserNotFound):
				response.Unauthorized(w, "Invalid or expired token")
			default:
				m.log.Errorf("Failed to authenticate request: %+v", err)
				response.InternalServerError(w, "")
			}
			return
		}

		next.ServeHTTP(w, r.WithContext(policy.WithPrincipal(r.Context(), principal)))
	})
}
