package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"fscportal/auth"
)

type contextKey string

const userKey contextKey = "user"

// requireAuth verifies the bearer token with the auth collaborator and stores
// the resolved user in the request context.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			writeError(w, http.StatusUnauthorized, "Missing or invalid authorization header")
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")

		user, err := s.verifier.Verify(r.Context(), token)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidToken) {
				writeError(w, http.StatusUnauthorized, "Invalid token")
				return
			}
			s.log.WithError(err).Error("auth verification failed")
			writeError(w, http.StatusInternalServerError, "Authentication service error")
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		next(w, r.WithContext(ctx))
	}
}

func userFrom(ctx context.Context) *auth.User {
	u, _ := ctx.Value(userKey).(*auth.User)
	return u
}
