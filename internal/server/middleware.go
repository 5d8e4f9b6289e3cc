package server

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/balkashynov/punch/internal/models"
	"github.com/balkashynov/punch/internal/security"
)

type ctxKey int

const userKey ctxKey = iota

// requireAuth resolves the bearer token to a stored user. A missing token is
// a 401; a bad or expired one is a 403.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			errorJSON(w, http.StatusUnauthorized, "access token required")
			return
		}
		user, err := s.auth.Authenticate(r.Context(), token)
		if errors.Is(err, security.ErrInvalidToken) {
			errorJSON(w, http.StatusForbidden, "invalid or expired token")
			return
		}
		if err != nil {
			writeError(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, user)))
	})
}

// requireAdmin checks the stored admin flag, not the one in the token.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := currentUser(r)
		if user == nil || !user.IsAdmin {
			errorJSON(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func currentUser(r *http.Request) *models.User {
	u, _ := r.Context().Value(userKey).(*models.User)
	return u
}

func bearerToken(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(h) < 7 || !strings.EqualFold(h[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(h[7:])
}
