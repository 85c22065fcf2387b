package fakeserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/fivetwenty-io/lostfound-e2e/internal/constants"
	"github.com/fivetwenty-io/lostfound-e2e/pkg/lostfound"
	"github.com/go-chi/chi/v5/middleware"
)

type contextKey string

const userContextKey contextKey = "user"

func currentUser(r *http.Request) lostfound.User {
	user, _ := r.Context().Value(userContextKey).(lostfound.User)

	return user
}

// authenticate requires a valid bearer token from a user who is not banned.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(constants.HeaderAuthorization)
		if header == "" {
			s.respondError(w, r, http.StatusUnauthorized, "Authorization header required")

			return
		}

		raw, ok := strings.CutPrefix(header, constants.BearerPrefix)
		if !ok || strings.TrimSpace(raw) == "" {
			s.respondError(w, r, http.StatusUnauthorized, "Invalid authorization format")

			return
		}

		userID, err := s.tokens.validate(strings.TrimSpace(raw))
		if err != nil {
			message := "Invalid token"
			if errors.Is(err, ErrExpiredToken) {
				message = "Token expired"
			}

			s.respondError(w, r, http.StatusUnauthorized, message)

			return
		}

		user, err := s.store.userByID(userID)
		if err != nil {
			s.respondError(w, r, http.StatusUnauthorized, "Invalid token")

			return
		}

		if user.IsBanned {
			s.respondError(w, r, http.StatusForbidden, "Account is banned")

			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if currentUser(r).Role != lostfound.RoleAdmin {
			s.respondError(w, r, http.StatusForbidden, "Access denied")

			return
		}

		next.ServeHTTP(w, r)
	})
}

// requestLogger traces every request at debug level.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.Debug("Handled request", map[string]interface{}{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   ww.Status(),
			"duration": time.Since(start).String(),
		})
	})
}
