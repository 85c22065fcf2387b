// Package fakeserver is an in-memory Lost & Found API used to run the
// end-to-end suites hermetically. It serves the same routes, envelopes and
// status codes as the real service over a real listener.
package fakeserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/fivetwenty-io/lostfound-e2e/internal/constants"
	"github.com/fivetwenty-io/lostfound-e2e/internal/logging"
	"github.com/fivetwenty-io/lostfound-e2e/pkg/lostfound"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

// Server is the reference API.
type Server struct {
	store      *store
	tokens     *tokenIssuer
	validator  *validator.Validate
	logger     logging.Logger
	clock      func() time.Time
	bcryptCost int
	lifetime   time.Duration
	admins     []lostfound.SignupRequest
	router     chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithAdmin seeds an administrator account.
func WithAdmin(email, password string) Option {
	return func(s *Server) {
		s.admins = append(s.admins, lostfound.SignupRequest{
			Email:       email,
			Password:    password,
			FirstName:   "System",
			LastName:    "Administrator",
			PhoneNumber: "0000000000",
			Address:     "Lost & Found Office",
		})
	}
}

// WithLogger sets the request logger.
func WithLogger(logger logging.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTokenLifetime sets how long issued tokens stay valid.
func WithTokenLifetime(lifetime time.Duration) Option {
	return func(s *Server) {
		s.lifetime = lifetime
	}
}

// WithClock overrides the time source for tokens and timestamps.
func WithClock(clock func() time.Time) Option {
	return func(s *Server) {
		s.clock = clock
	}
}

// New creates a Server with its routes registered.
func New(opts ...Option) (*Server, error) {
	srv := &Server{
		store:      newStore(),
		validator:  validator.New(),
		logger:     logging.Nop(),
		clock:      time.Now,
		bcryptCost: bcrypt.MinCost,
		lifetime:   constants.TokenLifetime,
	}

	for _, opt := range opts {
		opt(srv)
	}

	tokens, err := newTokenIssuer(srv.lifetime, srv.clock)
	if err != nil {
		return nil, err
	}

	srv.tokens = tokens

	for _, admin := range srv.admins {
		_, err := srv.register(admin, lostfound.RoleAdmin)
		if err != nil {
			return nil, fmt.Errorf("failed to seed admin %s: %w", admin.Email, err)
		}
	}

	srv.router = srv.routes()

	return srv, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.respondError(w, r, http.StatusNotFound, "Resource not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		s.respondError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/signup", s.signup)
		r.Post("/auth/signin", s.signin)

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)

			r.Route("/lost-items", func(r chi.Router) {
				r.Get("/", s.listLostItems)
				r.Post("/", s.createLostItem)
				r.Get("/{id}", s.getLostItem)
				r.Patch("/{id}", s.updateLostItem)
				r.Delete("/{id}", s.deleteLostItem)
			})

			r.Route("/found-items", func(r chi.Router) {
				r.Get("/", s.listFoundItems)
				r.Post("/", s.createFoundItem)
				r.Get("/{id}", s.getFoundItem)
				r.Patch("/{id}", s.updateFoundItem)
				r.Delete("/{id}", s.deleteFoundItem)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(s.requireAdmin)

				r.Get("/users", s.listUsers)
				r.Patch("/users/{id}", s.updateUserBan)
				r.Patch("/items/{id}", s.updateItemStatus)
				r.Get("/reports", s.reports)
			})
		})
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		s.respondData(w, http.StatusOK, "OK", nil)
	})

	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	return s.Serve(ctx, listener)
}

// Serve serves on listener until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	httpServer := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: constants.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("Reference server listening", map[string]interface{}{"addr": listener.Addr().String()})
		errCh <- httpServer.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()

	err := httpServer.Shutdown(shutdownCtx)
	if err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}

	s.logger.Info("Reference server stopped", nil)

	return nil
}

// register validates and stores a new account.
func (s *Server) register(req lostfound.SignupRequest, role lostfound.Role) (lostfound.User, error) {
	err := s.validator.Struct(req)
	if err != nil {
		return lostfound.User{}, fmt.Errorf("validation error: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return lostfound.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	return s.store.createUser(lostfound.User{
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		Role:        role,
	}, hash, s.clock())
}
