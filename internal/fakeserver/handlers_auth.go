package fakeserver

import (
	"errors"
	"net/http"

	"github.com/fivetwenty-io/lostfound-e2e/pkg/lostfound"
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

func (s *Server) signup(w http.ResponseWriter, r *http.Request) {
	var req lostfound.SignupRequest

	err := decodeJSON(r, &req)
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, "Invalid request format")

		return
	}

	user, err := s.register(req, lostfound.RoleUser)
	if err != nil {
		var validationErrs validator.ValidationErrors

		switch {
		case errors.As(err, &validationErrs):
			s.respondError(w, r, http.StatusBadRequest, "Validation error: "+validationErrs.Error())
		case errors.Is(err, ErrEmailExists):
			s.respondError(w, r, http.StatusBadRequest, "Email is already in use")
		default:
			s.logger.Error("Failed to register user", map[string]interface{}{"error": err.Error()})
			s.respondError(w, r, http.StatusInternalServerError, "Failed to register user")
		}

		return
	}

	s.respondData(w, http.StatusCreated, "User registered successfully", user)
}

func (s *Server) signin(w http.ResponseWriter, r *http.Request) {
	var req lostfound.SigninRequest

	err := decodeJSON(r, &req)
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, "Invalid request format")

		return
	}

	err = s.validator.Struct(req)
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())

		return
	}

	user, hash, err := s.store.userByEmail(req.Email)
	if err != nil {
		s.respondError(w, r, http.StatusUnauthorized, "Invalid email or password")

		return
	}

	err = bcrypt.CompareHashAndPassword(hash, []byte(req.Password))
	if err != nil {
		s.respondError(w, r, http.StatusUnauthorized, "Invalid email or password")

		return
	}

	if user.IsBanned {
		s.respondError(w, r, http.StatusForbidden, "Account is banned")

		return
	}

	token, err := s.tokens.issue(user)
	if err != nil {
		s.logger.Error("Failed to issue token", map[string]interface{}{"error": err.Error()})
		s.respondError(w, r, http.StatusInternalServerError, "Failed to generate authentication token")

		return
	}

	s.respondData(w, http.StatusOK, "Login successful", lostfound.SigninResult{
		Token: token,
		Type:  "Bearer",
		User:  &user,
	})
}
