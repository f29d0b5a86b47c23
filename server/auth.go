package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/existflow/ironplan/internal/store"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// handleRegister handles user registration
func (s *Server) handleRegister(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	var errs []fieldError
	if req.Name == "" {
		errs = append(errs, fieldError{Field: "name", Message: "Name is required"})
	}
	if !strings.Contains(req.Email, "@") {
		errs = append(errs, fieldError{Field: "email", Message: "Valid email is required"})
	}
	if len(req.Password) < 6 {
		errs = append(errs, fieldError{Field: "password", Message: "Password must be at least 6 characters"})
	}
	if len(errs) > 0 {
		return validationFailed(c, errs)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return internalError(c, "hash password", err)
	}

	user, err := s.store.CreateUser(c.Request().Context(), req.Name, req.Email, string(hash))
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return badRequest(c, "Email already in use")
		}
		return internalError(c, "create user", err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "User registered successfully",
		"user":    user,
	})
}

// handleLogin verifies credentials and issues a bearer token. Wrong
// email and wrong password produce the same response, so callers
// cannot probe which accounts exist.
func (s *Server) handleLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	var errs []fieldError
	if !strings.Contains(req.Email, "@") {
		errs = append(errs, fieldError{Field: "email", Message: "Valid email is required"})
	}
	if req.Password == "" {
		errs = append(errs, fieldError{Field: "password", Message: "Password is required"})
	}
	if len(errs) > 0 {
		return validationFailed(c, errs)
	}

	user, err := s.store.GetUserByEmail(c.Request().Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return badRequest(c, "Invalid credentials")
		}
		return internalError(c, "get user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return badRequest(c, "Invalid credentials")
	}

	signed, err := s.tokens.Sign(user.ID)
	if err != nil {
		return internalError(c, "sign token", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Login successful",
		"token":   signed,
	})
}

// handleMe returns the authenticated user
func (s *Server) handleMe(c echo.Context) error {
	user, err := s.store.GetUser(c.Request().Context(), actorID(c))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound(c, "User not found")
		}
		return internalError(c, "get user", err)
	}
	return c.JSON(http.StatusOK, user)
}
