package server

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// authMiddleware verifies the bearer token and puts the authenticated
// user id on the request context
func (s *Server) authMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		auth := c.Request().Header.Get("Authorization")
		if auth == "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"message": "missing token"})
		}

		raw := strings.TrimPrefix(auth, "Bearer ")
		if raw == auth {
			return c.JSON(http.StatusUnauthorized, map[string]string{"message": "invalid authorization format"})
		}

		userID, err := s.tokens.Verify(raw)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"message": "invalid or expired token"})
		}

		c.Set("user_id", userID)
		return next(c)
	}
}

// actorID returns the authenticated user id set by authMiddleware
func actorID(c echo.Context) string {
	id, _ := c.Get("user_id").(string)
	return id
}
