package server

import (
	"net/http"

	"github.com/existflow/ironplan/internal/logger"
	"github.com/labstack/echo/v4"
)

// fieldError is one violated input field in a validation failure
type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// validationFailed returns 400 listing every violated field
func validationFailed(c echo.Context, errs []fieldError) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"errors": errs})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"message": msg})
}

func notFound(c echo.Context, msg string) error {
	return c.JSON(http.StatusNotFound, echo.Map{"message": msg})
}

func forbidden(c echo.Context, reason string) error {
	return c.JSON(http.StatusForbidden, echo.Map{"message": reason})
}

// internalError logs the underlying failure and returns a generic 500
func internalError(c echo.Context, op string, err error) error {
	logger.Error("internal error", logger.F("op", op), logger.F("error", err))
	return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal server error"})
}
