package server

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// Pagination defaults
const (
	defaultPage  = 1
	defaultLimit = 10
)

// pageParams holds parsed pagination query parameters
type pageParams struct {
	page  int
	limit int
}

// parsePageParams reads page and limit from the query string.
// Non-numeric or non-positive values fall back to the defaults, so a
// degenerate offset can never reach the store.
func parsePageParams(c echo.Context) pageParams {
	p := pageParams{page: defaultPage, limit: defaultLimit}

	if v := c.QueryParam("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			p.page = n
		}
	}
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			p.limit = n
		}
	}

	return p
}

func (p pageParams) offset() int {
	return (p.page - 1) * p.limit
}

// totalPages is ceil(totalItems / limit), computed from the count
// query rather than the page's item count
func totalPages(totalItems, limit int) int {
	if totalItems == 0 {
		return 0
	}
	return (totalItems + limit - 1) / limit
}
