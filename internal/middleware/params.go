package middleware

import (
	"strconv"

	"github.com/deppfellow/contacts-service/internal/errs"
	"github.com/labstack/echo/v4"
)

// IntParam is a route constraint: the request only matches when path
// parameter name parses as an integer. Anything else is treated like an
// unknown route and answers 404.
func IntParam(name string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, err := strconv.Atoi(c.Param(name)); err != nil {
				return errs.NewNotFoundError("Route not found", false, nil)
			}
			return next(c)
		}
	}
}
