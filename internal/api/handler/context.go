package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/scholarfolio/portfolio-api/internal/core/domain"
)

// principal returns the administrator attached by the Auth middleware. A
// missing principal means the route was registered without the middleware.
func principal(c echo.Context) (*domain.Admin, error) {
	admin, ok := domain.PrincipalFrom(c.Request().Context())
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "not authorized, no token")
	}
	return admin, nil
}

func bindJSON(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload").SetInternal(err)
	}
	return nil
}
