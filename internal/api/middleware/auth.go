package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/scholarfolio/portfolio-api/internal/api/metrics"
	"github.com/scholarfolio/portfolio-api/internal/core/domain"
	"github.com/scholarfolio/portfolio-api/internal/core/ports"
)

const (
	bearerPrefix = "Bearer "

	MsgNoToken       = "not authorized, no token"
	MsgTokenFailed   = "not authorized, token failed"
	MsgAdminNotFound = "admin not found"
)

// Auth guards protected routes. It requires "Authorization: Bearer <token>",
// verifies the token, re-fetches the administrator it names and attaches
// that administrator to the request context.
func Auth(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, bearerPrefix)
			if !ok || token == "" {
				metrics.AuthRejectionsTotal.WithLabelValues("no_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, MsgNoToken)
			}

			admin, err := auth.Authenticate(c.Request().Context(), token)
			switch {
			case errors.Is(err, domain.ErrTokenInvalid):
				metrics.AuthRejectionsTotal.WithLabelValues("token_failed").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, MsgTokenFailed)
			case errors.Is(err, domain.ErrAdminNotFound):
				metrics.AuthRejectionsTotal.WithLabelValues("admin_not_found").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, MsgAdminNotFound)
			case err != nil:
				return err
			}

			ctx := domain.WithPrincipal(c.Request().Context(), admin)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}
