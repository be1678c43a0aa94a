package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/hrcore/employee-service/internal/core/domain"
	"github.com/hrcore/employee-service/internal/core/ports"
	"github.com/hrcore/employee-service/internal/pkg/metrics"
)

// ContextKeyUsername is the echo.Context key holding the authenticated subject.
const ContextKeyUsername = "username"

// Auth validates the bearer token and injects its subject into the context.
//
// A missing header or a non-bearer scheme is rejected with 403. A bearer
// token that fails verification is rejected with 401 and a Bearer challenge.
func Auth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				metrics.TokenVerificationsTotal.WithLabelValues("missing").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "Not authenticated")
			}

			scheme, token, found := strings.Cut(authHeader, " ")
			token = strings.TrimSpace(token)
			if !found || !strings.EqualFold(scheme, "bearer") || token == "" {
				metrics.TokenVerificationsTotal.WithLabelValues("missing").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "Invalid authentication credentials")
			}

			username, ok := tokens.Verify(token)
			if !ok {
				metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
				c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authentication credentials")
			}
			metrics.TokenVerificationsTotal.WithLabelValues("valid").Inc()

			c.Set(ContextKeyUsername, username)
			c.SetRequest(c.Request().WithContext(domain.WithActor(c.Request().Context(), username)))

			return next(c)
		}
	}
}
