package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/coursify/coursify/internal/tokens"
)

// Gate authenticates requests by the bearer access token. An expired token
// gets its own message so clients know to attempt a refresh instead of
// re-authenticating.
type Gate struct {
	Tokens *tokens.Service
}

func NewGate(t *tokens.Service) *Gate {
	return &Gate{Tokens: t}
}

func (g *Gate) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized: No token provided")
		}

		claims, err := g.Tokens.VerifyAccess(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			if errors.Is(err, tokens.ErrExpired) {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized: Access token has expired")
			}
			return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized: Invalid token")
		}

		id, err := uuid.Parse(claims.Subject)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized: Invalid token")
		}

		c.Set("userID", id)
		c.Set("role", claims.Role)
		return next(c)
	}
}
