package echo

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// TokenVerifier checks a bearer token's signature and claims.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) error
}

// RequireAuth rejects requests that do not carry a valid bearer token.
func RequireAuth(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				return fail(c, http.StatusUnauthorized, "Unauthorized", "Invalid or missing authentication token")
			}

			if err := verifier.Verify(c.Request().Context(), token); err != nil {
				return fail(c, http.StatusUnauthorized, "Unauthorized", "Invalid or missing authentication token")
			}

			return next(c)
		}
	}
}
