package echo

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authapp "github.com/campushub/user-gateway/internal/application/auth"
)

type AuthHandler struct {
	getToken authapp.GetAccessToken
}

func NewAuthHandler(getToken authapp.GetAccessToken) *AuthHandler {
	return &AuthHandler{getToken: getToken}
}

// Token exchanges the service's API client credentials for an access token
// the caller can present on the protected routes.
func (h *AuthHandler) Token(c echo.Context) error {
	token, err := h.getToken.Execute(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Internal Server Error", "Failed to get access token")
	}

	return ok(c, http.StatusOK, token, "")
}
