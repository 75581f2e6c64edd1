package echo

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	app "github.com/campushub/user-gateway/internal/application/user"
	domain "github.com/campushub/user-gateway/internal/domain/user"
)

type apiResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func ok(c echo.Context, status int, data any, message string) error {
	return c.JSON(status, apiResponse{Success: true, Data: data, Message: message})
}

func fail(c echo.Context, status int, errorLabel, message string) error {
	return c.JSON(status, apiResponse{Success: false, Error: errorLabel, Message: message})
}

// writeUseCaseError maps application errors onto the response envelope.
// Directory rejections keep their upstream status code (409 on duplicate
// email, 429 on rate limiting).
func writeUseCaseError(c echo.Context, err error) error {
	var dirErr *domain.DirectoryError

	switch {
	case errors.Is(err, app.ErrValidation):
		return fail(c, http.StatusBadRequest, "Validation failed", validationMessage(err))
	case errors.Is(err, domain.ErrUserNotFound):
		return fail(c, http.StatusNotFound, "Not Found", "User not found")
	case errors.As(err, &dirErr):
		return fail(c, dirErr.StatusCode, http.StatusText(dirErr.StatusCode), dirErr.Message)
	default:
		return fail(c, http.StatusInternalServerError, "Internal Server Error", err.Error())
	}
}

func validationMessage(err error) string {
	msg := err.Error()
	if idx := strings.Index(msg, ": "); idx >= 0 {
		return msg[idx+2:]
	}
	return msg
}
