package echo

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	app "github.com/campushub/user-gateway/internal/application/user"
)

// UserHandler serves the single-user passthrough endpoints.
type UserHandler struct {
	createUser app.CreateUser
	getUser    app.GetUserByEmail
	listUsers  app.ListUsers
	updateUser app.UpdateUser
	deleteUser app.DeleteUser
}

func NewUserHandler(
	createUser app.CreateUser,
	getUser app.GetUserByEmail,
	listUsers app.ListUsers,
	updateUser app.UpdateUser,
	deleteUser app.DeleteUser,
) *UserHandler {
	return &UserHandler{
		createUser: createUser,
		getUser:    getUser,
		listUsers:  listUsers,
		updateUser: updateUser,
		deleteUser: deleteUser,
	}
}

type createUserRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Name       string `json:"name"`
}

func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Bad Request", "Invalid request body")
	}

	user, err := h.createUser.Execute(c.Request().Context(), app.CreateUserInput{
		Email:      req.Email,
		Password:   req.Password,
		Role:       req.Role,
		GivenName:  req.GivenName,
		FamilyName: req.FamilyName,
		Name:       req.Name,
	})
	if err != nil {
		return writeUseCaseError(c, err)
	}

	return ok(c, http.StatusCreated, user, "User created successfully")
}

func (h *UserHandler) GetByEmail(c echo.Context) error {
	user, err := h.getUser.Execute(c.Request().Context(), app.GetUserByEmailInput{
		Email: c.Param("email"),
	})
	if err != nil {
		return writeUseCaseError(c, err)
	}

	return ok(c, http.StatusOK, user, "")
}

func (h *UserHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	perPage, _ := strconv.Atoi(c.QueryParam("per_page"))

	out, err := h.listUsers.Execute(c.Request().Context(), app.ListUsersInput{
		Page:    page,
		PerPage: perPage,
	})
	if err != nil {
		return writeUseCaseError(c, err)
	}

	return ok(c, http.StatusOK, out, "")
}

type updateUserRequest struct {
	GivenName  *string `json:"given_name"`
	FamilyName *string `json:"family_name"`
	Name       *string `json:"name"`
	Password   *string `json:"password"`
	Role       *string `json:"role"`
}

func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Bad Request", "Invalid request body")
	}

	user, err := h.updateUser.Execute(c.Request().Context(), app.UpdateUserInput{
		Email:      c.Param("email"),
		GivenName:  req.GivenName,
		FamilyName: req.FamilyName,
		Name:       req.Name,
		Password:   req.Password,
		Role:       req.Role,
	})
	if err != nil {
		return writeUseCaseError(c, err)
	}

	return ok(c, http.StatusOK, user, "User updated successfully")
}

func (h *UserHandler) Delete(c echo.Context) error {
	email := c.Param("email")

	if err := h.deleteUser.Execute(c.Request().Context(), app.DeleteUserInput{Email: email}); err != nil {
		return writeUseCaseError(c, err)
	}

	return ok(c, http.StatusOK, map[string]string{"email": email}, "User deleted successfully")
}
