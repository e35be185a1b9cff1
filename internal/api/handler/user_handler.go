package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/postmessages/board-api/internal/core/domain"
	"github.com/postmessages/board-api/internal/core/ports"
)

// UserHandler handles HTTP requests for account operations.
type UserHandler struct {
	users ports.UserService
	auth  ports.AuthService
}

func NewUserHandler(users ports.UserService, auth ports.AuthService) *UserHandler {
	return &UserHandler{users: users, auth: auth}
}

// List handles GET /users. Password material never serializes.
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}
	if users == nil {
		users = []domain.User{}
	}
	return c.JSON(http.StatusOK, users)
}

// Get handles GET /users/:mail.
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.users.GetByMail(c.Request().Context(), c.Param("mail"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Register handles POST /users. The endpoint is public; a missing
// password is rejected before any store call.
func (h *UserHandler) Register(c echo.Context) error {
	var req registerUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "password field missing")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.users.Register(c.Request().Context(), req.Mail, req.Username, req.Password, domain.ParseRoles(req.Roles))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, createdResponse{ID: user.ID})
}

// Login handles GET /login. Credentials arrive as HTTP Basic
// (mail+password); success returns a signed bearer token.
func (h *UserHandler) Login(c echo.Context) error {
	mail, password, ok := c.Request().BasicAuth()
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing basic credentials")
	}

	token, err := h.auth.Login(c.Request().Context(), mail, password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{Token: token})
}
