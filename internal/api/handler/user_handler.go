package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ordersuite/order-system/internal/core/domain"
	"github.com/ordersuite/order-system/internal/core/ports"
	"github.com/ordersuite/order-system/internal/query"
)

// UserHandler handles HTTP requests for the identity service.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Register creates a new account and returns it with a fresh credential.
//
// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  Envelope
// @Failure      400   {object}  Envelope
// @Failure      409   {object}  Envelope
// @Router       /register [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return domain.Validation("invalid payload", nil)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.service.Register(c.Request().Context(), ports.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}
	return OK(c, http.StatusCreated, result)
}

// Login authenticates a user and returns a credential plus the sanitized user.
//
// @Summary      Login
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  Envelope
// @Failure      401   {object}  Envelope
// @Router       /login [post]
func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return domain.Validation("invalid payload", nil)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.service.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return OK(c, http.StatusOK, result)
}

// GetProfile returns the caller's own profile.
func (h *UserHandler) GetProfile(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	user, err := h.service.GetUser(c.Request().Context(), claims.UserID)
	if err != nil {
		return err
	}
	return OK(c, http.StatusOK, user)
}

// UpdateProfile updates the caller's name and/or email.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return domain.Validation("invalid payload", nil)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.service.UpdateProfile(c.Request().Context(), claims.UserID, ports.UpdateProfileInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return err
	}
	return OK(c, http.StatusOK, user)
}

// List returns a filtered, sorted, paginated page of users. Admin only
// (enforced by route middleware).
func (h *UserHandler) List(c echo.Context) error {
	params := query.ParseParams(c.QueryParams(), "role", "search")

	result, err := h.service.List(c.Request().Context(), params)
	if err != nil {
		return err
	}
	return OK(c, http.StatusOK, echo.Map{
		"users":      result.Items,
		"pagination": result.Pagination,
	})
}

// GetByID returns one user. Self-or-admin (enforced by route middleware).
func (h *UserHandler) GetByID(c echo.Context) error {
	user, err := h.service.GetUser(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return err
	}
	return OK(c, http.StatusOK, user)
}

// Delete removes a user account. Self-or-admin (enforced by route
// middleware); the service adds the self-delete and sole-admin guards.
func (h *UserHandler) Delete(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("userId"), claims); err != nil {
		return err
	}
	return OK(c, http.StatusOK, echo.Map{"message": "user deleted"})
}
