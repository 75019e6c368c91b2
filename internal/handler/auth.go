package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/jadranPTI/todo-list-project/internal/auth"
	"github.com/jadranPTI/todo-list-project/internal/store"
)

// Token exchanges username/password credentials for an access+refresh pair.
func (h *Handler) Token(c echo.Context) error {
	var dto CredentialsDTO
	if err := c.Bind(&dto); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if errs := dto.Validate(); errs != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": errs})
	}

	user, err := h.store.Users.GetByUsername(c.Request().Context(), dto.Username)
	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid username or password"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	if !auth.CheckPassword(user.PasswordHash, dto.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid username or password"})
	}

	pair, err := h.tokens.IssuePair(user)
	if err != nil {
		c.Logger().Errorf("issuing token pair: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, pair)
}

// RefreshToken mints a new access token from a valid refresh token.
func (h *Handler) RefreshToken(c echo.Context) error {
	var dto RefreshDTO
	if err := c.Bind(&dto); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if errs := dto.Validate(); errs != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": errs})
	}

	access, err := h.tokens.Refresh(dto.Refresh)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Token is invalid or expired"})
	}
	return c.JSON(http.StatusOK, echo.Map{"access": access})
}
