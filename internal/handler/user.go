package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/jadranPTI/todo-list-project/internal/auth"
	"github.com/jadranPTI/todo-list-project/internal/model"
	"github.com/jadranPTI/todo-list-project/internal/store"
)

// User management is admin-only; RequireAdmin sits on the whole route group.

func (h *Handler) ListUsers(c echo.Context) error {
	users, err := h.store.Users.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, users)
}

func (h *Handler) CreateUser(c echo.Context) error {
	var dto CreateUserDTO
	if err := c.Bind(&dto); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if errs := dto.Validate(); errs != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": errs})
	}

	hash, err := auth.HashPassword(dto.Password)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	user := model.User{Username: dto.Username, PasswordHash: hash, IsAdmin: dto.IsAdmin}
	err = h.store.Users.Create(c.Request().Context(), &user)
	if errors.Is(err, store.ErrDuplicate) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Username already exists"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, user)
}

func (h *Handler) UpdateUser(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid ID")
	}
	var dto UpdateUserDTO
	if err := c.Bind(&dto); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if errs := dto.Validate(); errs != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": errs})
	}

	ctx := c.Request().Context()
	user, err := h.store.Users.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	if dto.Username != nil {
		user.Username = *dto.Username
	}
	if dto.Password != nil {
		hash, err := auth.HashPassword(*dto.Password)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		user.PasswordHash = hash
	}
	if dto.IsAdmin != nil {
		user.IsAdmin = *dto.IsAdmin
	}

	err = h.store.Users.Update(ctx, user)
	if errors.Is(err, store.ErrDuplicate) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Username already exists"})
	}
	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, user)
}

func (h *Handler) DeleteUser(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid ID")
	}
	err = h.store.Users.Delete(c.Request().Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}
