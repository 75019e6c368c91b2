// Package handler contains the echo handlers for the API. Each handler
// converts every failure into a structured JSON response; nothing escapes
// to the framework as an unhandled fault.
package handler

import (
	"net/http"

	jwtv3 "github.com/golang-jwt/jwt"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/jadranPTI/todo-list-project/internal/auth"
	"github.com/jadranPTI/todo-list-project/internal/model"
	"github.com/jadranPTI/todo-list-project/internal/pagination"
	"github.com/jadranPTI/todo-list-project/internal/store"
)

// Handler bundles the dependencies shared by all routes.
type Handler struct {
	store  *store.Store
	tokens *auth.Manager
	pager  pagination.Config
}

func New(st *store.Store, tokens *auth.Manager, pager pagination.Config) *Handler {
	return &Handler{store: st, tokens: tokens, pager: pager}
}

// caller rebuilds the request identity from the token the JWT middleware
// validated. Refresh tokens are refused on protected routes.
func caller(c echo.Context) (model.Caller, error) {
	// echo v4.9's JWT middleware parses with the pre-/v4 golang-jwt module,
	// so the token stored under "user" carries that package's types.
	token, ok := c.Get("user").(*jwtv3.Token)
	if !ok {
		return model.Caller{}, echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}
	claimsV3, ok := token.Claims.(jwtv3.MapClaims)
	claims := jwt.MapClaims(claimsV3)
	if !ok || !auth.IsAccess(claims) {
		return model.Caller{}, echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}
	cl, err := auth.CallerFromClaims(claims)
	if err != nil {
		return model.Caller{}, echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}
	return cl, nil
}

// RequireAdmin guards admin-only routes. Unlike the not-found responses on
// task detail routes, this surface is openly forbidden to non-admins.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cl, err := caller(c)
		if err != nil {
			return err
		}
		if !cl.IsAdmin {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "Access forbidden"})
		}
		return next(c)
	}
}
