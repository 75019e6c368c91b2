// Package server assembles the echo application: middleware, routes, and
// lifecycle.
package server

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/jadranPTI/todo-list-project/internal/auth"
	"github.com/jadranPTI/todo-list-project/internal/config"
	"github.com/jadranPTI/todo-list-project/internal/handler"
	"github.com/jadranPTI/todo-list-project/internal/pagination"
	"github.com/jadranPTI/todo-list-project/internal/store"
)

type Server struct {
	echo *echo.Echo
	cfg  config.Config
}

func New(cfg config.Config, st *store.Store) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.HTTPErrorHandler = errorHandler

	tokens := auth.NewManager(cfg.JWTSecret, cfg.AccessTTL, cfg.RefreshTTL)
	pager := pagination.Config{PageSize: cfg.PageSize, MaxPageSize: cfg.MaxPageSize}
	h := handler.New(st, tokens, pager)
	registerRoutes(e, h, cfg.JWTSecret)

	return &Server{echo: e, cfg: cfg}
}

// Run serves until the context is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() { errc <- s.echo.Start(s.cfg.Addr) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		return s.echo.Shutdown(context.Background())
	}
}

// Handler exposes the router for httptest.
func (s *Server) Handler() http.Handler { return s.echo }

// errorHandler keeps the error body shape uniform for failures that surface
// through echo itself (bad routes, middleware rejections, panics).
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	message := err.Error()
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		}
	}
	_ = c.JSON(code, echo.Map{"error": message})
}
