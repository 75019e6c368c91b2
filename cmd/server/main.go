package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/jadranPTI/todo-list-project/internal/auth"
	"github.com/jadranPTI/todo-list-project/internal/config"
	"github.com/jadranPTI/todo-list-project/internal/server"
	"github.com/jadranPTI/todo-list-project/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	st, err := store.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer st.Close()

	// Seed the initial admin account so a fresh database can issue tokens.
	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		log.Fatalf("admin password: %v", err)
	}
	if err := st.EnsureAdmin(context.Background(), cfg.AdminUsername, hash); err != nil {
		log.Fatalf("seed admin: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, st)
	if err := srv.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server: %v", err)
	}
}
