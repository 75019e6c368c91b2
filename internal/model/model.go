package model

import "time"

// User is an account that can authenticate and own tasks.
type User struct {
	ID           int64  `db:"id" json:"id"`
	Username     string `db:"username" json:"username"`
	PasswordHash string `db:"password_hash" json:"-"`
	IsAdmin      bool   `db:"is_admin" json:"is_admin"`
}

// Task is a single to-do item. Owner is assigned from the authenticated
// caller at creation and never changes afterwards.
type Task struct {
	ID        int64     `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Category  string    `db:"category" json:"category"`
	Completed bool      `db:"completed" json:"completed"`
	OwnerID   int64     `db:"owner_id" json:"-"`
	Owner     string    `db:"owner" json:"owner"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Caller is the authenticated identity attached to a request, as decoded
// from a validated access token.
type Caller struct {
	ID       int64
	Username string
	IsAdmin  bool
}
