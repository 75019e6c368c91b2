// Package store is the persistence layer. All authorization scoping is part
// of the queries themselves: a restricted caller's rows are narrowed in SQL,
// never filtered after the fact.
package store

import (
	"context"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/jadranPTI/todo-list-project/internal/model"
)

// ErrNotFound is returned when a row is absent or outside the caller's
// scope. Callers cannot tell the two cases apart.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when a unique constraint rejects a write.
var ErrDuplicate = errors.New("already exists")

// Store bundles the repositories over one connection pool.
type Store struct {
	db    *sqlx.DB
	Users *UserStore
	Tasks *TaskStore
}

var schemas = map[string][]string{
	"mysql": {
		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			username VARCHAR(255) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			is_admin BOOLEAN NOT NULL DEFAULT FALSE
		)`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			category VARCHAR(255) NOT NULL DEFAULT '',
			completed BOOLEAN NOT NULL DEFAULT FALSE,
			owner_id BIGINT NOT NULL,
			created_at DATETIME NOT NULL,
			FOREIGN KEY (owner_id) REFERENCES users(id)
		)`,
	},
	"sqlite3": {
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			is_admin BOOLEAN NOT NULL DEFAULT FALSE
		)`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			completed BOOLEAN NOT NULL DEFAULT FALSE,
			owner_id INTEGER NOT NULL,
			created_at DATETIME NOT NULL,
			FOREIGN KEY (owner_id) REFERENCES users(id)
		)`,
	},
}

// Open connects, pings, and creates the schema if it is missing. The driver
// is mysql in production; tests run against an in-memory sqlite3 database.
func Open(driver, dsn string) (*Store, error) {
	stmts, ok := schemas[driver]
	if !ok {
		return nil, errors.Errorf("unsupported database driver %q", driver)
	}
	if driver == "mysql" {
		var err error
		if dsn, err = mysqlFoundRowsDSN(dsn); err != nil {
			return nil, err
		}
	}
	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, errors.Wrap(err, "connect database")
	}
	if driver == "sqlite3" {
		// An in-memory SQLite database exists per connection; the pool must
		// not open a second one.
		db.SetMaxOpenConns(1)
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, errors.Wrap(err, "create schema")
		}
	}
	return &Store{
		db:    db,
		Users: &UserStore{db: db},
		Tasks: &TaskStore{db: db},
	}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// EnsureAdmin seeds the initial administrator account so a fresh database
// has a way to obtain a first token. An existing account with the same
// username is left untouched.
func (s *Store) EnsureAdmin(ctx context.Context, username, passwordHash string) error {
	u := model.User{Username: username, PasswordHash: passwordHash, IsAdmin: true}
	err := s.Users.Create(ctx, &u)
	if errors.Is(err, ErrDuplicate) {
		return nil
	}
	return err
}

// mysqlFoundRowsDSN forces clientFoundRows on the connection. Without it
// MySQL reports changed rows rather than matched rows, and an UPDATE that
// re-sends a row's current values would look like a missing row.
func mysqlFoundRowsDSN(dsn string) (string, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", errors.Wrap(err, "parse mysql dsn")
	}
	cfg.ClientFoundRows = true
	return cfg.FormatDSN(), nil
}
