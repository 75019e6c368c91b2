package store

import (
	"context"
	"database/sql"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/jadranPTI/todo-list-project/internal/model"
)

// UserStore persists user accounts.
type UserStore struct {
	db *sqlx.DB
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (model.User, error) {
	var u model.User
	err := s.db.GetContext(ctx, &u,
		`SELECT id, username, password_hash, is_admin FROM users WHERE username = ?`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	if err != nil {
		return model.User{}, errors.Wrap(err, "get user")
	}
	return u, nil
}

func (s *UserStore) Get(ctx context.Context, id int64) (model.User, error) {
	var u model.User
	err := s.db.GetContext(ctx, &u,
		`SELECT id, username, password_hash, is_admin FROM users WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	if err != nil {
		return model.User{}, errors.Wrap(err, "get user")
	}
	return u, nil
}

func (s *UserStore) List(ctx context.Context) ([]model.User, error) {
	users := []model.User{}
	err := s.db.SelectContext(ctx, &users,
		`SELECT id, username, password_hash, is_admin FROM users ORDER BY id ASC`)
	if err != nil {
		return nil, errors.Wrap(err, "list users")
	}
	return users, nil
}

func (s *UserStore) Create(ctx context.Context, u *model.User) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, is_admin) VALUES (?, ?, ?)`,
		u.Username, u.PasswordHash, u.IsAdmin)
	if err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
		return errors.Wrap(err, "insert user")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return errors.Wrap(err, "user insert id")
	}
	u.ID = id
	return nil
}

func (s *UserStore) Update(ctx context.Context, u model.User) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET username = ?, password_hash = ?, is_admin = ? WHERE id = ?`,
		u.Username, u.PasswordHash, u.IsAdmin, u.ID)
	if err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
		return errors.Wrap(err, "update user")
	}
	return oneRow(res)
}

func (s *UserStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "delete user")
	}
	return oneRow(res)
}

// isDuplicate recognizes a unique-constraint rejection from either driver.
// MySQL reports error 1062 for duplicate keys.
func isDuplicate(err error) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}
