package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/jadranPTI/todo-list-project/internal/model"
)

// TaskFilter narrows a task query. Zero-valued criteria are skipped; the
// remaining ones combine with AND. OwnerID > 0 restricts the query to that
// owner's rows, which is how non-admin scoping is enforced.
type TaskFilter struct {
	OwnerID   int64
	Title     string
	Category  string
	Completed *bool
}

// where compiles the filter into a SQL predicate over the aliased tasks
// table. Substring matches are case-insensitive.
func (f TaskFilter) where() (string, []interface{}) {
	conds := []string{"1=1"}
	var args []interface{}
	if f.OwnerID > 0 {
		conds = append(conds, "t.owner_id = ?")
		args = append(args, f.OwnerID)
	}
	if f.Title != "" {
		conds = append(conds, "LOWER(t.title) LIKE ?")
		args = append(args, "%"+strings.ToLower(f.Title)+"%")
	}
	if f.Category != "" {
		conds = append(conds, "LOWER(t.category) LIKE ?")
		args = append(args, "%"+strings.ToLower(f.Category)+"%")
	}
	if f.Completed != nil {
		conds = append(conds, "t.completed = ?")
		args = append(args, *f.Completed)
	}
	return strings.Join(conds, " AND "), args
}

// TaskStore persists tasks.
type TaskStore struct {
	db *sqlx.DB
}

const taskColumns = `t.id, t.title, t.category, t.completed, t.owner_id, u.username AS owner, t.created_at`

// List returns one page of the filtered collection, ordered by id ascending
// (creation order) so repeated identical calls page deterministically.
func (s *TaskStore) List(ctx context.Context, f TaskFilter, limit, offset int) ([]model.Task, error) {
	where, args := f.where()
	query := `SELECT ` + taskColumns + `
		FROM tasks t JOIN users u ON u.id = t.owner_id
		WHERE ` + where + ` ORDER BY t.id ASC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	tasks := []model.Task{}
	if err := s.db.SelectContext(ctx, &tasks, query, args...); err != nil {
		return nil, errors.Wrap(err, "list tasks")
	}
	return tasks, nil
}

// Counts aggregates the filtered collection as a whole, independent of any
// page window.
func (s *TaskStore) Counts(ctx context.Context, f TaskFilter) (total, completed int, err error) {
	where, args := f.where()
	query := `SELECT COUNT(*), COALESCE(SUM(t.completed), 0) FROM tasks t WHERE ` + where
	row := s.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&total, &completed); err != nil {
		return 0, 0, errors.Wrap(err, "count tasks")
	}
	return total, completed, nil
}

// Get fetches one task by id. ownerID > 0 additionally requires ownership,
// so a foreign task is indistinguishable from a missing one.
func (s *TaskStore) Get(ctx context.Context, id, ownerID int64) (model.Task, error) {
	query := `SELECT ` + taskColumns + `
		FROM tasks t JOIN users u ON u.id = t.owner_id WHERE t.id = ?`
	args := []interface{}{id}
	if ownerID > 0 {
		query += ` AND t.owner_id = ?`
		args = append(args, ownerID)
	}
	var t model.Task
	if err := s.db.GetContext(ctx, &t, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Task{}, ErrNotFound
		}
		return model.Task{}, errors.Wrap(err, "get task")
	}
	return t, nil
}

// Create inserts the task and fills in its assigned id and creation time.
func (s *TaskStore) Create(ctx context.Context, t *model.Task) error {
	t.CreatedAt = time.Now().UTC().Truncate(time.Second)
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (title, category, completed, owner_id, created_at) VALUES (?, ?, ?, ?, ?)`,
		t.Title, t.Category, t.Completed, t.OwnerID, t.CreatedAt)
	if err != nil {
		return errors.Wrap(err, "insert task")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return errors.Wrap(err, "task insert id")
	}
	t.ID = id
	return nil
}

// Update writes the mutable fields back. The owner column is deliberately
// absent from the statement; ownership never changes after creation.
func (s *TaskStore) Update(ctx context.Context, t model.Task, ownerID int64) error {
	query := `UPDATE tasks SET title = ?, category = ?, completed = ? WHERE id = ?`
	args := []interface{}{t.Title, t.Category, t.Completed, t.ID}
	if ownerID > 0 {
		query += ` AND owner_id = ?`
		args = append(args, ownerID)
	}
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, "update task")
	}
	return oneRow(res)
}

// Delete removes the task permanently. Deleting an already-deleted or
// foreign task reports ErrNotFound.
func (s *TaskStore) Delete(ctx context.Context, id, ownerID int64) error {
	query := `DELETE FROM tasks WHERE id = ?`
	args := []interface{}{id}
	if ownerID > 0 {
		query += ` AND owner_id = ?`
		args = append(args, ownerID)
	}
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, "delete task")
	}
	return oneRow(res)
}

func oneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "rows affected")
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
