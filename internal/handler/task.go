package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/jadranPTI/todo-list-project/internal/model"
	"github.com/jadranPTI/todo-list-project/internal/pagination"
	"github.com/jadranPTI/todo-list-project/internal/store"
)

// taskFilter builds the store filter from the recognized query parameters.
// Anything else in the query string is ignored, as is an unparsable
// completed value.
func taskFilter(c echo.Context, ownerID int64) store.TaskFilter {
	f := store.TaskFilter{
		OwnerID:  ownerID,
		Title:    c.QueryParam("title"),
		Category: c.QueryParam("category"),
	}
	if v := c.QueryParam("completed"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			f.Completed = &b
		}
	}
	return f
}

// listPage runs filter → counts → paginate → fetch and writes the envelope.
// Both the owner-scoped list and the admin list funnel through here; the
// only difference between them is the scope baked into the filter.
func (h *Handler) listPage(c echo.Context, f store.TaskFilter) error {
	ctx := c.Request().Context()

	total, completed, err := h.store.Tasks.Counts(ctx, f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	page := 1
	if v := c.QueryParam("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Invalid page."})
		}
		page = n
	}
	size := 0
	if v := c.QueryParam("page_size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			size = n
		}
	}

	window, err := pagination.Paginate(total, page, h.pager.Clamp(size))
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Invalid page."})
	}

	tasks, err := h.store.Tasks.List(ctx, f, window.Limit, window.Offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	counts := pagination.Counts{Total: total, Completed: completed, Pending: total - completed}
	return c.JSON(http.StatusOK, pagination.NewEnvelope(window, counts, tasks))
}

// ListTasks returns one page of the caller's own tasks. The owner scope is
// part of the store query, so foreign rows are never even enumerated.
func (h *Handler) ListTasks(c echo.Context) error {
	cl, err := caller(c)
	if err != nil {
		return err
	}
	return h.listPage(c, taskFilter(c, cl.ID))
}

// AdminListTasks returns one page over every user's tasks. RequireAdmin
// guards the route.
func (h *Handler) AdminListTasks(c echo.Context) error {
	return h.listPage(c, taskFilter(c, 0))
}

// CreateTask creates a task owned by the caller. A client-supplied owner is
// silently discarded.
func (h *Handler) CreateTask(c echo.Context) error {
	cl, err := caller(c)
	if err != nil {
		return err
	}
	var dto CreateTaskDTO
	if err := c.Bind(&dto); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if errs := dto.Validate(); errs != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": errs})
	}

	task := model.Task{
		Title:     dto.Title,
		Category:  dto.Category,
		Completed: dto.Completed,
		OwnerID:   cl.ID,
		Owner:     cl.Username,
	}
	if err := h.store.Tasks.Create(c.Request().Context(), &task); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, task)
}

// detailScope resolves the (id, owner) scope for the detail routes. Admins
// see every task; everyone else only their own, so a foreign id behaves
// exactly like a missing one.
func detailScope(c echo.Context) (id, ownerID int64, err error) {
	cl, err := caller(c)
	if err != nil {
		return 0, 0, err
	}
	id, perr := strconv.ParseInt(c.Param("id"), 10, 64)
	if perr != nil {
		return 0, 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid ID")
	}
	if cl.IsAdmin {
		return id, 0, nil
	}
	return id, cl.ID, nil
}

// GetTask fetches a single task within the caller's scope.
func (h *Handler) GetTask(c echo.Context) error {
	id, ownerID, err := detailScope(c)
	if err != nil {
		return err
	}
	task, err := h.store.Tasks.Get(c.Request().Context(), id, ownerID)
	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Task not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, task)
}

// UpdateTask applies a partial update. The owner column is not part of the
// update statement, so ownership can never change through this path.
func (h *Handler) UpdateTask(c echo.Context) error {
	id, ownerID, err := detailScope(c)
	if err != nil {
		return err
	}
	var dto UpdateTaskDTO
	if err := c.Bind(&dto); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if errs := dto.Validate(); errs != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": errs})
	}

	ctx := c.Request().Context()
	task, err := h.store.Tasks.Get(ctx, id, ownerID)
	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Task not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	if dto.Title != nil {
		task.Title = *dto.Title
	}
	if dto.Category != nil {
		task.Category = *dto.Category
	}
	if dto.Completed != nil {
		task.Completed = *dto.Completed
	}
	if err := h.store.Tasks.Update(ctx, task, ownerID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Task not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, task)
}

// DeleteTask removes a task permanently. Repeating the delete yields
// not-found, never a second success.
func (h *Handler) DeleteTask(c echo.Context) error {
	id, ownerID, err := detailScope(c)
	if err != nil {
		return err
	}
	err = h.store.Tasks.Delete(c.Request().Context(), id, ownerID)
	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Task not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}
