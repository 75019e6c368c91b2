// Package pagination slices a filtered task collection into numbered pages
// and shapes the response envelope, including the aggregation counts that
// are computed over the whole filtered set rather than the current page.
package pagination

import "errors"

// ErrInvalidPage is returned when the requested page is below 1 or past the
// last page. Out-of-range requests are an error, never an empty page.
var ErrInvalidPage = errors.New("invalid page")

// Config are the engine-level pagination settings. PageSize applies when the
// client sends no page_size; client overrides are clamped to MaxPageSize.
type Config struct {
	PageSize    int
	MaxPageSize int
}

// Clamp resolves the effective page size for a request. Zero or negative
// means "not supplied".
func (c Config) Clamp(requested int) int {
	if requested < 1 {
		return c.PageSize
	}
	if requested > c.MaxPageSize {
		return c.MaxPageSize
	}
	return requested
}

// Counts aggregates the filtered collection before slicing.
type Counts struct {
	Total     int `json:"total_tasks"`
	Completed int `json:"completed_tasks"`
	Pending   int `json:"pending_tasks"`
}

// Window is the resolved slice of one page plus its metadata.
type Window struct {
	Page       int
	TotalPages int
	PageSize   int
	Offset     int
	Limit      int
	HasNext    bool
	HasPrev    bool
}

// Paginate resolves page/pageSize against the filtered total. An empty
// collection still has exactly one valid page.
func Paginate(total, page, pageSize int) (Window, error) {
	if pageSize < 1 {
		return Window{}, ErrInvalidPage
	}
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 || page > totalPages {
		return Window{}, ErrInvalidPage
	}
	return Window{
		Page:       page,
		TotalPages: totalPages,
		PageSize:   pageSize,
		Offset:     (page - 1) * pageSize,
		Limit:      pageSize,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}, nil
}

// Envelope is the wire shape of a task list response.
type Envelope struct {
	Page       int  `json:"page"`
	TotalPages int  `json:"total_pages"`
	PageSize   int  `json:"page_size"`
	Counts
	HasNext bool        `json:"has_next"`
	HasPrev bool        `json:"has_previous"`
	Tasks   interface{} `json:"tasks"`
}

// NewEnvelope assembles the response for one resolved window. Tasks must not
// be nil so the JSON field serializes as [] when the page is empty.
func NewEnvelope(w Window, counts Counts, tasks interface{}) Envelope {
	return Envelope{
		Page:       w.Page,
		TotalPages: w.TotalPages,
		PageSize:   w.PageSize,
		Counts:     counts,
		HasNext:    w.HasNext,
		HasPrev:    w.HasPrev,
		Tasks:      tasks,
	}
}
