package handler

import "strings"

// FieldErrors maps a field name to what is wrong with it. A nil map means
// the payload passed validation.
type FieldErrors map[string]string

const msgRequired = "This field is required."

// CredentialsDTO is the token-obtain request body.
type CredentialsDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (d CredentialsDTO) Validate() FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(d.Username) == "" {
		errs["username"] = msgRequired
	}
	if d.Password == "" {
		errs["password"] = msgRequired
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// RefreshDTO is the token-refresh request body.
type RefreshDTO struct {
	Refresh string `json:"refresh"`
}

func (d RefreshDTO) Validate() FieldErrors {
	if d.Refresh == "" {
		return FieldErrors{"refresh": msgRequired}
	}
	return nil
}

// CreateTaskDTO is the task-create request body. There is intentionally no
// owner field: whatever the client sends for it is discarded on bind and
// the owner is always the authenticated caller.
type CreateTaskDTO struct {
	Title     string `json:"title"`
	Category  string `json:"category"`
	Completed bool   `json:"completed"`
}

func (d CreateTaskDTO) Validate() FieldErrors {
	if strings.TrimSpace(d.Title) == "" {
		return FieldErrors{"title": msgRequired}
	}
	return nil
}

// UpdateTaskDTO carries a partial task update. Nil fields are left alone.
type UpdateTaskDTO struct {
	Title     *string `json:"title"`
	Category  *string `json:"category"`
	Completed *bool   `json:"completed"`
}

func (d UpdateTaskDTO) Validate() FieldErrors {
	if d.Title != nil && strings.TrimSpace(*d.Title) == "" {
		return FieldErrors{"title": "This field may not be blank."}
	}
	return nil
}

// CreateUserDTO is the admin user-create request body.
type CreateUserDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"is_admin"`
}

func (d CreateUserDTO) Validate() FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(d.Username) == "" {
		errs["username"] = msgRequired
	}
	if d.Password == "" {
		errs["password"] = msgRequired
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// UpdateUserDTO carries a partial user update.
type UpdateUserDTO struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
	IsAdmin  *bool   `json:"is_admin"`
}

func (d UpdateUserDTO) Validate() FieldErrors {
	errs := FieldErrors{}
	if d.Username != nil && strings.TrimSpace(*d.Username) == "" {
		errs["username"] = "This field may not be blank."
	}
	if d.Password != nil && *d.Password == "" {
		errs["password"] = "This field may not be blank."
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
