package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestCreateTaskDTOValidate(t *testing.T) {
	assert.Nil(t, CreateTaskDTO{Title: "Buy milk"}.Validate())
	assert.Nil(t, CreateTaskDTO{Title: "Buy milk", Category: "errands", Completed: true}.Validate())

	errs := CreateTaskDTO{Category: "errands"}.Validate()
	assert.Equal(t, msgRequired, errs["title"])

	errs = CreateTaskDTO{Title: "   "}.Validate()
	assert.Contains(t, errs, "title", "whitespace-only title is missing")
}

func TestUpdateTaskDTOValidate(t *testing.T) {
	assert.Nil(t, UpdateTaskDTO{}.Validate(), "empty patch is valid")
	assert.Nil(t, UpdateTaskDTO{Title: strPtr("new title")}.Validate())
	assert.NotNil(t, UpdateTaskDTO{Title: strPtr("")}.Validate(), "title may not be blanked out")
}

func TestCredentialsDTOValidate(t *testing.T) {
	assert.Nil(t, CredentialsDTO{Username: "alice", Password: "pw"}.Validate())

	errs := CredentialsDTO{}.Validate()
	assert.Equal(t, msgRequired, errs["username"])
	assert.Equal(t, msgRequired, errs["password"])
}

func TestCreateUserDTOValidate(t *testing.T) {
	assert.Nil(t, CreateUserDTO{Username: "carol", Password: "pw"}.Validate())
	assert.Contains(t, CreateUserDTO{Password: "pw"}.Validate(), "username")
	assert.Contains(t, CreateUserDTO{Username: "carol"}.Validate(), "password")
}
