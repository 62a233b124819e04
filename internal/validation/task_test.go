package validation

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/taskmanager-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeTask(t *testing.T, body string) TaskInput {
	t.Helper()
	var in TaskInput
	require.NoError(t, json.Unmarshal([]byte(body), &in))
	return in
}

func TestFieldDecoding(t *testing.T) {
	in := decodeTask(t, `{"title":"x","completed":"yes","description":null}`)

	assert.True(t, in.Title.Set)
	assert.True(t, in.Title.Valid)
	assert.Equal(t, "x", in.Title.Value)

	assert.True(t, in.Completed.Set)
	assert.False(t, in.Completed.Valid, "a string is not a boolean")

	assert.True(t, in.Description.Set)
	assert.False(t, in.Description.Valid, "null is present but invalid")

	empty := decodeTask(t, `{}`)
	assert.False(t, empty.Title.Set)
	assert.False(t, empty.Description.Set)
	assert.False(t, empty.Completed.Set)
}

func TestValidateTaskCreate(t *testing.T) {
	owner := uuid.New()

	t.Run("defaults applied and title trimmed", func(t *testing.T) {
		task, err := ValidateTaskCreate(decodeTask(t, `{"title":"  buy milk  "}`), owner.String())
		require.NoError(t, err)
		assert.Equal(t, "buy milk", task.Title)
		assert.Equal(t, "", task.Description)
		assert.False(t, task.Completed)
		assert.Equal(t, owner, task.UserID)
	})

	t.Run("explicit fields kept", func(t *testing.T) {
		task, err := ValidateTaskCreate(decodeTask(t, `{"title":"a","description":"b","completed":true}`), owner.String())
		require.NoError(t, err)
		assert.Equal(t, "b", task.Description)
		assert.True(t, task.Completed)
	})

	tests := []struct {
		name    string
		body    string
		owner   string
		wantErr string
	}{
		{"missing title", `{}`, owner.String(), MsgCreateTitle},
		{"whitespace title", `{"title":"    "}`, owner.String(), MsgCreateTitle},
		{"long title", `{"title":"` + strings.Repeat("t", 201) + `"}`, owner.String(), MsgCreateTitle},
		{"long description", `{"title":"a","description":"` + strings.Repeat("d", 1001) + `"}`, owner.String(), MsgDescription},
		{"non-boolean completed", `{"title":"a","completed":1}`, owner.String(), MsgCompleted},
		{"malformed owner", `{"title":"a"}`, "42", MsgInvalidOwnerID},
		{"nil owner", `{"title":"a"}`, uuid.Nil.String(), MsgInvalidOwnerID},
		{
			"collects all violations",
			`{"title":"","description":5,"completed":"no"}`,
			"bad",
			strings.Join([]string{MsgCreateTitle, MsgDescription, MsgCompleted, MsgInvalidOwnerID}, ", "),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateTaskCreate(decodeTask(t, tt.body), tt.owner)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrValidation))
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}

	t.Run("description stored trimmed", func(t *testing.T) {
		padded := strings.Repeat(" ", 50) + strings.Repeat("d", 1000) + "  "
		task, err := ValidateTaskCreate(decodeTask(t, `{"title":"a","description":"`+padded+`"}`), owner.String())
		require.NoError(t, err)
		assert.Equal(t, strings.Repeat("d", 1000), task.Description)
	})

	t.Run("title of exactly 200 characters is accepted", func(t *testing.T) {
		_, err := ValidateTaskCreate(decodeTask(t, `{"title":"`+strings.Repeat("é", 200)+`"}`), owner.String())
		assert.NoError(t, err)
	})
}

func TestValidateTaskUpdate(t *testing.T) {
	t.Run("empty body", func(t *testing.T) {
		_, err := ValidateTaskUpdate(decodeTask(t, `{}`))
		require.Error(t, err)
		assert.Equal(t, MsgEmptyUpdate, err.Error())
	})

	t.Run("only completed", func(t *testing.T) {
		patch, err := ValidateTaskUpdate(decodeTask(t, `{"completed":true}`))
		require.NoError(t, err)
		assert.Nil(t, patch.Title)
		assert.Nil(t, patch.Description)
		require.NotNil(t, patch.Completed)
		assert.True(t, *patch.Completed)
	})

	t.Run("empty description clears but is present", func(t *testing.T) {
		patch, err := ValidateTaskUpdate(decodeTask(t, `{"description":""}`))
		require.NoError(t, err)
		require.NotNil(t, patch.Description)
		assert.Equal(t, "", *patch.Description)
	})

	t.Run("title trimmed", func(t *testing.T) {
		patch, err := ValidateTaskUpdate(decodeTask(t, `{"title":"  x "}`))
		require.NoError(t, err)
		require.NotNil(t, patch.Title)
		assert.Equal(t, "x", *patch.Title)
	})

	t.Run("description trimmed", func(t *testing.T) {
		padded := "   " + strings.Repeat("d", 1000) + "   "
		patch, err := ValidateTaskUpdate(decodeTask(t, `{"description":"`+padded+`"}`))
		require.NoError(t, err)
		require.NotNil(t, patch.Description)
		assert.Len(t, *patch.Description, 1000)
	})

	t.Run("whitespace description clears", func(t *testing.T) {
		patch, err := ValidateTaskUpdate(decodeTask(t, `{"description":"   "}`))
		require.NoError(t, err)
		require.NotNil(t, patch.Description)
		assert.Equal(t, "", *patch.Description)
	})

	t.Run("null title is present and rejected", func(t *testing.T) {
		_, err := ValidateTaskUpdate(decodeTask(t, `{"title":null}`))
		require.Error(t, err)
		assert.Equal(t, MsgUpdateTitle, err.Error())
	})

	t.Run("all field violations at once", func(t *testing.T) {
		_, err := ValidateTaskUpdate(decodeTask(t, `{"title":" ","description":null,"completed":"true"}`))
		require.Error(t, err)
		var verr *domain.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, []string{MsgUpdateTitle, MsgDescription, MsgCompleted}, verr.Violations)
	})
}

func TestParseOwnerID(t *testing.T) {
	id := uuid.New()
	got, err := ParseOwnerID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = ParseOwnerID("not-an-id")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.False(t, errors.Is(err, domain.ErrForbidden))
}

func TestCheckTaskOwnership(t *testing.T) {
	owner := uuid.New()
	task := &domain.Task{ID: uuid.New(), Title: "t", UserID: owner}

	got, err := CheckTaskOwnership(task, owner)
	require.NoError(t, err)
	assert.Same(t, task, got)

	_, err = CheckTaskOwnership(nil, owner)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Equal(t, MsgTaskNotFound, err.Error())

	_, err = CheckTaskOwnership(task, uuid.New())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
	assert.Equal(t, MsgTaskAccessDenied, err.Error())
}
