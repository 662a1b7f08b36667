package task_test

import (
	"taskKeeper/internal/models/task"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNew тестирует фабрику задачи
func TestNew(t *testing.T) {
	tests := []struct {
		name           string
		title          string
		status         string
		expectError    bool
		expectedField  string
		expectedTitle  string
		expectedStatus task.Status
	}{
		{
			name:           "success - default status",
			title:          "Write report",
			status:         "",
			expectedTitle:  "Write report",
			expectedStatus: task.StatusPending,
		},
		{
			name:           "success - explicit pending",
			title:          "Write report",
			status:         "pending",
			expectedTitle:  "Write report",
			expectedStatus: task.StatusPending,
		},
		{
			name:           "success - done status",
			title:          "Write report",
			status:         "done",
			expectedTitle:  "Write report",
			expectedStatus: task.StatusDone,
		},
		{
			name:           "success - title is trimmed",
			title:          "   Write report  ",
			status:         "",
			expectedTitle:  "Write report",
			expectedStatus: task.StatusPending,
		},
		{
			name:          "error - empty title",
			title:         "",
			status:        "",
			expectError:   true,
			expectedField: "title",
		},
		{
			name:          "error - whitespace title",
			title:         "   ",
			status:        "",
			expectError:   true,
			expectedField: "title",
		},
		{
			name:          "error - bogus status",
			title:         "x",
			status:        "bogus",
			expectError:   true,
			expectedField: "status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created, err := task.New(tt.title, tt.status)

			if tt.expectError {
				require.Error(t, err)

				var validationErr *task.ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.Equal(t, tt.expectedField, validationErr.Field)
				assert.Nil(t, created)
				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, created.ID)
			assert.Equal(t, tt.expectedTitle, created.Title)
			assert.Equal(t, tt.expectedStatus, created.Status)
			assert.True(t, created.CreatedAt.Equal(created.UpdatedAt))
			assert.Equal(t, time.UTC, created.CreatedAt.Location())
		})
	}
}

// TestUpdateTitle тестирует смену названия
func TestUpdateTitle(t *testing.T) {
	created, err := task.New("Original", "")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	err = created.UpdateTitle("  Updated  ")
	require.NoError(t, err)
	assert.Equal(t, "Updated", created.Title)
	assert.True(t, created.UpdatedAt.After(created.CreatedAt))
}

// TestUpdateTitle_Invalid тестирует, что ошибка валидации не меняет задачу
func TestUpdateTitle_Invalid(t *testing.T) {
	created, err := task.New("Original", "")
	require.NoError(t, err)
	before := created.UpdatedAt

	err = created.UpdateTitle("   ")
	require.Error(t, err)

	var validationErr *task.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "title", validationErr.Field)

	assert.Equal(t, "Original", created.Title)
	assert.True(t, created.UpdatedAt.Equal(before))
}

// TestUpdateStatus тестирует смену статуса
func TestUpdateStatus(t *testing.T) {
	created, err := task.New("Write report", "")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	err = created.UpdateStatus("done")
	require.NoError(t, err)
	assert.Equal(t, task.StatusDone, created.Status)
	assert.True(t, created.UpdatedAt.After(created.CreatedAt))

	err = created.UpdateStatus("archived")
	require.Error(t, err)

	var validationErr *task.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "status", validationErr.Field)
	assert.Equal(t, task.StatusDone, created.Status)
}

// TestParseStatus тестирует закрытое перечисление статусов
func TestParseStatus(t *testing.T) {
	tests := []struct {
		raw         string
		expected    task.Status
		expectError bool
	}{
		{raw: "pending", expected: task.StatusPending},
		{raw: "done", expected: task.StatusDone},
		{raw: "", expectError: true},
		{raw: "DONE", expectError: true},
		{raw: "in progress", expectError: true},
	}

	for _, tt := range tests {
		t.Run("status "+tt.raw, func(t *testing.T) {
			parsed, err := task.ParseStatus(tt.raw)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, parsed)
		})
	}
}

// TestSerialize_RoundTrip тестирует потерю-без-потерь сериализацию
func TestSerialize_RoundTrip(t *testing.T) {
	created, err := task.New("Write report", "done")
	require.NoError(t, err)

	fields := created.Serialize()
	assert.Len(t, fields, 5)
	assert.Equal(t, created.ID.String(), fields["id"])
	assert.Equal(t, "Write report", fields["title"])
	assert.Equal(t, "done", fields["status"])

	restored, err := task.Deserialize(fields)
	require.NoError(t, err)

	assert.Equal(t, created.ID, restored.ID)
	assert.Equal(t, created.Title, restored.Title)
	assert.Equal(t, created.Status, restored.Status)
	assert.True(t, created.CreatedAt.Equal(restored.CreatedAt))
	assert.True(t, created.UpdatedAt.Equal(restored.UpdatedAt))

	// serialize(deserialize(serialize(x))) == serialize(x)
	assert.Equal(t, fields, restored.Serialize())
}

// TestDeserialize_Malformed тестирует громкий отказ на испорченных данных
func TestDeserialize_Malformed(t *testing.T) {
	created, err := task.New("Write report", "")
	require.NoError(t, err)
	valid := created.Serialize()

	tests := []struct {
		name  string
		mut   func(map[string]string)
	}{
		{name: "bad id", mut: func(f map[string]string) { f["id"] = "not-a-uuid" }},
		{name: "bad status", mut: func(f map[string]string) { f["status"] = "stale" }},
		{name: "bad created_at", mut: func(f map[string]string) { f["created_at"] = "yesterday" }},
		{name: "bad updated_at", mut: func(f map[string]string) { f["updated_at"] = "tomorrow" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := make(map[string]string, len(valid))
			for k, v := range valid {
				fields[k] = v
			}
			tt.mut(fields)

			restored, err := task.Deserialize(fields)
			assert.Error(t, err)
			assert.Nil(t, restored)
		})
	}
}

// TestClone тестирует независимость копии
func TestClone(t *testing.T) {
	created, err := task.New("Write report", "")
	require.NoError(t, err)

	copied := created.Clone()
	require.NoError(t, copied.UpdateTitle("Changed"))

	assert.Equal(t, "Write report", created.Title)
	assert.Equal(t, "Changed", copied.Title)
}
