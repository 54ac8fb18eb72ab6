package storage

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/charleshuang3/taskvault/internal/models"
)

func TestCreateAndGetTask(t *testing.T) {
	db := setupTestDB(t)

	task := &models.Task{
		Title:  "Buy milk",
		UserID: "user-1",
	}
	require.NoError(t, CreateTask(db, task))
	assert.NotEmpty(t, task.ID)
	assert.Equal(t, models.TaskStatusPending, task.Status)

	got, err := GetTaskByID(db, "user-1", task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", got.Title)
}

func TestGetTaskScopedToOwner(t *testing.T) {
	db := setupTestDB(t)

	task := &models.Task{Title: "Private task", UserID: "user-1"}
	require.NoError(t, CreateTask(db, task))

	_, err := GetTaskByID(db, "user-2", task.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListTasksPagination(t *testing.T) {
	db := setupTestDB(t)

	for i := 0; i < 25; i++ {
		task := &models.Task{
			Title:     fmt.Sprintf("Task %02d", i),
			UserID:    "user-1",
			CreatedAt: time.Now().Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, CreateTask(db, task))
	}

	tasks, total, err := ListTasks(db, "user-1", TaskQuery{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 25, total)
	assert.Len(t, tasks, 10)
	// Newest first.
	assert.Equal(t, "Task 24", tasks[0].Title)

	tasks, _, err = ListTasks(db, "user-1", TaskQuery{Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, tasks, 5)

	tasks, total, err = ListTasks(db, "user-1", TaskQuery{Page: 4, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 25, total)
	assert.Empty(t, tasks)
}

func TestListTasksFilterAndSearch(t *testing.T) {
	db := setupTestDB(t)

	seed := []*models.Task{
		{Title: "Write report", Status: models.TaskStatusPending, UserID: "user-1"},
		{Title: "Review report", Status: models.TaskStatusCompleted, UserID: "user-1"},
		{Title: "Plan offsite", Status: models.TaskStatusPending, UserID: "user-1"},
		{Title: "Other user's report", Status: models.TaskStatusPending, UserID: "user-2"},
	}
	for _, task := range seed {
		require.NoError(t, CreateTask(db, task))
	}

	tasks, total, err := ListTasks(db, "user-1", TaskQuery{Page: 1, Limit: 10, Status: models.TaskStatusPending})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	for _, task := range tasks {
		assert.Equal(t, models.TaskStatusPending, task.Status)
	}

	// Search is case-insensitive and scoped to the user.
	_, total, err = ListTasks(db, "user-1", TaskQuery{Page: 1, Limit: 10, Search: "REPORT"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	_, total, err = ListTasks(db, "user-1", TaskQuery{Page: 1, Limit: 10, Status: models.TaskStatusCompleted, Search: "report"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestUpdateAndDeleteTask(t *testing.T) {
	db := setupTestDB(t)

	task := &models.Task{Title: "Draft email", UserID: "user-1"}
	require.NoError(t, CreateTask(db, task))

	task.Status = models.TaskStatusCompleted
	require.NoError(t, UpdateTask(db, task))

	got, err := GetTaskByID(db, "user-1", task.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusCompleted, got.Status)

	require.NoError(t, DeleteTask(db, task))
	_, err = GetTaskByID(db, "user-1", task.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
