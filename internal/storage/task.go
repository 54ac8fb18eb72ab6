package storage

import (
	"github.com/charleshuang3/taskvault/internal/gormw"
	"github.com/charleshuang3/taskvault/internal/models"
)

// TaskQuery narrows and pages a user's task listing.
type TaskQuery struct {
	Page   int
	Limit  int
	Status string
	Search string
}

func CreateTask(db *gormw.DB, task *models.Task) error {
	return db.Create(task).Error
}

// GetTaskByID is scoped to the owner: another user's task behaves as if
// it does not exist.
func GetTaskByID(db *gormw.DB, userID, taskID string) (*models.Task, error) {
	task := &models.Task{}
	if err := db.Where("id = ? AND user_id = ?", taskID, userID).First(&task).Error; err != nil {
		return nil, err
	}
	return task, nil
}

// ListTasks returns one page of the user's tasks, newest first, plus
// the total count before paging.
func ListTasks(db *gormw.DB, userID string, q TaskQuery) ([]models.Task, int64, error) {
	scope := db.Model(&models.Task{}).Where("user_id = ?", userID)

	if q.Status != "" {
		scope = scope.Where("status = ?", q.Status)
	}

	if q.Search != "" {
		// LOWER on both sides keeps the match case-insensitive on
		// postgres too, where LIKE is case sensitive.
		scope = scope.Where("LOWER(title) LIKE LOWER(?)", "%"+q.Search+"%")
	}

	var total int64
	if err := scope.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tasks []models.Task
	err := scope.Order("created_at DESC").
		Limit(q.Limit).
		Offset((q.Page - 1) * q.Limit).
		Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

func UpdateTask(db *gormw.DB, task *models.Task) error {
	return db.Save(task).Error
}

func DeleteTask(db *gormw.DB, task *models.Task) error {
	return db.Delete(task).Error
}
