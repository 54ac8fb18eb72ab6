package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-set/v3"
	"gorm.io/gorm"
)

const (
	TaskStatusPending    = "PENDING"
	TaskStatusInProgress = "IN_PROGRESS"
	TaskStatusCompleted  = "COMPLETED"
)

var TaskStatuses = set.From([]string{
	TaskStatusPending,
	TaskStatusInProgress,
	TaskStatusCompleted,
})

type Task struct {
	ID          string    `gorm:"primarykey" json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	UserID      string    `gorm:"index" json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Status == "" {
		t.Status = TaskStatusPending
	}
	return nil
}
