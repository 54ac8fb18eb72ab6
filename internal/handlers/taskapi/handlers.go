package taskapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/charleshuang3/taskvault/internal/handlers/middleware"
	"github.com/charleshuang3/taskvault/internal/models"
	"github.com/charleshuang3/taskvault/internal/storage"
)

type createTaskParams struct {
	Title       string `json:"title" binding:"required,min=3,max=200"`
	Description string `json:"description" binding:"omitempty,max=1000"`
	Status      string `json:"status"`
}

func (a *API) handleCreate(c *gin.Context) {
	params := &createTaskParams{}

	if err := c.ShouldBindJSON(params); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	if params.Status != "" && !models.TaskStatuses.Contains(params.Status) {
		respondError(c, http.StatusBadRequest, "Invalid status")
		return
	}

	task := &models.Task{
		Title:       params.Title,
		Description: params.Description,
		Status:      params.Status,
		UserID:      middleware.UserID(c),
	}

	if err := storage.CreateTask(a.db, task); err != nil {
		logger.Error().Err(err).Msg("Failed to create task")
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondData(c, http.StatusCreated, "Task created successfully", task)
}

type listTasksParams struct {
	Page   int    `form:"page,default=1" binding:"min=1"`
	Limit  int    `form:"limit,default=10" binding:"min=1,max=100"`
	Status string `form:"status"`
	Search string `form:"search" binding:"omitempty,max=200"`
}

func (a *API) handleList(c *gin.Context) {
	params := &listTasksParams{}

	if err := c.ShouldBindQuery(params); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	if params.Status != "" && !models.TaskStatuses.Contains(params.Status) {
		respondError(c, http.StatusBadRequest, "Invalid status")
		return
	}

	tasks, total, err := storage.ListTasks(a.db, middleware.UserID(c), storage.TaskQuery{
		Page:   params.Page,
		Limit:  params.Limit,
		Status: params.Status,
		Search: params.Search,
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list tasks")
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	totalPages := (total + int64(params.Limit) - 1) / int64(params.Limit)

	respondData(c, http.StatusOK, "Tasks retrieved successfully", gin.H{
		"tasks": tasks,
		"pagination": gin.H{
			"page":       params.Page,
			"limit":      params.Limit,
			"total":      total,
			"totalPages": totalPages,
		},
	})
}

// getOwnedTask loads the task, scoped to the requester; responds and
// returns nil when the task cannot be used.
func (a *API) getOwnedTask(c *gin.Context) *models.Task {
	task, err := storage.GetTaskByID(a.db, middleware.UserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Task not found")
			return nil
		}
		logger.Error().Err(err).Msg("Failed to get task")
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return nil
	}
	return task
}

func (a *API) handleGet(c *gin.Context) {
	task := a.getOwnedTask(c)
	if task == nil {
		return
	}

	respondData(c, http.StatusOK, "Task retrieved successfully", task)
}

type updateTaskParams struct {
	Title       *string `json:"title" binding:"omitempty,min=3,max=200"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	Status      *string `json:"status"`
}

func (a *API) handleUpdate(c *gin.Context) {
	params := &updateTaskParams{}

	if err := c.ShouldBindJSON(params); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	if params.Status != nil && !models.TaskStatuses.Contains(*params.Status) {
		respondError(c, http.StatusBadRequest, "Invalid status")
		return
	}

	task := a.getOwnedTask(c)
	if task == nil {
		return
	}

	if params.Title != nil {
		task.Title = *params.Title
	}
	if params.Description != nil {
		task.Description = *params.Description
	}
	if params.Status != nil {
		task.Status = *params.Status
	}

	if err := storage.UpdateTask(a.db, task); err != nil {
		logger.Error().Err(err).Msg("Failed to update task")
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondData(c, http.StatusOK, "Task updated successfully", task)
}

func (a *API) handleDelete(c *gin.Context) {
	task := a.getOwnedTask(c)
	if task == nil {
		return
	}

	if err := storage.DeleteTask(a.db, task); err != nil {
		logger.Error().Err(err).Msg("Failed to delete task")
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondData(c, http.StatusOK, "Task deleted successfully", nil)
}

// handleToggle flips COMPLETED back to PENDING and anything else to
// COMPLETED.
func (a *API) handleToggle(c *gin.Context) {
	task := a.getOwnedTask(c)
	if task == nil {
		return
	}

	if task.Status == models.TaskStatusCompleted {
		task.Status = models.TaskStatusPending
	} else {
		task.Status = models.TaskStatusCompleted
	}

	if err := storage.UpdateTask(a.db, task); err != nil {
		logger.Error().Err(err).Msg("Failed to toggle task status")
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondData(c, http.StatusOK, "Task status updated successfully", task)
}
