// Package taskapi implements per-user task CRUD with pagination,
// status filtering and title search. Every route runs behind the auth
// middleware; handlers trust the user id it attached to the context.
package taskapi

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/charleshuang3/taskvault/internal/gormw"
)

var (
	logger = log.With().Str("component", "taskapi").Logger()
)

type API struct {
	db *gormw.DB
}

func New(db *gormw.DB) *API {
	return &API{db: db}
}

func (a *API) RegisterHandlers(rg *gin.RouterGroup) {
	rg.GET("", a.handleList)
	rg.POST("", a.handleCreate)
	rg.GET("/:id", a.handleGet)
	rg.PUT("/:id", a.handleUpdate)
	rg.DELETE("/:id", a.handleDelete)
	rg.PATCH("/:id/toggle", a.handleToggle)
}

func respondError(c *gin.Context, httpCode int, message string) {
	c.JSON(httpCode, gin.H{
		"success": false,
		"message": message,
	})
}

func respondData(c *gin.Context, httpCode int, message string, data any) {
	c.JSON(httpCode, gin.H{
		"success": true,
		"message": message,
		"data":    data,
	})
}
