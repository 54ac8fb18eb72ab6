package authapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/charleshuang3/taskvault/internal/gormw"
	"github.com/charleshuang3/taskvault/internal/storage"
)

type loginParams struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (a *API) handleLogin(c *gin.Context) {
	params := &loginParams{}

	if err := c.ShouldBindJSON(params); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	user, err := storage.GetUserByEmail(a.db, params.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondInvalidCredentials(c, "no such user", params.Email)
			return
		}
		respondInternalError(c, err, "Database error during login")
		return
	}

	if !user.CheckPassword(params.Password) {
		respondInvalidCredentials(c, "wrong password", params.Email)
		return
	}

	var resp *authResponse
	err = a.db.Tx(func(tx *gormw.DB) error {
		var err error
		resp, err = a.issueSession(tx, user)
		return err
	})
	if err != nil {
		respondInternalError(c, err, "Failed to issue session")
		return
	}

	respondData(c, http.StatusOK, "Login successful", resp)
}
