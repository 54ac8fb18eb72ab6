package authapi

import (
	"errors"
	"net/http"

	"github.com/badoux/checkmail"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/charleshuang3/taskvault/internal/gormw"
	"github.com/charleshuang3/taskvault/internal/models"
	"github.com/charleshuang3/taskvault/internal/storage"
)

var errDuplicateUser = errors.New("duplicate user")

type registerParams struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required,min=4"`
}

func (a *API) handleRegister(c *gin.Context) {
	params := &registerParams{}

	if err := c.ShouldBindJSON(params); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	if err := checkmail.ValidateFormat(params.Email); err != nil {
		respondError(c, http.StatusBadRequest, "Please provide a valid email")
		return
	}

	// Early duplicate check for a friendly error; the unique index is
	// the backstop for the concurrent-register race.
	_, err := storage.GetUserByEmail(a.db, params.Email)
	if err == nil {
		respondError(c, http.StatusBadRequest, msgDuplicateUser)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		respondInternalError(c, err, "Database error checking email existence")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		respondInternalError(c, err, "Failed to hash password")
		return
	}

	user := &models.User{
		Email:          params.Email,
		Name:           params.Name,
		HashedPassword: string(hashedPassword),
	}

	// User row and refresh ledger row commit as one unit: a failure in
	// any step leaves no half-created account behind.
	var resp *authResponse
	err = a.db.Tx(func(tx *gormw.DB) error {
		if err := storage.CreateUser(tx, user); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errDuplicateUser
			}
			return err
		}

		var err error
		resp, err = a.issueSession(tx, user)
		return err
	})
	if err != nil {
		if errors.Is(err, errDuplicateUser) {
			respondError(c, http.StatusBadRequest, msgDuplicateUser)
			return
		}
		respondInternalError(c, err, "Failed to register user")
		return
	}

	respondData(c, http.StatusCreated, "User registered successfully", resp)
}
