// Package authapi implements the first party email + password auth
// flows: register, login, refresh and logout.
package authapi

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/charleshuang3/taskvault/internal/gormw"
	"github.com/charleshuang3/taskvault/internal/models"
	"github.com/charleshuang3/taskvault/internal/storage"
	"github.com/charleshuang3/taskvault/internal/tokens"
)

var (
	logger = log.With().Str("component", "authapi").Logger()
)

type API struct {
	db     *gormw.DB
	issuer *tokens.Issuer
}

func New(db *gormw.DB, issuer *tokens.Issuer) *API {
	return &API{
		db:     db,
		issuer: issuer,
	}
}

func (a *API) RegisterHandlers(rg *gin.RouterGroup) {
	rg.POST("/register", a.handleRegister)
	rg.POST("/login", a.handleLogin)
	rg.POST("/refresh", a.handleRefresh)
	rg.POST("/logout", a.handleLogout)
}

type publicUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type authResponse struct {
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	User         *publicUser `json:"user,omitempty"`
}

// issueSession mints the token pair for user, prunes the user's expired
// ledger rows and stores the new refresh row. Only expired rows are
// pruned: the user's other live sessions stay valid, multiple
// concurrent sessions are supported.
func (a *API) issueSession(db *gormw.DB, user *models.User) (*authResponse, error) {
	claims := tokens.Claims{UserID: user.ID, Email: user.Email}

	accessToken, err := a.issuer.IssueAccess(claims)
	if err != nil {
		return nil, err
	}

	refreshToken, expiresAt, err := a.issuer.IssueRefresh(claims)
	if err != nil {
		return nil, err
	}

	if err := storage.PruneExpiredRefreshTokens(db, user.ID); err != nil {
		return nil, err
	}

	if err := storage.AddRefreshToken(db, &models.RefreshToken{
		Token:     refreshToken,
		UserID:    user.ID,
		ExpiresAt: expiresAt,
	}); err != nil {
		return nil, err
	}

	return &authResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: &publicUser{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
		},
	}, nil
}
