package authapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/charleshuang3/taskvault/internal/models"
	"github.com/charleshuang3/taskvault/internal/storage"
)

type refreshParams struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

func (a *API) handleRefresh(c *gin.Context) {
	params := &refreshParams{}

	if err := c.ShouldBindJSON(params); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	// Signature and claim expiry first.
	claims, err := a.issuer.VerifyRefresh(params.RefreshToken)
	if err != nil {
		respondError(c, http.StatusUnauthorized, msgInvalidRefreshToken)
		return
	}

	// Then the ledger. A signed token that is not in the ledger was
	// already rotated, revoked or swept; honoring it would defeat
	// single-use rotation.
	stored, err := storage.GetRefreshTokenByToken(a.db, params.RefreshToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn().Str("user_id", claims.UserID).Msg("Refresh token verified but not in ledger, replayed or revoked")
			respondError(c, http.StatusUnauthorized, msgInvalidRefreshToken)
			return
		}
		respondInternalError(c, err, "Database error fetching refresh token")
		return
	}

	// Ledger expiry is authoritative alongside the claim expiry; a
	// stored expiry of exactly now counts as expired.
	if !stored.ExpiresAt.After(time.Now()) {
		respondError(c, http.StatusUnauthorized, msgInvalidRefreshToken)
		return
	}

	accessToken, err := a.issuer.IssueAccess(*claims)
	if err != nil {
		respondInternalError(c, err, "Failed to issue access token")
		return
	}

	refreshToken, expiresAt, err := a.issuer.IssueRefresh(*claims)
	if err != nil {
		respondInternalError(c, err, "Failed to issue refresh token")
		return
	}

	err = storage.RotateRefreshToken(a.db, params.RefreshToken, &models.RefreshToken{
		Token:     refreshToken,
		UserID:    claims.UserID,
		ExpiresAt: expiresAt,
	})
	if err != nil {
		if errors.Is(err, storage.ErrRefreshTokenConsumed) {
			// Lost the race against a concurrent refresh of the same
			// token; only one of them may mint a session.
			respondError(c, http.StatusUnauthorized, msgInvalidRefreshToken)
			return
		}
		respondInternalError(c, err, "Failed to rotate refresh token")
		return
	}

	respondData(c, http.StatusOK, "Token refreshed successfully", &authResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

// handleLogout revokes a refresh token. It is idempotent: an unknown or
// already revoked token still acknowledges success.
func (a *API) handleLogout(c *gin.Context) {
	params := &refreshParams{}

	// A missing token body is treated the same as an unknown token.
	_ = c.ShouldBindJSON(params)

	if err := storage.DeleteRefreshToken(a.db, params.RefreshToken); err != nil {
		respondInternalError(c, err, "Database error during logout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logout successful",
	})
}
