package authapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	msgInvalidCredentials  = "Invalid email or password"
	msgInvalidRefreshToken = "Invalid or expired refresh token"
	msgDuplicateUser       = "User with this email already exists"
)

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

// respondInvalidCredentials collapses both failure causes into one
// client-visible response. The precise reason only reaches the server
// log, so operators can tell them apart without handing callers an
// account enumeration oracle.
func respondInvalidCredentials(c *gin.Context, reason, email string) {
	logger.Info().Str("reason", reason).Str("email", email).Msg("Login rejected")
	respondError(c, http.StatusUnauthorized, msgInvalidCredentials)
}

// respondInternalError logs the detail server side and returns an
// opaque 500. A duplicated-key error from the ledger insert means a
// token collision, which should be impossible; log it as an anomaly.
func respondInternalError(c *gin.Context, err error, msg string) {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		logger.Error().Err(err).Msg("Refresh token collision in ledger, this should never happen")
	} else {
		logger.Error().Err(err).Msg(msg)
	}
	respondError(c, http.StatusInternalServerError, "Internal server error")
}
