// Package middleware holds gin middlewares shared by handler packages.
package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/charleshuang3/taskvault/internal/storage"
	"github.com/charleshuang3/taskvault/internal/tokens"
)

const (
	KeyUserID    = "AUTH_USER_ID"
	KeyUserEmail = "AUTH_USER_EMAIL"
)

// RequireAuth verifies the bearer access token and attaches the caller's
// identity to the request context. Access tokens are checked purely by
// signature, never against the ledger: a leaked one stays usable until
// its short expiry, which is the accepted exposure window.
func RequireAuth(issuer *tokens.Issuer, cache *storage.VerifiedTokenCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || token == "" {
			unauthorized(c)
			return
		}

		claims, ok := cache.Get(token)
		if !ok {
			var err error
			claims, err = issuer.VerifyAccess(token)
			if err != nil {
				unauthorized(c)
				return
			}
			cache.Set(token, claims, time.Until(claims.ExpiresAt))
		}

		c.Set(KeyUserID, claims.UserID)
		c.Set(KeyUserEmail, claims.Email)
		c.Next()
	}
}

// UserID returns the authenticated user id set by RequireAuth.
func UserID(c *gin.Context) string {
	return c.GetString(KeyUserID)
}

// UserEmail returns the authenticated user email set by RequireAuth.
func UserEmail(c *gin.Context) string {
	return c.GetString(KeyUserEmail)
}

func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": "Invalid or expired access token",
	})
}
