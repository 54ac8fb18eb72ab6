package authapi

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charleshuang3/taskvault/internal/models"
	"github.com/charleshuang3/taskvault/internal/storage"
)

func TestHandleLogin_Success(t *testing.T) {
	_, db, router := setupTestAPI(t)
	user := createTestUser(t, db, "a@x.com", "correctpassword", "Alice")

	rec := postJSON(t, router, "/api/auth/login", map[string]string{
		"email":    "a@x.com",
		"password": "correctpassword",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decodeAuthResponse(t, rec)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	require.NotNil(t, resp.User)
	assert.Equal(t, user.ID, resp.User.ID)
}

// "No such user" and "wrong password" must be indistinguishable from
// the outside: same status, same body.
func TestHandleLogin_FailuresIndistinguishable(t *testing.T) {
	_, db, router := setupTestAPI(t)
	createTestUser(t, db, "a@x.com", "correctpassword", "Alice")

	wrongPassword := postJSON(t, router, "/api/auth/login", map[string]string{
		"email":    "a@x.com",
		"password": "wrongpassword",
	})
	noSuchUser := postJSON(t, router, "/api/auth/login", map[string]string{
		"email":    "nobody@x.com",
		"password": "anypassword",
	})

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, noSuchUser.Code)
	assert.Equal(t, wrongPassword.Body.String(), noSuchUser.Body.String())
}

// Two logins in a row mint distinct refresh tokens and neither revokes
// the other: concurrent sessions are supported.
func TestHandleLogin_MultipleSessions(t *testing.T) {
	_, _, router := setupTestAPI(t)

	rec := postJSON(t, router, "/api/auth/register", map[string]string{
		"email":    "a@x.com",
		"password": "secret1",
		"name":     "Alice",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	login := func() *authResponseBody {
		rec := postJSON(t, router, "/api/auth/login", map[string]string{
			"email":    "a@x.com",
			"password": "secret1",
		})
		require.Equal(t, http.StatusOK, rec.Code)
		return decodeAuthResponse(t, rec)
	}

	first := login()
	second := login()
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	// Both sessions refresh independently.
	refresh := func(token string) int {
		rec := postJSON(t, router, "/api/auth/refresh", map[string]string{
			"refreshToken": token,
		})
		return rec.Code
	}
	assert.Equal(t, http.StatusOK, refresh(first.RefreshToken))
	assert.Equal(t, http.StatusOK, refresh(second.RefreshToken))
}

// Login prunes the user's expired ledger rows but leaves live sessions
// alone.
func TestHandleLogin_PrunesExpiredRowsOnly(t *testing.T) {
	_, db, router := setupTestAPI(t)
	user := createTestUser(t, db, "a@x.com", "correctpassword", "Alice")

	require.NoError(t, storage.AddRefreshToken(db, &models.RefreshToken{
		Token:     "expired-session",
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(-time.Hour),
	}))
	require.NoError(t, storage.AddRefreshToken(db, &models.RefreshToken{
		Token:     "live-session",
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	rec := postJSON(t, router, "/api/auth/login", map[string]string{
		"email":    "a@x.com",
		"password": "correctpassword",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	_, err := storage.GetRefreshTokenByToken(db, "expired-session")
	assert.Error(t, err)
	_, err = storage.GetRefreshTokenByToken(db, "live-session")
	assert.NoError(t, err)
}
