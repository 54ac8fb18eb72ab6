package authapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	gormlog "gorm.io/gorm/logger"

	"github.com/charleshuang3/taskvault/internal/gormw"
	"github.com/charleshuang3/taskvault/internal/models"
	"github.com/charleshuang3/taskvault/internal/tokens"
)

func setupTestAPI(t *testing.T) (*API, *gormw.DB, *gin.Engine) {
	t.Helper()

	db, err := gormw.Open(&gormw.Config{
		LogLevel: gormlog.Silent,
	})
	require.NoError(t, err)

	err = db.Migrate()
	require.NoError(t, err)

	issuer, err := tokens.NewIssuer(&tokens.Config{
		AccessSecret:  "test-access-secret",
		RefreshSecret: "test-refresh-secret",
		AccessExpiry:  "15m",
		RefreshExpiry: "7d",
	})
	require.NoError(t, err)

	api := New(db, issuer)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	api.RegisterHandlers(router.Group("/api/auth"))

	return api, db, router
}

// createTestUser inserts a user directly so login tests do not depend
// on the register handler.
func createTestUser(t *testing.T, db *gormw.DB, email, password, name string) *models.User {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := &models.User{
		Email:          email,
		Name:           name,
		HashedPassword: string(hashedPassword),
	}
	err = db.Create(user).Error
	require.NoError(t, err)

	return user
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	encoded, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, path, bytes.NewReader(encoded))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type authResponseBody struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         *struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	} `json:"user"`
}

func decodeAuthResponse(t *testing.T, rec *httptest.ResponseRecorder) *authResponseBody {
	t.Helper()

	env := &envelope{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), env))
	require.True(t, env.Success)

	resp := &authResponseBody{}
	require.NoError(t, json.Unmarshal(env.Data, resp))
	return resp
}
