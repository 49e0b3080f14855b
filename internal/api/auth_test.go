package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"coinshop/internal/domain"
	"coinshop/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&domain.User{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func newAuthRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/auth/register", RegisterHandler(db, "secret"))
	r.POST("/api/auth/login", LoginHandler(db, "secret"))
	return r
}

func postJSON(r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerAlice(r *gin.Engine) *httptest.ResponseRecorder {
	return postJSON(r, "/api/auth/register", gin.H{
		"name":     "Alice",
		"username": "alice",
		"email":    "alice@example.com",
		"password": "correct-horse",
	})
}

func TestRegisterCreditsSignupBonus(t *testing.T) {
	db := newTestDB(t)
	r := newAuthRouter(db)

	w := registerAlice(r)
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp AuthResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "alice", resp.User.Username)
	assert.Equal(t, domain.RoleUser, resp.User.Role)
	assert.Equal(t, float64(1000), resp.User.Wallet)

	// The bonus is credited exactly once, at creation
	var stored domain.User
	assert.NoError(t, db.Where("username = ?", "alice").First(&stored).Error)
	assert.Equal(t, float64(1000), stored.Wallet)
}

func TestRegisterDuplicateUsernameOrEmail(t *testing.T) {
	db := newTestDB(t)
	r := newAuthRouter(db)

	assert.Equal(t, http.StatusCreated, registerAlice(r).Code)

	// Same username, different email
	w := postJSON(r, "/api/auth/register", gin.H{
		"name":     "Other Alice",
		"username": "alice",
		"email":    "other@example.com",
		"password": "correct-horse",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Same email, different username
	w = postJSON(r, "/api/auth/register", gin.H{
		"name":     "Bob",
		"username": "bob",
		"email":    "alice@example.com",
		"password": "correct-horse",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Only the original row exists
	var count int64
	assert.NoError(t, db.Model(&domain.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRegisterStoreFailure(t *testing.T) {
	db := newTestDB(t)
	r := newAuthRouter(db)

	// A broken store must surface as a generic 500, not a conflict
	assert.NoError(t, db.Migrator().DropTable(&domain.User{}))

	w := registerAlice(r)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestLoginUniformErrorShape(t *testing.T) {
	db := newTestDB(t)
	r := newAuthRouter(db)

	assert.Equal(t, http.StatusCreated, registerAlice(r).Code)

	wrongPassword := postJSON(r, "/api/auth/login", gin.H{
		"username": "alice",
		"password": "wrong-horse",
	})
	unknownUser := postJSON(r, "/api/auth/login", gin.H{
		"username": "mallory",
		"password": "correct-horse",
	})

	// Same status and same body for both failures, so the response
	// cannot be used to probe which usernames exist.
	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	assert.JSONEq(t, wrongPassword.Body.String(), unknownUser.Body.String())
}

func TestLoginReturnsAcceptedToken(t *testing.T) {
	db := newTestDB(t)
	r := newAuthRouter(db)

	assert.Equal(t, http.StatusCreated, registerAlice(r).Code)

	w := postJSON(r, "/api/auth/login", gin.H{
		"username": "alice",
		"password": "correct-horse",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp AuthResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "alice", resp.User.Username)

	// The issued token must resolve back to the same user
	claims, err := utils.ParseJWT(resp.Token, "secret")
	assert.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
}
