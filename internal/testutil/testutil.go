package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"timeline-app/config"
	"timeline-app/database"
	routes "timeline-app/internal/app/http"
	"timeline-app/internal/domain/content"
	"timeline-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var dbCounter int64

// Setup opens a fresh in-memory database, migrates all domain models,
// points the global handle at it, and returns a router with the full
// route table. Each test gets its own database.
func Setup(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	if config.JWT_SECRET == "" {
		config.JWT_SECRET = "test-secret"
	}

	name := fmt.Sprintf("file:testdb_%d?mode=memory&cache=shared", atomic.AddInt64(&dbCounter, 1))
	db, err := gorm.Open(sqlite.Open(name), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB = db

	r := gin.New()
	routes.RegisterRoutes(r)
	return db, r
}

// CreateUser inserts a user and returns it.
func CreateUser(t *testing.T, db *gorm.DB, username string) users.User {
	t.Helper()
	u := users.User{
		Name:         username,
		Username:     username,
		Email:        username + "@example.com",
		AuthProvider: "local",
		Role:         "user",
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}

// Token signs an app JWT for a user, same claims the login handler issues.
func Token(t *testing.T, u users.User) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id":  u.ID,
		"username": u.Username,
		"role":     u.Role,
		"exp":      time.Now().Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(config.JWT_SECRET))
	require.NoError(t, err)
	return signed
}

// SeedPlatform inserts a social media platform row (YouTube by default).
func SeedPlatform(t *testing.T, db *gorm.DB) content.SocialMediaPlatform {
	t.Helper()
	p := content.SocialMediaPlatform{Name: "YouTube"}
	require.NoError(t, db.Create(&p).Error)
	return p
}

// Do performs a JSON request against the router and records the response.
func Do(r http.Handler, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// Decode unmarshals a recorded JSON response body.
func Decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}
