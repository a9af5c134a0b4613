// Package testutil wires handler tests to a throwaway in-memory SQLite
// database and a real router, so every test exercises the same middleware
// and binding path production requests take.
package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"round-tracker/config"
	"round-tracker/database"
	routes "round-tracker/internal/app/http"
	"round-tracker/internal/domain/activities"
	"round-tracker/internal/domain/periods"
	"round-tracker/internal/domain/rounds"
	"round-tracker/internal/domain/users"
	"round-tracker/internal/refcache"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var dbSeq atomic.Int64

// SetupDB opens a fresh in-memory database, migrates the schema, and points
// the global handle at it. The reference cache is flushed so tests cannot
// see each other's entries.
func SetupDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&users.User{},
		&periods.DatePeriod{},
		&rounds.Round{},
		&rounds.ParcelType{},
		&activities.Activity{},
		&activities.ActivityImage{},
	))

	database.DB = db
	refcache.Ref.Flush()
	config.JWT_SECRET = "test-secret"
	return db
}

func Router() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	routes.RegisterRoutes(r)
	return r
}

func CreateUser(t *testing.T, db *gorm.DB, email string) users.User {
	t.Helper()
	u := users.User{Name: "Test", Email: email, AuthProvider: "local"}
	require.NoError(t, db.Create(&u).Error)
	return u
}

// Token mints a bearer token the way the auth handlers do.
func Token(t *testing.T, userID uint) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"email":   fmt.Sprintf("user%d@example.com", userID),
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	s, err := tok.SignedString([]byte(config.JWT_SECRET))
	require.NoError(t, err)
	return s
}

// DoJSON runs one request through the router and returns the recorder.
func DoJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// Decode unmarshals a recorder body into out.
func Decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}
