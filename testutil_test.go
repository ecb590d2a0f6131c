package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"trackex/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() Config {
	return Config{
		Port:      "0",
		DBDriver:  "sqlite",
		DBDSN:     ":memory:",
		JWTSecret: []byte("test-secret"),
		TokenTTL:  time.Hour,
	}
}

// newTestApp builds an App over a fresh in-memory sqlite database.
func newTestApp(t *testing.T) *App {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	db, err := openDB(cfg)
	require.NoError(t, err, "failed to open test database")
	app, err := NewApp(db, cfg)
	require.NoError(t, err)
	return app
}

func newTestServer(t *testing.T) (*App, *gin.Engine) {
	t.Helper()
	app := newTestApp(t)
	r := gin.New()
	app.setupRoutes(r)
	return app, r
}

// seedUser inserts a user directly, with a cheap hash to keep tests fast.
func seedUser(t *testing.T, app *App, username, email string) *models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{Username: username, Email: email, HashedPassword: hashed}
	require.NoError(t, app.db.Create(&user).Error)
	return &user
}

func seedExpense(t *testing.T, app *App, userID uint, amount float64, category, date string) *models.Expense {
	t.Helper()
	expense, err := app.CreateExpense(userID, amount, category, date, "")
	require.NoError(t, err)
	return expense
}

// performRequest drives the router the way the teacher test suite does:
// optional JSON body, optional bearer token.
func performRequest(r http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}
	req, _ := http.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return out
}
