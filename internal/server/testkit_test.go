package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"inkwell/internal/config"
	"inkwell/internal/database"
)

// setupTestServer builds a server on an in-memory sqlite database with the
// session middleware and routes mounted.
func setupTestServer(t *testing.T) (*fiber.App, *Server) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{Port: "0", DBName: "test", Env: "test"}
	srv := NewServerWithDeps(cfg, db, nil)

	app := fiber.New()
	app.Use(srv.SessionMiddleware())
	srv.SetupRoutes(app)
	return app, srv
}

// doJSON performs a JSON request against the app, attaching any cookies.
func doJSON(t *testing.T, app *fiber.App, method, path string, body any, cookies []*http.Cookie) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// decodeJSON reads the response body into a generic map.
func decodeJSON(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// signUp registers a fresh account and returns its session cookies.
func signUp(t *testing.T, app *fiber.App, username, password string) []*http.Cookie {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/api/auth/register", map[string]string{
		"user":     username,
		"password": password,
		"verify":   password,
	}, nil)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	cookies := resp.Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

// createPost creates a post as the given session and returns its ID.
func createPost(t *testing.T, app *fiber.App, cookies []*http.Cookie, title, text string) uint {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/api/posts", map[string]string{
		"title": title,
		"text":  text,
	}, cookies)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeJSON(t, resp)
	id, ok := body["id"].(float64)
	require.True(t, ok, "response should carry the new post id")
	return uint(id)
}
