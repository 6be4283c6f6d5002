// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"todoapp-server/db"
	"todoapp-server/middlewares"
	"todoapp-server/models"

	"github.com/labstack/echo/v4"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestServer wires the handlers onto a fresh echo instance backed by a
// throwaway sqlite database, mirroring the production route table.
func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := conn.AutoMigrate(models.AllModels...); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	db.Conn = conn

	e := echo.New()
	users := e.Group("/users")
	users.POST("/", SignupHandler)
	users.POST("/login", LoginHandler)
	users.POST("/logout", LogoutHandler, middlewares.VerifyAPIKeyMiddleware)
	users.PATCH("/", UpdateUserHandler, middlewares.VerifyAPIKeyMiddleware)

	todos := e.Group("/todos", middlewares.VerifyAPIKeyMiddleware)
	todos.GET("/", GetTodosHandler)
	todos.GET("/search", SearchTodosHandler)
	todos.POST("/", CreateTodoHandler)
	todos.PATCH("/:todo_id", UpdateTodoHandler)
	todos.DELETE("/:todo_id", DeleteTodoHandler)
	return e
}

func doRequest(e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(middlewares.APIKeyHeader, token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("Failed to decode response %q: %v", rec.Body.String(), err)
	}
}

// signupAndLogin registers a user and returns their API key token.
func signupAndLogin(t *testing.T, e *echo.Echo, username string) string {
	t.Helper()
	body := `{"username": "` + username + `", "email": "` + username + `@example.com", "password": "password123"}`
	rec := doRequest(e, http.MethodPost, "/users/", "", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("Signup failed with status %d: %s", rec.Code, rec.Body.String())
	}

	loginBody := `{"username": "` + username + `", "password": "password123"}`
	rec = doRequest(e, http.MethodPost, "/users/login", "", loginBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("Login failed with status %d: %s", rec.Code, rec.Body.String())
	}
	var login LoginResponse
	decodeBody(t, rec, &login)
	if login.Token == "" {
		t.Fatal("Login returned an empty token")
	}
	return login.Token
}
