package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/erazemk/popis/internal/db"
	"github.com/erazemk/popis/internal/store"
)

// Test account created by NewTestServer.
const (
	TestJWTSecret = "test-secret"
	TestEmail     = "admin@example.com"
	TestPassword  = "password"
)

// TestServer is a stand-in API server backed by an in-memory database.
type TestServer struct {
	*httptest.Server
	DB *sql.DB
}

// APIURL is the base URL a client should use.
func (s *TestServer) APIURL() string {
	return s.URL + "/api"
}

// Login returns a token for the test account.
func (s *TestServer) Login(tb testing.TB) string {
	tb.Helper()
	body, _ := json.Marshal(loginRequest{Email: TestEmail, Password: TestPassword})
	resp, err := http.Post(s.APIURL()+"/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		tb.Fatalf("login request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		tb.Fatalf("login failed: %d", resp.StatusCode)
	}

	var env struct {
		Data loginData `json:"data"`
	}
	json.NewDecoder(resp.Body).Decode(&env)
	if env.Data.Token == "" {
		tb.Fatal("empty token from login")
	}
	return env.Data.Token
}

// NewTestServer starts a stand-in API server with one registered account.
func NewTestServer(tb testing.TB) *TestServer {
	tb.Helper()
	database := db.NewTestDB(tb)

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		tb.Fatalf("hashing password: %v", err)
	}
	if _, err := store.CreateUser(context.Background(), database, "Admin", TestEmail, string(hash)); err != nil {
		tb.Fatalf("creating test user: %v", err)
	}

	server := httptest.NewServer(NewRouter(database, Options{JWTSecret: TestJWTSecret}))
	tb.Cleanup(server.Close)

	return &TestServer{Server: server, DB: database}
}
