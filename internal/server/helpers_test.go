package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/yomanino/EcoRed-EcoTrama/internal/config"
	"github.com/yomanino/EcoRed-EcoTrama/internal/database"
	"github.com/yomanino/EcoRed-EcoTrama/internal/session"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

// newTestServer builds a Server against a private in-memory database and a
// memory session store, with all routes mounted on a fresh Fiber app.
func newTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()

	db, err := database.ConnectTest()
	require.NoError(t, err)

	cfg := &config.Config{Port: "5000", Env: "test"}
	s := NewServerWithDeps(cfg, db, nil, session.NewMemoryStore(session.DefaultTTL))

	app := fiber.New()
	s.SetupRoutes(app)
	return s, app
}

func jsonRequest(method, target string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == SessionCookie && c.Value != "" {
			return c
		}
	}
	t.Fatalf("response did not set the %s cookie", SessionCookie)
	return nil
}

// registerUser creates an account through the public endpoint and returns
// the session cookie issued with it.
func registerUser(t *testing.T, app *fiber.App, email, name string) *http.Cookie {
	t.Helper()

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/register", fiber.Map{
		"email":    email,
		"password": "secret1",
		"name":     name,
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return sessionCookie(t, resp)
}
