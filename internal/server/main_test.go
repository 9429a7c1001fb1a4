package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"chirper/internal/config"
	"chirper/internal/database"
	"chirper/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:           "0",
		SessionSecret:  "test-session-secret-long-enough-for-hmac",
		AllowedOrigins: "*",
		Env:            "test",
	}
}

// newTestApp builds a server over an in-memory database with the full
// route table. Metrics middleware stays off so the default Prometheus
// registry is not touched between tests.
func newTestApp(t *testing.T, redisClient *redis.Client) (*Server, *fiber.App) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "open sqlite")
	require.NoError(t, database.Migrate(db), "migrate sqlite")

	srv := NewServerWithDeps(testConfig(), db, redisClient)
	app := fiber.New()
	srv.SetupRoutes(app)
	return srv, app
}

// testSession carries a logged-in user's cookies and anti-forgery token
// across requests, the way a browser would.
type testSession struct {
	userID  uint
	cookies []*http.Cookie
	csrf    string
}

func (s *testSession) apply(req *http.Request, withCSRF bool) {
	for _, c := range s.cookies {
		req.AddCookie(c)
	}
	if withCSRF {
		req.Header.Set("X-CSRF-Token", s.csrf)
	}
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string, sess *testSession, withCSRF bool) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if sess != nil {
		sess.apply(req, withCSRF)
	}
	resp, err := app.Test(req)
	require.NoError(t, err, "app.Test")
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dest interface{}) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// signupUser registers a user through the API and returns a live session.
func signupUser(t *testing.T, app *fiber.App, username string) *testSession {
	t.Helper()
	body := fmt.Sprintf(`{"username":%q,"email":"%s@example.com","password":"hunter22"}`,
		username, username)
	resp := doJSON(t, app, http.MethodPost, "/signup", body, nil, false)
	require.Equal(t, http.StatusCreated, resp.StatusCode, "signup %s", username)

	sess := &testSession{cookies: resp.Cookies()}
	var parsed struct {
		User      models.User `json:"user"`
		CSRFToken string      `json:"csrf_token"`
	}
	decodeBody(t, resp, &parsed)
	sess.userID = parsed.User.ID
	sess.csrf = parsed.CSRFToken
	require.NotZero(t, sess.userID)
	require.NotEmpty(t, sess.csrf)
	return sess
}

// postMessage creates a message and returns its id.
func postMessage(t *testing.T, app *fiber.App, sess *testSession, text string) uint {
	t.Helper()
	body := fmt.Sprintf(`{"text":%q}`, text)
	resp := doJSON(t, app, http.MethodPost, "/messages/new", body, sess, true)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var parsed struct {
		Message models.Message `json:"message"`
	}
	decodeBody(t, resp, &parsed)
	require.NotZero(t, parsed.Message.ID)
	return parsed.Message.ID
}
