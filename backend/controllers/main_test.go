package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"lifelessons/backend/config"
	"lifelessons/backend/models"
	"lifelessons/backend/payments"
	"lifelessons/backend/routes"
	"lifelessons/backend/utils"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// stubSessions stands in for the payment provider.
type stubSessions struct {
	lastInput payments.SessionInput
	url       string
	err       error
}

func (s *stubSessions) CreateCheckoutSession(_ context.Context, in payments.SessionInput) (*payments.Session, error) {
	s.lastInput = in
	if s.err != nil {
		return nil, s.err
	}
	return &payments.Session{ID: "cs_test_123", URL: s.url}, nil
}

type testEnv struct {
	app      *fiber.App
	db       *gorm.DB
	cfg      *config.Config
	sessions *stubSessions
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	// A second pooled connection would see its own empty in-memory database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get underlying SQL DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := utils.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	cfg := &config.Config{
		JWTSecret:  "testsecret",
		SiteDomain: "http://localhost:5173",
	}

	sessions := &stubSessions{url: "https://checkout.test/session/cs_test_123"}

	app := fiber.New()
	routes.SetupRoutes(app, db, cfg, sessions)

	return &testEnv{app: app, db: db, cfg: cfg, sessions: sessions}
}

func (e *testEnv) token(t *testing.T, email string) string {
	t.Helper()
	token, err := utils.GenerateToken(email, e.cfg)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	return token
}

// createUser inserts a user row directly, bypassing the handler.
func (e *testEnv) createUser(t *testing.T, email, role string) models.User {
	t.Helper()
	user := models.User{
		Name:        "Test User",
		Email:       email,
		Role:        role,
		AccessLevel: models.AccessFree,
	}
	if err := e.db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return user
}

func (e *testEnv) request(t *testing.T, method, path string, body interface{}, token string) *http.Response {
	t.Helper()

	var buf *bytes.Buffer
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal body: %v", err)
		}
		buf = bytes.NewBuffer(jsonData)
	} else {
		buf = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := e.app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return result
}

func decodeList(t *testing.T, resp *http.Response) []map[string]interface{} {
	t.Helper()
	var result []map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return result
}
