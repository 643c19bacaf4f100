package utils_test

import (
	"net/http/httptest"
	"testing"

	"lifelessons/backend/config"
	"lifelessons/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func extractWith(t *testing.T, cfg *config.Config, header string) (string, error) {
	t.Helper()

	var email string
	var extractErr error

	app := fiber.New()
	app.Get("/t", func(c *fiber.Ctx) error {
		email, extractErr = utils.ExtractEmailFromToken(c, cfg)
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("GET", "/t", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	_, err := app.Test(req)
	assert.NoError(t, err)

	return email, extractErr
}

func TestTokenRoundTrip(t *testing.T) {
	cfg := &config.Config{JWTSecret: "testsecret"}

	token, err := utils.GenerateToken("a@x.com", cfg)
	assert.NoError(t, err)

	email, err := extractWith(t, cfg, token)
	assert.NoError(t, err)
	assert.Equal(t, "a@x.com", email)
}

func TestTokenBearerPrefix(t *testing.T) {
	cfg := &config.Config{JWTSecret: "testsecret"}

	token, err := utils.GenerateToken("a@x.com", cfg)
	assert.NoError(t, err)

	email, err := extractWith(t, cfg, "Bearer "+token)
	assert.NoError(t, err)
	assert.Equal(t, "a@x.com", email)
}

func TestTokenMissingHeader(t *testing.T) {
	cfg := &config.Config{JWTSecret: "testsecret"}

	_, err := extractWith(t, cfg, "")
	assert.Error(t, err)
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := utils.GenerateToken("a@x.com", &config.Config{JWTSecret: "one"})
	assert.NoError(t, err)

	_, err = extractWith(t, &config.Config{JWTSecret: "two"}, token)
	assert.Error(t, err)
}
