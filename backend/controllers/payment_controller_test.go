package controllers_test

import (
	"fmt"
	"testing"

	"lifelessons/backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestCreateCheckoutSessionRequiresAuth(t *testing.T) {
	env := setupEnv(t)

	resp := env.request(t, "POST", "/create-checkout-session", nil, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestCreateCheckoutSessionUnknownUser(t *testing.T) {
	env := setupEnv(t)

	resp := env.request(t, "POST", "/create-checkout-session", nil, env.token(t, "ghost@x.com"))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCreateCheckoutSession(t *testing.T) {
	env := setupEnv(t)
	user := env.createUser(t, "payer@x.com", models.RoleUser)

	resp := env.request(t, "POST", "/create-checkout-session", nil, env.token(t, "payer@x.com"))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, env.sessions.url, decode(t, resp)["url"])

	// The provider gets the internal user id, never a client-supplied price.
	assert.Equal(t, fmt.Sprintf("%d", user.ID), env.sessions.lastInput.UserID)
	assert.Equal(t, "payer@x.com", env.sessions.lastInput.UserEmail)
}
