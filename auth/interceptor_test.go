package auth_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nikitapn/npchat/auth"
	"github.com/stretchr/testify/require"
)

func TestMiddleware(t *testing.T) {
	secret := []byte("test_secret_long_enough_for_hmac")
	app := fiber.New()
	app.Get("/whoami", auth.Middleware(secret), func(c *fiber.Ctx) error {
		userID, ok := auth.UserID(c.Locals(auth.UserIDKey))
		if !ok {
			return fiber.ErrInternalServerError
		}
		return c.JSON(fiber.Map{"user_id": userID})
	})

	token, err := auth.GenerateToken(secret, 7, time.Hour)
	require.NoError(t, err)

	t.Run("should accept a bearer token", func(t *testing.T) {
		req := require.New(t)
		r := httptest.NewRequest("GET", "/whoami", nil)
		r.Header.Set("Authorization", "Bearer "+token)

		resp, err := app.Test(r)
		req.NoError(err)
		req.Equal(fiber.StatusOK, resp.StatusCode)
	})

	t.Run("should accept a token in the query", func(t *testing.T) {
		req := require.New(t)
		resp, err := app.Test(httptest.NewRequest("GET", "/whoami?token="+token, nil))
		req.NoError(err)
		req.Equal(fiber.StatusOK, resp.StatusCode)
	})

	t.Run("should reject a missing token", func(t *testing.T) {
		req := require.New(t)
		resp, err := app.Test(httptest.NewRequest("GET", "/whoami", nil))
		req.NoError(err)
		req.Equal(fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("should reject an invalid token", func(t *testing.T) {
		req := require.New(t)
		resp, err := app.Test(httptest.NewRequest("GET", "/whoami?token=forged", nil))
		req.NoError(err)
		req.Equal(fiber.StatusUnauthorized, resp.StatusCode)
	})
}
