package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/nikitapn/npchat/domain"
)

// UserIDKey is the request local holding the authenticated domain.UserID.
const UserIDKey = "user_id"

// Middleware authenticates a request before the websocket upgrade.
// The token is read from the "Authorization: Bearer" header, or from the
// "token" query parameter since browsers cannot set headers on a websocket.
// The user identity is stored in the request locals for the handlers.
func Middleware(secret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
		if tokenStr == "" {
			tokenStr = c.Query("token")
		}
		if tokenStr == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "authorization token is missing")
		}

		claims, err := ValidateToken(secret, tokenStr)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired token")
		}

		c.Locals(UserIDKey, domain.UserID(claims.UserID))
		return c.Next()
	}
}

// UserID reads back the identity stored by Middleware from a local value.
func UserID(local any) (domain.UserID, bool) {
	userID, ok := local.(domain.UserID)
	return userID, ok && userID != 0
}
