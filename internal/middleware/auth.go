package middleware

import (
	"context"
	"log"

	"devurai/internal/models"

	"github.com/gofiber/fiber/v2"
)

// TokenHeader is the request header carrying the bearer token.
const TokenHeader = "x-access-token"

const (
	userKey  = "user"
	tokenKey = "token"
)

// TokenVerifier resolves a token of the given purpose to its owner.
type TokenVerifier interface {
	Verify(ctx context.Context, token, access string) (*models.User, error)
}

// Authenticate is a Fiber middleware that admits only requests carrying a
// valid, unrevoked token for access. Every rejection is a bare 401.
func Authenticate(verifier TokenVerifier, access string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Get(TokenHeader)
		if token == "" {
			return unauthorized(c)
		}

		user, err := verifier.Verify(c.UserContext(), token, access)
		if err != nil {
			log.Printf("Token verification failed: %v", err)
			return unauthorized(c)
		}

		c.Locals(userKey, user)
		c.Locals(tokenKey, token)
		return c.Next()
	}
}

// CurrentUser returns the user attached by Authenticate.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userKey).(*models.User)
	return user
}

// CurrentToken returns the token the request was authenticated with.
func CurrentToken(c *fiber.Ctx) string {
	token, _ := c.Locals(tokenKey).(string)
	return token
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{})
}
