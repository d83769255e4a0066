package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Windi-Fikriyansyah/tourguide_be/internal/utils"
)

const (
	LocalClaims = "claims"
	LocalEmail  = "email"
)

// VerifyToken requires "Authorization: Bearer <jwt>". No header is 401, any
// token that fails verification is 403.
func VerifyToken(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		h := c.Get(fiber.HeaderAuthorization)
		if h == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized access: No token provided",
			})
		}

		claims, err := utils.ParseJWT(bearerToken(h), secret)
		if err != nil {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Forbidden access: Invalid token",
			})
		}

		c.Locals(LocalClaims, claims)
		c.Locals(LocalEmail, claims.Email)
		return c.Next()
	}
}

func bearerToken(h string) string {
	scheme, tok, ok := strings.Cut(strings.TrimSpace(h), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(tok)
}

// Email returns the caller's email set by VerifyToken, or "".
func Email(c *fiber.Ctx) string {
	v, _ := c.Locals(LocalEmail).(string)
	return v
}
