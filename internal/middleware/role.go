package middleware

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/Windi-Fikriyansyah/tourguide_be/internal/models"
	"github.com/Windi-Fikriyansyah/tourguide_be/internal/store"
)

type RoleLookup interface {
	RoleOf(ctx context.Context, email string) (models.Role, error)
}

// RequireRoles must run after VerifyToken. The role comes from the users
// collection, never from the token, so a role change applies immediately.
func RequireRoles(users RoleLookup, log *logrus.Logger, allowed ...models.Role) fiber.Handler {
	allowedSet := map[models.Role]bool{}
	for _, r := range allowed {
		allowedSet[r] = true
	}

	return func(c *fiber.Ctx) error {
		email := Email(c)
		if email == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized access: No token provided",
			})
		}

		role, err := users.RoleOf(c.UserContext(), email)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			log.WithError(err).WithField("email", email).Error("role lookup failed")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to verify role",
			})
		}
		if !allowedSet[role] {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Forbidden access: Insufficient role",
			})
		}

		c.Locals("role", role)
		return c.Next()
	}
}
