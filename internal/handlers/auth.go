package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/Windi-Fikriyansyah/tourguide_be/internal/utils"
)

type AuthHandler struct {
	JWTSecret string
	TTL       time.Duration
	Log       *logrus.Logger
}

type TokenReq struct {
	Email string `json:"email" validate:"required,email"`
}

// IssueToken signs a token for the email in the body. Extra fields are ignored.
func (h *AuthHandler) IssueToken(c *fiber.Ctx) error {
	var req TokenReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validate.Struct(req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Valid email required")
	}

	token, err := utils.SignJWT(h.JWTSecret, req.Email, h.TTL)
	if err != nil {
		h.Log.WithError(err).Error("sign token")
		return fail(c, fiber.StatusInternalServerError, "Failed to issue token")
	}
	return c.JSON(fiber.Map{"token": token})
}
