package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/Windi-Fikriyansyah/tourguide_be/internal/models"
)

var validate = validator.New()

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": message})
}

// parseDocument reads a JSON object body. An empty body is an empty document.
func parseDocument(c *fiber.Ctx) (models.Document, error) {
	doc := models.Document{}
	if len(c.Body()) == 0 {
		return doc, nil
	}
	if err := c.BodyParser(&doc); err != nil {
		return nil, err
	}
	if doc == nil {
		doc = models.Document{}
	}
	return doc, nil
}

func validEmail(email string) bool {
	return validate.Var(email, "required,email") == nil
}
