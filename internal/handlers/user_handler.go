package handlers

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/Windi-Fikriyansyah/tourguide_be/internal/models"
	"github.com/Windi-Fikriyansyah/tourguide_be/internal/realtime"
	"github.com/Windi-Fikriyansyah/tourguide_be/internal/store"
)

type UserStore interface {
	Upsert(ctx context.Context, email string, fields models.Document) (*models.UpdateResult, error)
	FindByEmail(ctx context.Context, email string) (models.Document, error)
	UpdateRole(ctx context.Context, email string, role models.Role) (*models.UpdateResult, error)
}

type UserHandler struct {
	Users  UserStore
	Events realtime.Publisher
	Log    *logrus.Logger
}

func NewUserHandler(users UserStore, events realtime.Publisher, log *logrus.Logger) *UserHandler {
	return &UserHandler{Users: users, Events: events, Log: log}
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// emailParam decodes :email; fiber hands params over still percent-encoded.
// UnescapePath is not used since it decodes '+' as a space.
func emailParam(c *fiber.Ctx) string {
	raw := c.Params("email")
	if dec, err := url.PathUnescape(raw); err == nil {
		raw = dec
	}
	return normalizeEmail(raw)
}

// POST /users
func (h *UserHandler) Save(c *fiber.Ctx) error {
	doc, err := parseDocument(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid body")
	}
	email, _ := doc[models.UserEmailField].(string)
	email = normalizeEmail(email)
	if !validEmail(email) {
		return fail(c, fiber.StatusBadRequest, "Email required")
	}

	result, err := h.Users.Upsert(c.UserContext(), email, doc)
	if err != nil {
		h.Log.WithError(err).WithField("email", email).Error("save user")
		return fail(c, fiber.StatusInternalServerError, "Failed to save user")
	}

	message := "User updated"
	if result.UpsertedCount > 0 {
		message = "User created"
	}
	return c.JSON(fiber.Map{"message": message, "result": result})
}

// GET /users/:email
func (h *UserHandler) Get(c *fiber.Ctx) error {
	email := emailParam(c)

	user, err := h.Users.FindByEmail(c.UserContext(), email)
	if errors.Is(err, store.ErrNotFound) {
		return notFound(c, "User not found")
	}
	if err != nil {
		h.Log.WithError(err).WithField("email", email).Error("fetch user")
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch user role")
	}
	return c.JSON(user)
}

type RoleReq struct {
	Role models.Role `json:"role" validate:"required,oneof=default guide admin"`
}

// PATCH /users/role/:email (admin)
func (h *UserHandler) UpdateRole(c *fiber.Ctx) error {
	email := emailParam(c)

	var req RoleReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid body")
	}
	if err := validate.Struct(req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Role must be default, guide or admin")
	}

	result, err := h.Users.UpdateRole(c.UserContext(), email, req.Role)
	if err != nil {
		h.Log.WithError(err).WithField("email", email).Error("update role")
		return fail(c, fiber.StatusInternalServerError, "Failed to update role")
	}

	if result.MatchedCount > 0 {
		publish(c, h.Events, h.Log, realtime.NewEvent(realtime.EventUserRoleChanged, email, fiber.Map{
			"email": email,
			"role":  req.Role,
		}))
	}
	return c.JSON(result)
}
