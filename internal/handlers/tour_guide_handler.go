package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/Windi-Fikriyansyah/tourguide_be/internal/models"
	"github.com/Windi-Fikriyansyah/tourguide_be/internal/realtime"
	"github.com/Windi-Fikriyansyah/tourguide_be/internal/store"
)

type TourGuideStore interface {
	Create(ctx context.Context, guide models.Document) (*models.InsertResult, error)
	List(ctx context.Context) ([]models.Document, error)
	FindByID(ctx context.Context, id string) (models.Document, error)
	Update(ctx context.Context, id string, fields models.Document) (*models.UpdateResult, error)
	Delete(ctx context.Context, id string) (*models.DeleteResult, error)
	Approve(ctx context.Context, id string) (*models.UpdateResult, error)
}

type TourGuideHandler struct {
	Guides TourGuideStore
	Events realtime.Publisher
	Log    *logrus.Logger
}

func NewTourGuideHandler(guides TourGuideStore, events realtime.Publisher, log *logrus.Logger) *TourGuideHandler {
	return &TourGuideHandler{Guides: guides, Events: events, Log: log}
}

// storeFail maps accessor errors; anything unexpected is logged and hidden behind message.
func (h *TourGuideHandler) storeFail(c *fiber.Ctx, err error, message string) error {
	switch {
	case errors.Is(err, store.ErrInvalidID):
		return fail(c, fiber.StatusBadRequest, "Invalid guide id")
	case errors.Is(err, store.ErrNotFound):
		return notFound(c, "Guide not found")
	case errors.Is(err, store.ErrEmptyUpdate):
		return fail(c, fiber.StatusBadRequest, "No fields to update")
	}
	h.Log.WithError(err).WithField("guide_id", c.Params("id")).Error(message)
	return fail(c, fiber.StatusInternalServerError, message)
}

// POST /tour-guides
func (h *TourGuideHandler) Create(c *fiber.Ctx) error {
	doc, err := parseDocument(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid body")
	}
	result, err := h.Guides.Create(c.UserContext(), doc)
	if err != nil {
		return h.storeFail(c, err, "Failed to add tour guide")
	}
	return c.JSON(result)
}

// GET /tour-guides
func (h *TourGuideHandler) List(c *fiber.Ctx) error {
	guides, err := h.Guides.List(c.UserContext())
	if err != nil {
		return h.storeFail(c, err, "Failed to fetch guides")
	}
	return c.JSON(guides)
}

// GET /tour-guides/:id
func (h *TourGuideHandler) Get(c *fiber.Ctx) error {
	guide, err := h.Guides.FindByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.storeFail(c, err, "Failed to fetch guide")
	}
	return c.JSON(guide)
}

// PATCH /tour-guides/:id
func (h *TourGuideHandler) Update(c *fiber.Ctx) error {
	doc, err := parseDocument(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid body")
	}
	result, err := h.Guides.Update(c.UserContext(), c.Params("id"), doc)
	if err != nil {
		return h.storeFail(c, err, "Failed to update guide")
	}
	return c.JSON(result)
}

// DELETE /tour-guides/:id
func (h *TourGuideHandler) Delete(c *fiber.Ctx) error {
	result, err := h.Guides.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.storeFail(c, err, "Failed to delete guide")
	}
	return c.JSON(result)
}

// PATCH /guides/approve/:id (admin)
func (h *TourGuideHandler) Approve(c *fiber.Ctx) error {
	id := c.Params("id")
	result, err := h.Guides.Approve(c.UserContext(), id)
	if err != nil {
		return h.storeFail(c, err, "Failed to approve guide")
	}
	if result.ModifiedCount > 0 {
		publish(c, h.Events, h.Log, realtime.NewEvent(realtime.EventGuideApproved, "", fiber.Map{"id": id}))
	}
	return c.JSON(result)
}
