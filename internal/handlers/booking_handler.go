package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/Windi-Fikriyansyah/tourguide_be/internal/middleware"
	"github.com/Windi-Fikriyansyah/tourguide_be/internal/models"
	"github.com/Windi-Fikriyansyah/tourguide_be/internal/realtime"
)

type BookingStore interface {
	Create(ctx context.Context, booking models.Document) (*models.InsertResult, error)
	List(ctx context.Context, email string) ([]models.Document, error)
}

type BookingHandler struct {
	Bookings BookingStore
	Events   realtime.Publisher
	Log      *logrus.Logger
}

func NewBookingHandler(bookings BookingStore, events realtime.Publisher, log *logrus.Logger) *BookingHandler {
	return &BookingHandler{Bookings: bookings, Events: events, Log: log}
}

// POST /bookings
func (h *BookingHandler) Create(c *fiber.Ctx) error {
	doc, err := parseDocument(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid body")
	}
	email, _ := doc[models.BookingEmailField].(string)
	email = normalizeEmail(email)
	if email == "" {
		email = middleware.Email(c)
	}
	doc[models.BookingEmailField] = email

	result, err := h.Bookings.Create(c.UserContext(), doc)
	if err != nil {
		h.Log.WithError(err).WithField("email", email).Error("save booking")
		return fail(c, fiber.StatusInternalServerError, "Failed to save booking")
	}

	publish(c, h.Events, h.Log, realtime.NewEvent(realtime.EventBookingCreated, email, fiber.Map{
		"id":    result.InsertedID,
		"email": email,
	}))
	return c.JSON(result)
}

// GET /bookings?email=
func (h *BookingHandler) List(c *fiber.Ctx) error {
	bookings, err := h.Bookings.List(c.UserContext(), normalizeEmail(c.Query("email")))
	if err != nil {
		h.Log.WithError(err).Error("fetch bookings")
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch bookings")
	}
	return c.JSON(bookings)
}
