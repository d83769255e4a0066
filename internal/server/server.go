// Package server wires handlers and middleware into the fiber app.
package server

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"

	"github.com/Windi-Fikriyansyah/tourguide_be/internal/handlers"
	"github.com/Windi-Fikriyansyah/tourguide_be/internal/middleware"
	"github.com/Windi-Fikriyansyah/tourguide_be/internal/models"
	"github.com/Windi-Fikriyansyah/tourguide_be/internal/realtime"
)

type UserStore interface {
	handlers.UserStore
	middleware.RoleLookup
}

type Deps struct {
	Users      UserStore
	TourGuides handlers.TourGuideStore
	Bookings   handlers.BookingStore

	Hub     *realtime.Hub
	Events  realtime.Publisher
	Limiter *middleware.RateLimiter

	JWTSecret   string
	TokenTTL    time.Duration
	CORSOrigins string
	Log         *logrus.Logger
}

func New(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "tourguide",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(d.Log),
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.RequestLogger(d.Log))
	app.Use(cors.New(cors.Config{
		AllowOrigins: d.CORSOrigins,
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	auth := middleware.VerifyToken(d.JWTSecret)
	admin := middleware.RequireRoles(d.Users, d.Log, models.RoleAdmin)
	limit := middleware.RateLimit(d.Limiter)

	authH := &handlers.AuthHandler{JWTSecret: d.JWTSecret, TTL: d.TokenTTL, Log: d.Log}
	userH := handlers.NewUserHandler(d.Users, d.Events, d.Log)
	guideH := handlers.NewTourGuideHandler(d.TourGuides, d.Events, d.Log)
	bookingH := handlers.NewBookingHandler(d.Bookings, d.Events, d.Log)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Server is running")
	})

	app.Post("/jwt", limit, authH.IssueToken)

	// users
	app.Post("/users", limit, userH.Save)
	app.Get("/users/:email", auth, userH.Get)
	app.Patch("/users/role/:email", auth, admin, userH.UpdateRole)

	// bookings
	app.Post("/bookings", auth, bookingH.Create)
	app.Get("/bookings", auth, bookingH.List)

	// tour guides
	app.Post("/tour-guides", auth, guideH.Create)
	app.Get("/tour-guides", guideH.List)
	app.Get("/tour-guides/:id", guideH.Get)
	app.Patch("/tour-guides/:id", auth, guideH.Update)
	app.Delete("/tour-guides/:id", auth, guideH.Delete)
	app.Patch("/guides/approve/:id", auth, admin, guideH.Approve)

	if d.Hub != nil {
		eventsH := handlers.NewEventsHandler(d.Hub, d.JWTSecret, d.Log)
		app.Get("/ws/events", eventsH.Upgrade, websocket.New(eventsH.Stream))
	}

	return app
}

func errorHandler(log *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		} else {
			log.WithError(err).WithField("path", c.Path()).Error("unhandled error")
		}
		return c.Status(code).JSON(fiber.Map{"error": message})
	}
}
