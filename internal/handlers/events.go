package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"

	"github.com/Windi-Fikriyansyah/tourguide_be/internal/middleware"
	"github.com/Windi-Fikriyansyah/tourguide_be/internal/realtime"
	"github.com/Windi-Fikriyansyah/tourguide_be/internal/utils"
)

// publish never fails the request; delivery is best-effort.
func publish(c *fiber.Ctx, events realtime.Publisher, log *logrus.Logger, ev realtime.Event) {
	if events == nil {
		return
	}
	if err := events.Publish(c.UserContext(), ev); err != nil {
		log.WithError(err).WithField("type", ev.Type).Warn("publish event")
	}
}

type EventsHandler struct {
	Hub       *realtime.Hub
	JWTSecret string
	Log       *logrus.Logger
}

func NewEventsHandler(hub *realtime.Hub, secret string, log *logrus.Logger) *EventsHandler {
	return &EventsHandler{Hub: hub, JWTSecret: secret, Log: log}
}

// Upgrade authenticates ?token= before the websocket handshake. Browsers cannot
// set headers on websocket requests.
func (h *EventsHandler) Upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	raw := c.Query("token")
	if raw == "" {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized access: No token provided")
	}
	claims, err := utils.ParseJWT(raw, h.JWTSecret)
	if err != nil {
		return fail(c, fiber.StatusForbidden, "Forbidden access: Invalid token")
	}
	c.Locals(middleware.LocalEmail, claims.Email)
	return c.Next()
}

func (h *EventsHandler) Stream(conn *websocket.Conn) {
	email, _ := conn.Locals(middleware.LocalEmail).(string)

	client := realtime.NewClient(email, conn)
	h.Hub.RegisterClient(client)
	defer h.Hub.UnregisterClient(client)

	go client.WritePump()

	// read until the peer goes away; inbound messages are ignored
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.Log.WithField("email", email).Debug("ws closed")
			return
		}
	}
}
