package server

import (
	"context"
	"errors"
	"time"

	"crypto-rates-checker/internal/arbitrage"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func (s *FiberServer) RegisterFiberRoutes() {
	s.App.Use(recover.New())
	s.App.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,OPTIONS",
		AllowHeaders: "Accept,Content-Type",
	}))

	s.App.Get("/health", s.healthHandler)
	s.App.Get("/api/v1/rates", s.ratesHandler)

	s.App.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	s.App.Get("/ws", websocket.New(s.websocketHandler))
}

func (s *FiberServer) healthHandler(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *FiberServer) ratesHandler(c *fiber.Ctx) error {
	amount, err := arbitrage.ParseAmount(c.Query("amount"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	report, err := s.checker.Check(c.UserContext(), amount)
	if err != nil {
		s.logger.Error("Failed to check rates: " + err.Error())
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

// websocketHandler answers every text message carrying an amount with a
// report, or with an error object when the amount is unusable. A check in
// flight is cancelled when the client goes away or the server shuts down.
func (s *FiberServer) websocketHandler(conn *websocket.Conn) {
	ctx, cancel := context.WithCancel(s.ctx)
	messages := s.readMessages(ctx, cancel, conn)
	defer func() {
		cancel()
		// Unblock the reader so it is gone before the connection is released.
		_ = conn.SetReadDeadline(time.Now())
		for range messages {
		}
	}()

	for {
		var message []byte
		select {
		case <-ctx.Done():
			return
		case next, ok := <-messages:
			if !ok {
				return
			}
			message = next
		}

		var reply any
		amount, err := arbitrage.ParseAmount(string(message))
		if err == nil {
			reply, err = s.checker.Check(ctx, amount)
		}
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			reply = map[string]string{"error": err.Error()}
		}

		if err := conn.WriteJSON(reply); err != nil {
			s.logger.Warn("websocket write failed", zap.Error(err))
			return
		}
	}
}

// readMessages forwards the client's text messages until the connection
// fails, then cancels ctx and closes the returned channel.
func (s *FiberServer) readMessages(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn) <-chan []byte {
	messages := make(chan []byte)
	go func() {
		defer close(messages)
		defer cancel()
		for {
			messageType, message, err := conn.ReadMessage()
			if err != nil {
				if ctx.Err() == nil && websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					s.logger.Warn("websocket read failed", zap.Error(err))
				}
				return
			}
			if messageType != websocket.TextMessage {
				continue
			}
			select {
			case messages <- message:
			case <-ctx.Done():
				return
			}
		}
	}()
	return messages
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, arbitrage.ErrInvalidAmount):
		return fiber.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}
