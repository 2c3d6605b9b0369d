package api

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const HeaderRequestID = "X-Request-ID"

const localRequestID = "request_id"

// RequestID propagates a correlation id for the lifetime of the
// request: an inbound X-Request-ID is honored, otherwise one is
// generated. The id is echoed on the response and attached to the
// error envelope.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(HeaderRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals(localRequestID, rid)
		c.Set(HeaderRequestID, rid)
		return c.Next()
	}
}

// AccessLog emits a single line per request with method, path, status
// and elapsed time.
func AccessLog(log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		log.Info("request",
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"elapsed_ms", time.Since(start).Milliseconds(),
			"request_id", requestID(c),
		)
		return err
	}
}

func requestID(c *fiber.Ctx) string {
	if rid, ok := c.Locals(localRequestID).(string); ok && rid != "" {
		return rid
	}
	return "-"
}
