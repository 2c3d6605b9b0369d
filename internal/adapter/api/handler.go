package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"travelbot/internal/domain/entity"
	"travelbot/internal/domain/repository"
	"travelbot/internal/usecase"
)

// ChatHandler is the delivery layer: it maps HTTP payloads onto the
// responder/extractor and business errors onto status codes. The
// limiter is optional; nil means rate limiting is disabled.
type ChatHandler struct {
	responder *usecase.Responder
	extractor *usecase.FlightExtractor
	limiter   repository.MessageLimiter
	log       *slog.Logger
}

func NewChatHandler(responder *usecase.Responder, extractor *usecase.FlightExtractor, limiter repository.MessageLimiter, log *slog.Logger) *ChatHandler {
	return &ChatHandler{responder: responder, extractor: extractor, limiter: limiter, log: log}
}

// HandleChat serves POST /api/chat with a JSON {message} body.
func (h *ChatHandler) HandleChat(c *fiber.Ctx) error {
	var req entity.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return validationError(c, "Request body must be JSON with a message field.")
	}
	return h.respond(c, req.Message)
}

// HandleSMS serves POST /api/sms, a vendor-agnostic webhook that
// accepts JSON or form-encoded bodies with a message/body/Body field.
func (h *ChatHandler) HandleSMS(c *fiber.Ctx) error {
	return h.respond(c, extractMessage(c))
}

// HandleExtractFlights serves POST /api/extract/flights with a JSON
// {email} body holding confirmation-email text.
func (h *ChatHandler) HandleExtractFlights(c *fiber.Ctx) error {
	var req entity.ExtractRequest
	if err := c.BodyParser(&req); err != nil {
		return validationError(c, "Request body must be JSON with an email field.")
	}

	manifest, err := h.extractor.Extract(c.Context(), req.Email)
	if err != nil {
		if errors.Is(err, entity.ErrEmptyMessage) {
			return validationError(c, "Email text must not be empty.")
		}
		return h.serverError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(manifest)
}

// HandleReadiness reports chain-cache occupancy alongside the status.
func (h *ChatHandler) HandleReadiness(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "ready",
		"cache":  h.responder.Stats(),
	})
}

func (h *ChatHandler) respond(c *fiber.Ctx, message string) error {
	sender := c.IP()
	if h.limiter != nil {
		allowed, err := h.limiter.Allow(c.Context(), sender)
		if err != nil {
			h.log.Warn("message limiter unavailable", "err", err, "request_id", requestID(c))
		} else if !allowed {
			return envelope(c, fiber.StatusTooManyRequests, "rate_limited", "Daily message limit reached. Try again tomorrow.")
		}
	}

	reply, err := h.responder.Respond(c.Context(), message, usecase.Options{})
	if err != nil {
		if errors.Is(err, entity.ErrEmptyMessage) {
			return validationError(c, "Message must not be empty.")
		}
		return h.serverError(c, err)
	}

	if h.limiter != nil {
		if err := h.limiter.Record(c.Context(), sender); err != nil {
			h.log.Warn("message limiter record failed", "err", err, "request_id", requestID(c))
		}
	}
	return c.Status(fiber.StatusOK).JSON(entity.ChatReply{Reply: reply})
}

// serverError logs the cause with a short error id and returns an
// opaque 500 envelope. The underlying provider error never leaves the
// server.
func (h *ChatHandler) serverError(c *fiber.Ctx, err error) error {
	errorID := uuid.NewString()[:8]
	h.log.Error("request failed",
		"err", err,
		"error_id", errorID,
		"path", c.Path(),
		"request_id", requestID(c),
	)
	return envelope(c, fiber.StatusInternalServerError, "internal_server_error", "An unexpected error occurred.")
}

func validationError(c *fiber.Ctx, message string) error {
	return envelope(c, fiber.StatusUnprocessableEntity, "validation_error", message)
}

func envelope(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(entity.ErrorEnvelope{
		Error:     code,
		Message:   message,
		RequestID: requestID(c),
	})
}

// extractMessage pulls a text message out of a JSON or form-encoded
// body, tolerating the field names SMS vendors use.
func extractMessage(c *fiber.Ctx) string {
	ctype := strings.ToLower(string(c.Request().Header.ContentType()))

	if strings.Contains(ctype, "application/json") {
		var payload struct {
			Message string `json:"message"`
			Body    string `json:"body"`
		}
		if err := json.Unmarshal(c.Body(), &payload); err == nil {
			if msg := strings.TrimSpace(payload.Message); msg != "" {
				return msg
			}
			return strings.TrimSpace(payload.Body)
		}
		return ""
	}

	for _, key := range []string{"message", "body", "Body"} {
		if v := strings.TrimSpace(c.FormValue(key)); v != "" {
			return v
		}
	}
	return ""
}
