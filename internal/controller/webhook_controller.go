package controller

import (
	"errors"

	"guest-concierge-be/internal/dto"
	"guest-concierge-be/internal/pkg/logger"
	"guest-concierge-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IWebhookController interface {
	RegisterRoutes(r fiber.Router)
	HandleInbound(ctx *fiber.Ctx) error
}

type webhookController struct {
	messageService service.IMessageService
	logger         logger.ILogger
}

func NewWebhookController(messageService service.IMessageService, l logger.ILogger) IWebhookController {
	return &webhookController{
		messageService: messageService,
		logger:         l,
	}
}

func (c *webhookController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/webhook/v1")
	h.Post("inbound", c.HandleInbound)
}

// HandleInbound always acknowledges with an empty 200. Channel providers
// retry non-2xx responses, and a retried guest message means a duplicated
// reply, so failures are logged rather than surfaced.
func (c *webhookController) HandleInbound(ctx *fiber.Ctx) error {
	var event dto.InboundMessageEvent
	if err := ctx.BodyParser(&event); err != nil {
		c.logger.Warn("webhook", "unparseable inbound payload", map[string]interface{}{
			"error": err.Error(),
		})
		return ctx.Status(fiber.StatusOK).Send(nil)
	}
	if event.From == "" || event.To == "" || event.Body == "" {
		c.logger.Warn("webhook", "inbound payload missing required fields", map[string]interface{}{
			"from": event.From,
			"to":   event.To,
		})
		return ctx.Status(fiber.StatusOK).Send(nil)
	}

	if err := c.messageService.ProcessInbound(ctx.Context(), &event); err != nil {
		if errors.Is(err, service.ErrPropertyNotFound) {
			return ctx.Status(fiber.StatusOK).Send(nil)
		}
		c.logger.Error("webhook", "inbound processing failed", map[string]interface{}{
			"to":    event.To,
			"error": err.Error(),
		})
	}

	return ctx.Status(fiber.StatusOK).Send(nil)
}
