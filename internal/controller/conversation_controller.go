package controller

import (
	"guest-concierge-be/internal/dto"
	"guest-concierge-be/internal/pkg/serverutils"
	"guest-concierge-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IConversationController interface {
	RegisterRoutes(r fiber.Router)
	Index(ctx *fiber.Ctx) error
	Messages(ctx *fiber.Ctx) error
	SendManual(ctx *fiber.Ctx) error
}

type conversationController struct {
	conversationService service.IConversationService
	messageService      service.IMessageService
}

func NewConversationController(
	conversationService service.IConversationService,
	messageService service.IMessageService,
) IConversationController {
	return &conversationController{
		conversationService: conversationService,
		messageService:      messageService,
	}
}

func (c *conversationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/conversation/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("property/:propertyId", c.Index)
	h.Get(":id/messages", c.Messages)
	h.Post("send", c.SendManual)
}

func (c *conversationController) Index(ctx *fiber.Ctx) error {
	accountId := accountIdFromLocals(ctx)
	propertyId, _ := uuid.Parse(ctx.Params("propertyId"))

	res, err := c.conversationService.GetAll(ctx.Context(), accountId, propertyId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list conversations", res))
}

func (c *conversationController) Messages(ctx *fiber.Ctx) error {
	accountId := accountIdFromLocals(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))
	limit := ctx.QueryInt("limit", 50)

	res, err := c.conversationService.GetMessages(ctx.Context(), accountId, id, limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list messages", res))
}

func (c *conversationController) SendManual(ctx *fiber.Ctx) error {
	accountId := accountIdFromLocals(ctx)

	var req dto.ManualSendRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.messageService.SendManual(ctx.Context(), accountId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send message", res))
}
