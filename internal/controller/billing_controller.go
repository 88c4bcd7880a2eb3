package controller

import (
	"encoding/json"

	"guest-concierge-be/internal/dto"
	"guest-concierge-be/internal/pkg/serverutils"
	"guest-concierge-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IBillingController interface {
	RegisterRoutes(r fiber.Router)
	Checkout(ctx *fiber.Ctx) error
	HandleNotification(ctx *fiber.Ctx) error
}

type billingController struct {
	billingService service.IBillingService
}

func NewBillingController(billingService service.IBillingService) IBillingController {
	return &billingController{
		billingService: billingService,
	}
}

func (c *billingController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/billing/v1")
	// The notification endpoint is called by the payment gateway and is
	// authenticated by signature, not by JWT.
	h.Post("notification", c.HandleNotification)
	h.Post("checkout", serverutils.JwtMiddleware, c.Checkout)
}

func (c *billingController) Checkout(ctx *fiber.Ctx) error {
	accountId := accountIdFromLocals(ctx)

	var req dto.CheckoutRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.billingService.Checkout(ctx.Context(), accountId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create checkout", res))
}

func (c *billingController) HandleNotification(ctx *fiber.Ctx) error {
	raw := ctx.Body()

	var req dto.MidtransWebhookRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid notification payload")
	}

	if err := c.billingService.HandleNotification(ctx.Context(), &req, string(raw)); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("OK", nil))
}
