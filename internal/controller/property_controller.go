package controller

import (
	"guest-concierge-be/internal/dto"
	"guest-concierge-be/internal/pkg/serverutils"
	"guest-concierge-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IPropertyController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Index(ctx *fiber.Ctx) error
	QRCode(ctx *fiber.Ctx) error
}

type propertyController struct {
	propertyService service.IPropertyService
}

func NewPropertyController(propertyService service.IPropertyService) IPropertyController {
	return &propertyController{
		propertyService: propertyService,
	}
}

func (c *propertyController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/property/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Get("", c.Index)
	h.Get(":id", c.Show)
	h.Get(":id/qr", c.QRCode)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
}

func (c *propertyController) Create(ctx *fiber.Ctx) error {
	accountId := accountIdFromLocals(ctx)

	var req dto.CreatePropertyRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.propertyService.Create(ctx.Context(), accountId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create property", res))
}

func (c *propertyController) Update(ctx *fiber.Ctx) error {
	accountId := accountIdFromLocals(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	var req dto.UpdatePropertyRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.propertyService.Update(ctx.Context(), accountId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update property", res))
}

func (c *propertyController) Delete(ctx *fiber.Ctx) error {
	accountId := accountIdFromLocals(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	if err := c.propertyService.Delete(ctx.Context(), accountId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete property", nil))
}

func (c *propertyController) Show(ctx *fiber.Ctx) error {
	accountId := accountIdFromLocals(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.propertyService.GetOne(ctx.Context(), accountId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show property", res))
}

func (c *propertyController) Index(ctx *fiber.Ctx) error {
	accountId := accountIdFromLocals(ctx)

	res, err := c.propertyService.GetAll(ctx.Context(), accountId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list properties", res))
}

func (c *propertyController) QRCode(ctx *fiber.Ctx) error {
	accountId := accountIdFromLocals(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.propertyService.GetQRCode(ctx.Context(), accountId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success build QR code", res))
}

func accountIdFromLocals(ctx *fiber.Ctx) uuid.UUID {
	idStr, _ := ctx.Locals("account_id").(string)
	id, _ := uuid.Parse(idStr)
	return id
}
