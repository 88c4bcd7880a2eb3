package controller

import (
	"guest-concierge-be/internal/dto"
	"guest-concierge-be/internal/pkg/serverutils"
	"guest-concierge-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Index(ctx *fiber.Ctx) error
}

type documentController struct {
	documentService service.IDocumentService
}

func NewDocumentController(documentService service.IDocumentService) IDocumentController {
	return &documentController{
		documentService: documentService,
	}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/document/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Get("property/:propertyId", c.Index)
	h.Delete(":id", c.Delete)
}

func (c *documentController) Create(ctx *fiber.Ctx) error {
	accountId := accountIdFromLocals(ctx)

	var req dto.CreateDocumentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.documentService.Create(ctx.Context(), accountId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create document", res))
}

func (c *documentController) Delete(ctx *fiber.Ctx) error {
	accountId := accountIdFromLocals(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	if err := c.documentService.Delete(ctx.Context(), accountId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete document", nil))
}

func (c *documentController) Index(ctx *fiber.Ctx) error {
	accountId := accountIdFromLocals(ctx)
	propertyId, _ := uuid.Parse(ctx.Params("propertyId"))

	res, err := c.documentService.GetAll(ctx.Context(), accountId, propertyId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list documents", res))
}
