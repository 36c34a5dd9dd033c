package controller

import (
	"errors"

	"devonaut-be/internal/dto"
	"devonaut-be/internal/pkg/serverutils"
	"devonaut-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IWorkspaceController interface {
	RegisterRoutes(r fiber.Router)
	Import(ctx *fiber.Ctx) error
	Export(ctx *fiber.Ctx) error
}

type workspaceController struct {
	service service.IWorkspaceService
}

func NewWorkspaceController(service service.IWorkspaceService) IWorkspaceController {
	return &workspaceController{service: service}
}

func (c *workspaceController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/workspace", serverutils.JwtMiddleware)
	h.Post("/import", c.Import)
	h.Get("/export", c.Export)
}

// Import stores the raw request body. The document is forwarded untouched
// so an export later returns exactly what was uploaded.
func (c *workspaceController) Import(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(dto.DetailResponse{Detail: "Could not validate credentials"})
	}

	// Body() is reused by fasthttp after the handler returns; copy before
	// handing it to the service.
	document := make([]byte, len(ctx.Body()))
	copy(document, ctx.Body())

	if err := c.service.Import(ctx.Context(), userId, document); err != nil {
		if errors.Is(err, service.ErrInvalidWorkspaceDoc) {
			return ctx.Status(fiber.StatusBadRequest).JSON(dto.DetailResponse{Detail: err.Error()})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(dto.DetailResponse{Detail: err.Error()})
	}
	return ctx.JSON(fiber.Map{"message": "Workspace imported"})
}

func (c *workspaceController) Export(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(dto.DetailResponse{Detail: "Could not validate credentials"})
	}

	document, err := c.service.Export(ctx.Context(), userId)
	if err != nil {
		if errors.Is(err, service.ErrWorkspaceNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(dto.DetailResponse{Detail: err.Error()})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(dto.DetailResponse{Detail: err.Error()})
	}

	ctx.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="workspace.json"`)
	return ctx.Send(document)
}
