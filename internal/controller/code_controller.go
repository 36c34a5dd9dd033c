package controller

import (
	"errors"

	"devonaut-be/internal/dto"
	"devonaut-be/internal/pkg/serverutils"
	"devonaut-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ICodeController interface {
	RegisterRoutes(r fiber.Router)
	RunCode(ctx *fiber.Ctx) error
	RecordKeystroke(ctx *fiber.Ctx) error
	ListKeystrokes(ctx *fiber.Ctx) error
}

type codeController struct {
	codeService      service.ICodeService
	keystrokeService service.IKeystrokeService
}

func NewCodeController(codeService service.ICodeService, keystrokeService service.IKeystrokeService) ICodeController {
	return &codeController{
		codeService:      codeService,
		keystrokeService: keystrokeService,
	}
}

func (c *codeController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/code", serverutils.JwtMiddleware)
	h.Post("/run-code", c.RunCode)
	h.Post("/keystrokes", c.RecordKeystroke)
	h.Get("/keystrokes/:userId", serverutils.RequireRole("teacher"), c.ListKeystrokes)
}

func (c *codeController) RunCode(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(dto.DetailResponse{Detail: "Could not validate credentials"})
	}

	var req dto.RunCodeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.DetailResponse{Detail: "Invalid request body"})
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.DetailResponse{Detail: err.Error()})
	}

	res, err := c.codeService.RunCode(ctx.Context(), userId, &req)
	if err != nil {
		if errors.Is(err, service.ErrDangerousCode) {
			return ctx.Status(fiber.StatusBadRequest).JSON(dto.DetailResponse{Detail: err.Error()})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(dto.DetailResponse{Detail: err.Error()})
	}
	return ctx.JSON(res)
}

func (c *codeController) RecordKeystroke(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(dto.DetailResponse{Detail: "Could not validate credentials"})
	}

	var req dto.KeystrokeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	if err := c.keystrokeService.Record(ctx.Context(), userId, &req); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	// Accepted: the snapshot lands in the store asynchronously.
	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse[any]("Snapshot queued", nil))
}

func (c *codeController) ListKeystrokes(ctx *fiber.Ctx) error {
	userId, err := uuid.Parse(ctx.Params("userId"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid user ID"))
	}

	var assignmentId *uuid.UUID
	if raw := ctx.Query("assignment_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid assignment ID"))
		}
		assignmentId = &id
	}

	limit := ctx.QueryInt("limit", 500)
	offset := ctx.QueryInt("offset", 0)

	entries, err := c.keystrokeService.ListByUser(ctx.Context(), userId, assignmentId, limit, offset)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Keystroke snapshots", entries))
}
