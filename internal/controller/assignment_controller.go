package controller

import (
	"errors"

	"devonaut-be/internal/dto"
	"devonaut-be/internal/pkg/serverutils"
	"devonaut-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAssignmentController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	GetById(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
}

type assignmentController struct {
	service service.IAssignmentService
}

func NewAssignmentController(service service.IAssignmentService) IAssignmentController {
	return &assignmentController{service: service}
}

func (c *assignmentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/assignments", serverutils.JwtMiddleware)
	h.Get("/", c.List)
	h.Get("/:id", c.GetById)

	teacherOnly := serverutils.RequireRole("teacher")
	h.Post("/", teacherOnly, c.Create)
	h.Put("/:id", teacherOnly, c.Update)
	h.Delete("/:id", teacherOnly, c.Delete)
}

func (c *assignmentController) Create(ctx *fiber.Ctx) error {
	teacherId, err := currentUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Unauthorized"))
	}

	var req dto.CreateAssignmentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.service.Create(ctx.Context(), teacherId, &req)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Assignment created", res))
}

func (c *assignmentController) Update(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid assignment ID"))
	}

	var req dto.UpdateAssignmentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.service.Update(ctx.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrAssignmentNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Assignment updated", res))
}

func (c *assignmentController) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid assignment ID"))
	}

	if err := c.service.Delete(ctx.Context(), id); err != nil {
		if errors.Is(err, service.ErrAssignmentNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Assignment deleted", nil))
}

func (c *assignmentController) GetById(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid assignment ID"))
	}

	res, err := c.service.GetById(ctx.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrAssignmentNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Assignment", res))
}

func (c *assignmentController) List(ctx *fiber.Ctx) error {
	// Teachers see drafts; students only what is published.
	role, _ := ctx.Locals("role").(string)

	var teacherId *uuid.UUID
	if raw := ctx.Query("teacher_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid teacher ID"))
		}
		teacherId = &id
	}

	res, err := c.service.List(ctx.Context(), role == "teacher", teacherId)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Assignments", res))
}
