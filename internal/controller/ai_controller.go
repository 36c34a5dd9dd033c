package controller

import (
	"bufio"
	"errors"
	"fmt"

	"devonaut-be/internal/dto"
	"devonaut-be/internal/pkg/logger"
	"devonaut-be/internal/pkg/serverutils"
	"devonaut-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
)

type IAiController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
	RemainingQuestions(ctx *fiber.Ctx) error
	ResetQuestions(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
}

type aiController struct {
	service service.IChatService
	logger  logger.ILogger
}

func NewAiController(service service.IChatService, log logger.ILogger) IAiController {
	return &aiController{service: service, logger: log}
}

func (c *aiController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/ai", serverutils.JwtMiddleware)
	h.Post("/chat", c.Chat)
	h.Get("/questions/remaining", c.RemainingQuestions)
	h.Post("/questions/reset", c.ResetQuestions)
	h.Get("/history", serverutils.RequireRole("teacher"), c.History)
}

// Chat streams the tutor's reply as plain text chunks. Quota and identity
// problems surface as proper statuses before the first byte of the body;
// once streaming has begun, a provider failure is appended to the stream
// as text, the way the original service behaved.
func (c *aiController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.DetailResponse{Detail: "Invalid request body"})
	}
	if req.UserId == "" || req.Prompt == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.DetailResponse{Detail: "User ID and prompt are required."})
	}

	if err := c.service.BeginExchange(ctx.Context(), &req); err != nil {
		switch {
		case errors.Is(err, service.ErrChatUserNotFound):
			return ctx.Status(fiber.StatusNotFound).JSON(dto.DetailResponse{Detail: err.Error()})
		case errors.Is(err, service.ErrQuestionLimit):
			return ctx.Status(fiber.StatusForbidden).JSON(dto.DetailResponse{Detail: err.Error()})
		default:
			return ctx.Status(fiber.StatusInternalServerError).JSON(dto.DetailResponse{Detail: err.Error()})
		}
	}

	ctx.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)

	// The writer runs after this handler returns, on the request's own
	// context so a client disconnect cancels the upstream stream.
	reqCtx := ctx.Context()
	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		_, err := c.service.StreamExchange(reqCtx, &req, func(text string) error {
			if _, werr := w.WriteString(text); werr != nil {
				return werr
			}
			return w.Flush()
		})
		if err != nil {
			c.logger.Error("AiController", "Chat stream aborted", map[string]interface{}{
				"user_id": req.UserId,
				"error":   err.Error(),
			})
			fmt.Fprintf(w, "Error: %s", err.Error())
			w.Flush()
		}
	}))
	return nil
}

func (c *aiController) RemainingQuestions(ctx *fiber.Ctx) error {
	userId, err := c.targetUserId(ctx, ctx.Query("user_id"))
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(dto.DetailResponse{Detail: "User not found."})
	}

	res, err := c.service.RemainingQuestions(ctx.Context(), userId)
	if err != nil {
		if errors.Is(err, service.ErrChatUserNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(dto.DetailResponse{Detail: err.Error()})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(dto.DetailResponse{Detail: err.Error()})
	}
	return ctx.JSON(res)
}

func (c *aiController) ResetQuestions(ctx *fiber.Ctx) error {
	var req dto.ResetQuestionsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.DetailResponse{Detail: "Invalid request body"})
	}

	userId, err := uuid.Parse(req.UserId)
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(dto.DetailResponse{Detail: "User not found."})
	}

	if err := c.service.ResetQuestions(ctx.Context(), userId); err != nil {
		if errors.Is(err, service.ErrChatUserNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(dto.DetailResponse{Detail: err.Error()})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(dto.DetailResponse{Detail: err.Error()})
	}
	return ctx.JSON(fiber.Map{"success": true, "message": "Questions counter reset successfully."})
}

func (c *aiController) History(ctx *fiber.Ctx) error {
	var userId, assignmentId *uuid.UUID
	if raw := ctx.Query("user_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid user ID"))
		}
		userId = &id
	}
	if raw := ctx.Query("assignment_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid assignment ID"))
		}
		assignmentId = &id
	}

	res, err := c.service.History(ctx.Context(), userId, assignmentId)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Chat histories", res))
}

// targetUserId resolves the queried user, falling back to the caller's own
// identity when the parameter is absent.
func (c *aiController) targetUserId(ctx *fiber.Ctx, param string) (uuid.UUID, error) {
	if param != "" {
		return uuid.Parse(param)
	}
	return currentUserId(ctx)
}
