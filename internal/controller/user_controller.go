package controller

import (
	"errors"

	"devonaut-be/internal/dto"
	"devonaut-be/internal/pkg/logger"
	"devonaut-be/internal/pkg/serverutils"
	"devonaut-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IUserController interface {
	RegisterRoutes(r fiber.Router)
	Whoami(ctx *fiber.Ctx) error
	UpdateSkillScore(ctx *fiber.Ctx) error
}

type userController struct {
	service service.IUserService
	logger  logger.ILogger
}

func NewUserController(service service.IUserService, log logger.ILogger) IUserController {
	return &userController{service: service, logger: log}
}

func (c *userController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/users", serverutils.JwtMiddleware)
	h.Get("/me", c.Whoami)
	h.Put("/me/skill", c.UpdateSkillScore)
}

// currentUserId reads the verified identity JwtMiddleware stamped into
// locals.
func currentUserId(ctx *fiber.Ctx) (uuid.UUID, error) {
	userIdStr, ok := ctx.Locals("user_id").(string)
	if !ok {
		return uuid.Nil, errors.New("missing user identity")
	}
	return uuid.Parse(userIdStr)
}

// Whoami answers the client's session re-check. The role also rides in the
// X-User-Role header; that copy is advisory, clients must trust the body of
// this verified endpoint over anything cached.
func (c *userController) Whoami(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(dto.DetailResponse{Detail: "Could not validate credentials"})
	}

	res, err := c.service.Whoami(ctx.Context(), userId)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(dto.DetailResponse{Detail: err.Error()})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(dto.DetailResponse{Detail: err.Error()})
	}

	// Clients echo their cached role in the request header. A mismatch means
	// the cache drifted from the token; log it, never act on it.
	if cached := ctx.Get("X-User-Role"); cached != "" && cached != res.Role {
		c.logger.Warn("UserController", "Cached role drifted from token role", map[string]interface{}{
			"user_id":     userId.String(),
			"cached_role": cached,
			"token_role":  res.Role,
		})
	}

	ctx.Set("X-User-Role", res.Role)
	return ctx.JSON(res)
}

func (c *userController) UpdateSkillScore(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(dto.DetailResponse{Detail: "Could not validate credentials"})
	}

	var req struct {
		Score int `json:"score" validate:"gte=0,lte=100"`
	}
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	if err := c.service.UpdateSkillScore(ctx.Context(), userId, req.Score); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Skill score updated", nil))
}
