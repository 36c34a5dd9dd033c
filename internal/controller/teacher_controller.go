package controller

import (
	"devonaut-be/internal/pkg/serverutils"
	"devonaut-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ITeacherController interface {
	RegisterRoutes(r fiber.Router)
	Students(ctx *fiber.Ctx) error
}

type teacherController struct {
	userService service.IUserService
}

func NewTeacherController(userService service.IUserService) ITeacherController {
	return &teacherController{userService: userService}
}

func (c *teacherController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/teacher", serverutils.JwtMiddleware, serverutils.RequireRole("teacher"))
	h.Get("/students", c.Students)
}

func (c *teacherController) Students(ctx *fiber.Ctx) error {
	rows, err := c.userService.ListStudents(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Students", rows))
}
