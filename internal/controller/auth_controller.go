package controller

import (
	"errors"
	"time"

	"devonaut-be/internal/config"
	"devonaut-be/internal/dto"
	"devonaut-be/internal/pkg/serverutils"
	"devonaut-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	Register(ctx *fiber.Ctx) error
	Login(ctx *fiber.Ctx) error
	Logout(ctx *fiber.Ctx) error
}

type authController struct {
	service service.IAuthService
	cfg     *config.Config
}

func NewAuthController(service service.IAuthService, cfg *config.Config) IAuthController {
	return &authController{service: service, cfg: cfg}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth")
	h.Post("/register", c.Register)
	// The institutional login keeps its historical path; the web client and
	// its error handling are built around it.
	h.Post("/tu/login", c.Login)
	h.Post("/logout", c.Logout)
}

func (c *authController) Register(ctx *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.DetailResponse{Detail: "Invalid request body"})
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.DetailResponse{Detail: err.Error()})
	}

	res, err := c.service.Register(ctx.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			return ctx.Status(fiber.StatusBadRequest).JSON(dto.DetailResponse{Detail: err.Error()})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(dto.DetailResponse{Detail: err.Error()})
	}
	return ctx.JSON(res)
}

// Login authenticates against the roster and plants the session cookie. The
// error body keeps the flat {detail} shape the client matches on.
func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.DetailResponse{Detail: "Invalid request body"})
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.DetailResponse{Detail: err.Error()})
	}

	res, err := c.service.Login(ctx.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			ctx.Set("WWW-Authenticate", "Bearer")
			return ctx.Status(fiber.StatusUnauthorized).JSON(dto.DetailResponse{Detail: err.Error()})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(dto.DetailResponse{Detail: err.Error()})
	}

	ctx.Cookie(&fiber.Cookie{
		Name:     serverutils.AccessTokenCookie,
		Value:    res.AccessToken,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(time.Duration(c.cfg.Auth.AccessTokenExpiry) * time.Minute),
		Path:     "/",
	})

	return ctx.JSON(res)
}

func (c *authController) Logout(ctx *fiber.Ctx) error {
	ctx.Cookie(&fiber.Cookie{
		Name:     serverutils.AccessTokenCookie,
		Value:    "",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(-time.Hour),
		Path:     "/",
	})
	return ctx.JSON(fiber.Map{"message": "Successfully logged out"})
}
