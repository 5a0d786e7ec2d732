package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"blog_platform/dto"
	mid "blog_platform/internal/middleware"
	"blog_platform/services"
)

type AuthHandler struct {
	Svc *services.AuthService
}

// Register godoc
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        data  body      dto.RegisterDTO  true  "Account payload"
// @Success      201   {object}  dto.AuthResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var body dto.RegisterDTO
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}

	fields := map[string]string{}
	if n := len(body.Username); n < 3 || n > 30 {
		fields["username"] = "username must be 3-30 characters"
	}
	if !strings.Contains(body.Email, "@") {
		fields["email"] = "valid email is required"
	}
	if len(body.Password) < 6 {
		fields["password"] = "password must be at least 6 characters"
	}
	if len(fields) > 0 {
		return validationFailed(c, fields)
	}

	resp, err := h.Svc.Register(c.Context(), body)
	if err != nil {
		return svcError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Login godoc
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        data  body      dto.LoginDTO  true  "Credentials"
// @Success      200   {object}  dto.AuthResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body dto.LoginDTO
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}
	if body.Email == "" || body.Password == "" {
		return badRequest(c, "email and password are required")
	}

	resp, err := h.Svc.Login(c.Context(), body)
	if err != nil {
		return svcError(c, err)
	}
	return c.JSON(resp)
}

// GET /auth/profile — the caller's own record.
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	requester, err := mid.RequesterFromLocals(c)
	if err != nil {
		return err
	}

	resp, err := h.Svc.Profile(c.Context(), requester.ID)
	if err != nil {
		return svcError(c, err)
	}
	return c.JSON(resp)
}
