package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"blog_platform/dto"
	"blog_platform/services"
)

// svcError maps the service error taxonomy onto the REST contract:
// 404 not-found (checked before authorization, so it wins for missing
// entities even when the requester is an admin), 403 forbidden, 500
// for anything the storage layer threw.
func svcError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrPostNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "post not found"})
	case errors.Is(err, services.ErrCommentNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "comment not found"})
	case errors.Is(err, services.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "user not found"})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Message: "not authorized"})
	case errors.Is(err, services.ErrEmailTaken):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, services.ErrBadCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "internal error"})
	}
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: msg})
}

func validationFailed(c *fiber.Ctx, fields map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Message: "validation failed",
		Fields:  fields,
	})
}
