package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"blog_platform/dto"
	mid "blog_platform/internal/middleware"
	"blog_platform/services"
)

type UserHandler struct {
	Svc *services.UserService
}

// GET /users/:id — public profile, display projection only.
func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid user id")
	}

	info, bio, err := h.Svc.GetPublic(c.Context(), id)
	if err != nil {
		return svcError(c, err)
	}
	return c.JSON(fiber.Map{
		"id":             info.ID,
		"username":       info.Username,
		"profilePicture": info.ProfilePicture,
		"bio":            bio,
	})
}

// PUT /users/profile
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	requester, err := mid.RequesterFromLocals(c)
	if err != nil {
		return err
	}

	var body dto.UpdateProfileDTO
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}
	if body.Username != nil {
		if n := len(*body.Username); n < 3 || n > 30 {
			return validationFailed(c, map[string]string{"username": "username must be 3-30 characters"})
		}
	}

	resp, err := h.Svc.UpdateProfile(c.Context(), requester.ID, body)
	if err != nil {
		return svcError(c, err)
	}
	return c.JSON(resp)
}

// PUT /users/password
func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	requester, err := mid.RequesterFromLocals(c)
	if err != nil {
		return err
	}

	var body dto.ChangePasswordDTO
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}
	if len(body.NewPassword) < 6 {
		return validationFailed(c, map[string]string{"newPassword": "password must be at least 6 characters"})
	}

	if err := h.Svc.ChangePassword(c.Context(), requester.ID, body); err != nil {
		return svcError(c, err)
	}
	return c.JSON(fiber.Map{"message": "password updated"})
}

// GET /users/me/posts — the caller's posts through the same listing
// surface as the public feed.
func (h *UserHandler) MyPosts(c *fiber.Ctx) error {
	requester, err := mid.RequesterFromLocals(c)
	if err != nil {
		return err
	}

	page := int64(c.QueryInt("page", 1))
	limit := int64(c.QueryInt("limit", 10))

	resp, err := h.Svc.PostsByAuthor(c.Context(), requester.ID, page, limit)
	if err != nil {
		return svcError(c, err)
	}
	return c.JSON(resp)
}
