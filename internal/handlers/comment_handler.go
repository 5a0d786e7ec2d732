package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"blog_platform/dto"
	"blog_platform/internal/cursor"
	mid "blog_platform/internal/middleware"
	"blog_platform/services"
)

type CommentHandler struct {
	Svc *services.CommentService
}

// Create godoc
// @Summary      Comment on a post
// @Description  Fails with 404 when the post does not exist; nothing is created in that case.
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        data  body      dto.CreateCommentDTO  true  "Comment payload"
// @Success      201   {object}  dto.CommentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /comments [post]
func (h *CommentHandler) Create(c *fiber.Ctx) error {
	requester, err := mid.RequesterFromLocals(c)
	if err != nil {
		return err
	}

	var body dto.CreateCommentDTO
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}
	if body.PostID == "" {
		return validationFailed(c, map[string]string{"postId": "postId is required"})
	}
	if n := len(body.Content); n < 1 || n > 2000 {
		return validationFailed(c, map[string]string{"content": "content must be 1-2000 characters"})
	}

	resp, err := h.Svc.Create(c.Context(), requester.ID, body)
	if err != nil {
		return svcError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// PUT /comments/:id — content is the only mutable field.
func (h *CommentHandler) Update(c *fiber.Ctx) error {
	requester, err := mid.RequesterFromLocals(c)
	if err != nil {
		return err
	}

	id, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid comment id")
	}

	var body dto.UpdateCommentDTO
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}
	if n := len(body.Content); n < 1 || n > 2000 {
		return validationFailed(c, map[string]string{"content": "content must be 1-2000 characters"})
	}

	resp, err := h.Svc.Update(c.Context(), id, requester, body)
	if err != nil {
		return svcError(c, err)
	}
	return c.JSON(resp)
}

func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	requester, err := mid.RequesterFromLocals(c)
	if err != nil {
		return err
	}

	id, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid comment id")
	}

	if err := h.Svc.Delete(c.Context(), id, requester); err != nil {
		return svcError(c, err)
	}
	return c.JSON(fiber.Map{"message": "comment removed"})
}

func (h *CommentHandler) ToggleLike(c *fiber.Ctx) error {
	requester, err := mid.RequesterFromLocals(c)
	if err != nil {
		return err
	}

	id, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid comment id")
	}

	resp, err := h.Svc.ToggleLike(c.Context(), id, requester.ID)
	if err != nil {
		return svcError(c, err)
	}
	return c.JSON(resp)
}

// ListByPost godoc
// @Summary      List a post's comments
// @Description  Newest first with an opaque cursor.
// @Tags         comments
// @Produce      json
// @Param        postId  path   string  true   "Post ID (hex)"
// @Param        limit   query  int     false  "Max comments per page"
// @Param        cursor  query  string  false  "Cursor from a previous page"
// @Success      200  {object}  dto.ListCommentsResp[dto.CommentResponse]
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /posts/{postId}/comments [get]
func (h *CommentHandler) ListByPost(c *fiber.Ctx) error {
	postID, err := bson.ObjectIDFromHex(c.Params("postId"))
	if err != nil {
		return badRequest(c, "invalid post id")
	}

	limit := int64(c.QueryInt("limit", 20))
	resp, err := h.Svc.ListByPost(c.Context(), postID, c.Query("cursor"), limit)
	if err != nil {
		if errors.Is(err, cursor.ErrInvalidCursor) {
			return badRequest(c, err.Error())
		}
		return svcError(c, err)
	}
	return c.JSON(resp)
}
