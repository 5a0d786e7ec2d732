package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"blog_platform/dto"
	mid "blog_platform/internal/middleware"
	"blog_platform/model"
	"blog_platform/services"
)

type PostHandler struct {
	Svc *services.PostService
}

func validateCreatePost(body dto.CreatePostDTO) map[string]string {
	fields := map[string]string{}
	if n := len(body.Title); n < 3 || n > 100 {
		fields["title"] = "title must be 3-100 characters"
	}
	if len(body.Content) < 10 {
		fields["content"] = "content must be at least 10 characters"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// Create godoc
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        data  body      dto.CreatePostDTO  true  "Post payload"
// @Success      201   {object}  dto.PostResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /posts [post]
func (h *PostHandler) Create(c *fiber.Ctx) error {
	requester, err := mid.RequesterFromLocals(c)
	if err != nil {
		return err
	}

	var body dto.CreatePostDTO
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}
	if fields := validateCreatePost(body); fields != nil {
		return validationFailed(c, fields)
	}

	resp, err := h.Svc.Create(c.Context(), requester.ID, body)
	if err != nil {
		return svcError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// List godoc
// @Summary      List posts
// @Description  Newest first. Filter by tag membership and/or text search; both combine with AND.
// @Tags         posts
// @Produce      json
// @Param        tag     query  string  false  "Exact tag"
// @Param        search  query  string  false  "Text search over title and tags"
// @Param        page    query  int     false  "Page number (1-based)"
// @Param        limit   query  int     false  "Page size"
// @Success      200  {object}  dto.ListPostsResponse
// @Router       /posts [get]
func (h *PostHandler) List(c *fiber.Ctx) error {
	filter := model.ListFilter{
		Tag:    c.Query("tag"),
		Search: c.Query("search"),
		Page:   int64(c.QueryInt("page", 1)),
		Limit:  int64(c.QueryInt("limit", 10)),
	}

	resp, err := h.Svc.List(c.Context(), filter)
	if err != nil {
		return svcError(c, err)
	}
	return c.JSON(resp)
}

// Get godoc
// @Summary      Get a post with its comments
// @Tags         posts
// @Produce      json
// @Param        id  path  string  true  "Post ID (hex)"
// @Success      200  {object}  dto.PostResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /posts/{id} [get]
func (h *PostHandler) Get(c *fiber.Ctx) error {
	id, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid post id")
	}

	resp, err := h.Svc.Get(c.Context(), id)
	if err != nil {
		return svcError(c, err)
	}
	return c.JSON(resp)
}

// Update applies the caller-supplied fields only; anything absent from
// the body keeps its stored value.
func (h *PostHandler) Update(c *fiber.Ctx) error {
	requester, err := mid.RequesterFromLocals(c)
	if err != nil {
		return err
	}

	id, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid post id")
	}

	var body dto.UpdatePostDTO
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}
	fields := map[string]string{}
	if body.Title != nil {
		if n := len(*body.Title); n < 3 || n > 100 {
			fields["title"] = "title must be 3-100 characters"
		}
	}
	if body.Content != nil && len(*body.Content) < 10 {
		fields["content"] = "content must be at least 10 characters"
	}
	if len(fields) > 0 {
		return validationFailed(c, fields)
	}

	resp, err := h.Svc.Update(c.Context(), id, requester, body)
	if err != nil {
		return svcError(c, err)
	}
	return c.JSON(resp)
}

func (h *PostHandler) Delete(c *fiber.Ctx) error {
	requester, err := mid.RequesterFromLocals(c)
	if err != nil {
		return err
	}

	id, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid post id")
	}

	if err := h.Svc.Delete(c.Context(), id, requester); err != nil {
		return svcError(c, err)
	}
	return c.JSON(fiber.Map{"message": "post removed"})
}

// ToggleLike godoc
// @Summary      Like or unlike a post
// @Description  Adds the requester to likedBy if absent, removes otherwise. One endpoint, toggle semantics.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Post ID (hex)"
// @Success      200  {object}  dto.LikeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /posts/{id}/like [post]
func (h *PostHandler) ToggleLike(c *fiber.Ctx) error {
	requester, err := mid.RequesterFromLocals(c)
	if err != nil {
		return err
	}

	id, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid post id")
	}

	resp, err := h.Svc.ToggleLike(c.Context(), id, requester.ID)
	if err != nil {
		return svcError(c, err)
	}
	return c.JSON(resp)
}
