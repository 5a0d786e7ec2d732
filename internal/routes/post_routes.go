package routes

import (
	"github.com/gofiber/fiber/v2"

	"blog_platform/internal/handlers"
	"blog_platform/internal/middleware"
)

func PostRoutes(app *fiber.App, posts *handlers.PostHandler, comments *handlers.CommentHandler) {
	g := app.Group("/api/posts")

	g.Get("/", posts.List)
	g.Post("/", middleware.RequireAuth(), posts.Create)
	g.Get("/:id", posts.Get)
	g.Put("/:id", middleware.RequireAuth(), posts.Update)
	g.Delete("/:id", middleware.RequireAuth(), posts.Delete)
	g.Post("/:id/like", middleware.RequireAuth(), posts.ToggleLike)

	g.Get("/:postId/comments", comments.ListByPost)
}
