package routes

import (
	"github.com/gofiber/fiber/v2"

	"blog_platform/internal/handlers"
	"blog_platform/internal/middleware"
)

func CommentRoutes(app *fiber.App, comments *handlers.CommentHandler) {
	g := app.Group("/api/comments", middleware.RequireAuth())

	g.Post("/", comments.Create)
	g.Put("/:id", comments.Update)
	g.Delete("/:id", comments.Delete)
	g.Post("/:id/like", comments.ToggleLike)
}
