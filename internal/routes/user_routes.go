package routes

import (
	"github.com/gofiber/fiber/v2"

	"blog_platform/internal/handlers"
	"blog_platform/internal/middleware"
)

func UserRoutes(app *fiber.App, users *handlers.UserHandler) {
	g := app.Group("/api/users")

	g.Get("/me/posts", middleware.RequireAuth(), users.MyPosts)
	g.Put("/profile", middleware.RequireAuth(), users.UpdateProfile)
	g.Put("/password", middleware.RequireAuth(), users.ChangePassword)
	g.Get("/:id", users.Get)
}
