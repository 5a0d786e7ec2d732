package routes

import (
	"github.com/gofiber/fiber/v2"

	"blog_platform/internal/handlers"
	"blog_platform/internal/middleware"
)

func AuthRoutes(app *fiber.App, auth *handlers.AuthHandler) {
	g := app.Group("/api/auth")

	g.Post("/register", auth.Register)
	g.Post("/login", auth.Login)
	g.Get("/profile", middleware.RequireAuth(), auth.Profile)
}
