package main

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/rs/zerolog"

	"blog_platform/bootstrap"
	"blog_platform/database"
	_ "blog_platform/docs"
	"blog_platform/internal/handlers"
	"blog_platform/internal/middleware"
	"blog_platform/internal/repository"
	"blog_platform/internal/routes"
	"blog_platform/services"
)

// @title           Blog Platform API
// @version         1.0
// @description     REST backend for posts, comments, likes, tags and search.
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg := database.LoadConfig()
	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	// --- MongoDB Connection ---
	client := database.ConnectMongo(cfg)
	defer database.DisconnectMongo(client)
	db := client.Database(cfg.DBName)
	log.Info().Str("db", cfg.DBName).Msg("connected to MongoDB")

	if err := bootstrap.EnsureIndexes(db); err != nil {
		log.Fatal().Err(err).Msg("ensure indexes failed")
	}

	// --- Repositories / Services ---
	postRepo := repository.NewMongoPostRepo(db)
	commentRepo := repository.NewMongoCommentRepo(db)
	userRepo := repository.NewMongoUserRepo(db)

	postSvc := services.NewPostService(postRepo, commentRepo, userRepo)
	commentSvc := services.NewCommentService(commentRepo, postRepo, userRepo)
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, 0)
	userSvc := services.NewUserService(userRepo, postSvc)

	// --- Fiber App Setup ---
	app := fiber.New()

	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:request_id} ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(middleware.JWTAuth(cfg.JWTSecret, userRepo))

	// Swagger docs
	app.Get("/docs/*", swagger.HandlerDefault)

	routes.AuthRoutes(app, &handlers.AuthHandler{Svc: authSvc})
	routes.UserRoutes(app, &handlers.UserHandler{Svc: userSvc})
	commentHandler := &handlers.CommentHandler{Svc: commentSvc}
	routes.PostRoutes(app, &handlers.PostHandler{Svc: postSvc}, commentHandler)
	routes.CommentRoutes(app, commentHandler)

	log.Info().Str("port", cfg.Port).Msg("listening")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
