package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"math-academy/internal/config"
	"math-academy/internal/handler"
	"math-academy/internal/middleware"
	"math-academy/internal/pkg/logger"
	"math-academy/internal/repository"
	"math-academy/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	appLog := logger.New(cfg.Environment)

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		appLog.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redisClient, err := config.NewRedisClient(cfg)
	if err != nil {
		appLog.Warnf("Failed to connect to Redis: %v (caching disabled)", err)
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		appLog.Warnf("Failed to connect to MinIO: %v (attachment upload will not work)", err)
	}

	if !cfg.PushConfigured() {
		appLog.Warn("VAPID keys not configured; push delivery is disabled")
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redisClient, minioClient, cfg, appLog)
	handlers := handler.NewHandlers(services, cfg)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	setupRoutes(app, handlers, repos, services)

	appLog.Infof("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		appLog.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, repos *repository.Repositories, services *service.Services) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	// Every route sees the same resolved principal; handlers and services
	// never re-derive identity from cookies.
	v1.Use(middleware.ResolvePrincipal(repos.User, repos.Student, services.Sessions))

	auth := v1.Group("/auth")
	auth.Post("/login", h.Auth.AdminLogin)
	auth.Post("/student/login", h.Auth.StudentLogin)
	auth.Post("/student/logout", h.Auth.StudentLogout)

	notices := v1.Group("/notices")
	notices.Get("/", h.Notice.List)
	notices.Get("/unread-count", h.Notice.UnreadCount)
	notices.Post("/", middleware.RequireAdmin(), h.Notice.Create)
	notices.Post("/attachments", middleware.RequireAdmin(), h.Notice.UploadAttachment)
	notices.Get("/:id", h.Notice.Get)
	notices.Delete("/:id", middleware.RequireAdmin(), h.Notice.Delete)
	notices.Post("/:id/read", h.Notice.MarkRead)

	push := v1.Group("/push")
	push.Get("/public-key", h.Push.PublicKey)
	push.Post("/subscribe", h.Push.Subscribe)
	push.Post("/unsubscribe", h.Push.Unsubscribe)

	assessments := v1.Group("/assessments")
	assessments.Post("/", middleware.RequireAdmin(), h.Assessment.Create)

	dashboard := v1.Group("/dashboard", middleware.RequireAdmin())
	dashboard.Get("/stats", h.Dashboard.GetStats)
}
