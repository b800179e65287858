package http

import (
	"github.com/TonyDastan/workwave/internal/config"
	"github.com/TonyDastan/workwave/internal/core/services"
	"github.com/TonyDastan/workwave/internal/domain"
	"github.com/TonyDastan/workwave/internal/infrastructure/db"
	"github.com/TonyDastan/workwave/internal/infrastructure/logger"
	"github.com/TonyDastan/workwave/internal/infrastructure/storage"
	"github.com/TonyDastan/workwave/internal/transport/http/handlers"
	"github.com/TonyDastan/workwave/internal/transport/http/middleware"
	"github.com/TonyDastan/workwave/internal/transport/http/ws"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type RouterConfig struct {
	DB     *gorm.DB
	Logger *logger.Logger
	Config *config.Config
}

// SetupRoutes builds the repository, service and handler graph and mounts
// every route group on the app.
func SetupRoutes(app *fiber.App, cfg RouterConfig) {
	taskRepo := db.NewTaskRepository(cfg.DB, cfg.Logger)
	userRepo := db.NewUserRepository(cfg.DB, cfg.Logger)
	messageRepo := db.NewMessageRepository(cfg.DB, cfg.Logger)
	reviewRepo := db.NewReviewRepository(cfg.DB, cfg.Logger)
	activityRepo := db.NewActivityRepository(cfg.DB, cfg.Logger)

	authService := services.NewAuthService(services.AuthServiceConfig{
		UserRepo: userRepo,
		Logger:   cfg.Logger,
		Config:   cfg.Config.Auth,
	})
	hub := ws.NewHub(authService, cfg.Logger)
	taskService := services.NewTaskService(services.TaskServiceConfig{
		Repository:  taskRepo,
		UserRepo:    userRepo,
		Activity:    activityRepo,
		Logger:      cfg.Logger,
		EnableLocks: cfg.Config.Features.EnableLocks,
	})
	messageService := services.NewMessageService(services.MessageServiceConfig{
		MessageRepo: messageRepo,
		UserRepo:    userRepo,
		Notifier:    hub,
		Logger:      cfg.Logger,
	})
	reviewService := services.NewReviewService(services.ReviewServiceConfig{
		ReviewRepo: reviewRepo,
		TaskRepo:   taskRepo,
		UserRepo:   userRepo,
		Logger:     cfg.Logger,
	})
	uploadService := services.NewUploadService(services.UploadServiceConfig{
		Store:   storage.NewClient(cfg.Config.Storage, cfg.Logger),
		Logger:  cfg.Logger,
		MaxSize: cfg.Config.Storage.MaxUploadSize,
	})

	authHandler := handlers.NewAuthHandler(authService, cfg.Logger)
	taskHandler := handlers.NewTaskHandler(taskService, cfg.Logger)
	messageHandler := handlers.NewMessageHandler(messageService, cfg.Logger)
	reviewHandler := handlers.NewReviewHandler(reviewService, cfg.Logger)
	uploadHandler := handlers.NewUploadHandler(uploadService, cfg.Logger)

	authRequired := middleware.Auth(authService)
	loginLimiter := middleware.RateLimiter(cfg.Config.Auth.LoginRateLimit, cfg.Config.Auth.LoginRateWindow)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", loginLimiter, authHandler.Register)
	auth.Post("/login", loginLimiter, authHandler.Login)
	auth.Get("/profile", authRequired, authHandler.GetProfile)
	auth.Put("/profile", authRequired, authHandler.UpdateProfile)
	auth.Put("/password", authRequired, authHandler.ChangePassword)

	api.Get("/users/:id", authHandler.GetUser)

	tasks := api.Group("/tasks")
	tasks.Get("/", taskHandler.GetTasks)
	tasks.Post("/", authRequired, middleware.RequireRole(domain.UserRoleClient), taskHandler.CreateTask)
	tasks.Get("/:id", taskHandler.GetTask)
	tasks.Put("/:id", authRequired, taskHandler.UpdateTask)
	tasks.Delete("/:id", authRequired, taskHandler.DeleteTask)
	tasks.Post("/:id/apply", authRequired, middleware.RequireRole(domain.UserRoleWorker), taskHandler.SubmitProposal)
	tasks.Delete("/:id/proposals/:proposalId", authRequired, taskHandler.WithdrawProposal)
	tasks.Post("/:id/proposals/:proposalId/reject", authRequired, taskHandler.RejectProposal)
	tasks.Put("/:id/assign", authRequired, taskHandler.AcceptProposal)
	tasks.Put("/:id/status", authRequired, taskHandler.UpdateStatus)
	tasks.Post("/:id/rate", authRequired, taskHandler.RateTask)
	tasks.Get("/:id/activity", authRequired, taskHandler.GetActivity)

	messages := api.Group("/messages", authRequired)
	messages.Post("/", messageHandler.SendMessage)
	messages.Get("/", messageHandler.GetConversations)
	messages.Put("/:id/read", messageHandler.MarkRead)
	messages.Get("/:userId", messageHandler.GetConversation)

	reviews := api.Group("/reviews")
	reviews.Post("/", authRequired, reviewHandler.CreateReview)
	reviews.Get("/user/:id", reviewHandler.GetUserReviews)
	reviews.Get("/task/:id", reviewHandler.GetTaskReviews)

	uploads := api.Group("/uploads", authRequired)
	uploads.Post("/", uploadHandler.UploadFile)
	uploads.Post("/multiple", uploadHandler.UploadFiles)
	uploads.Delete("/:id", uploadHandler.DeleteFile)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/messages", websocket.New(hub.Handle))
}
