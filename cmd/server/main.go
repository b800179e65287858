package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/TonyDastan/workwave/internal/config"
	"github.com/TonyDastan/workwave/internal/infrastructure/db"
	"github.com/TonyDastan/workwave/internal/infrastructure/logger"
	transporthttp "github.com/TonyDastan/workwave/internal/transport/http"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func main() {
	configPath := "config/config.yaml"
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		configPath = "../config/config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log, err := logger.New(cfg.Logger)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	database, err := db.NewPostgresConnection(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	log.Info("database connection established")

	if err := db.RunMigrations(database); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}
	log.Info("database migrations completed")

	app := fiber.New(fiber.Config{
		ReadTimeout:           cfg.Server.ReadTimeout,
		WriteTimeout:          cfg.Server.WriteTimeout,
		IdleTimeout:           cfg.Server.IdleTimeout,
		BodyLimit:             int(cfg.Storage.MaxUploadSize) + 1<<20,
		ErrorHandler:          globalErrorHandler(log),
		DisableStartupMessage: true,
	})

	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))

	allowedOrigins := "http://localhost:3000"
	if len(cfg.Auth.AllowedOrigins) > 0 {
		allowedOrigins = strings.Join(cfg.Auth.AllowedOrigins, ",")
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, HEAD, PUT, DELETE, PATCH",
	}))

	app.Use(func(c *fiber.Ctx) error {
		hdr := cfg.Features.RequestIDHeader
		var reqID string
		if hdr != "" {
			reqID = c.Get(hdr)
		}
		if reqID == "" {
			reqID = uuid.New().String()
		}
		ctx := context.WithValue(c.Context(), "request_id", reqID)
		c.SetUserContext(ctx)
		return c.Next()
	})

	if cfg.Features.EnableRequestLogging {
		app.Use(func(c *fiber.Ctx) error {
			start := time.Now()
			err := c.Next()
			routePath := ""
			if c.Route() != nil {
				routePath = c.Route().Path
			}
			log.Infow("http_access",
				"method", c.Method(),
				"path", c.Path(),
				"route", routePath,
				"query", string(c.Request().URI().QueryString()),
				"status", c.Response().StatusCode(),
				"latency_ms", time.Since(start).Milliseconds(),
				"client_ip", c.IP(),
				"user_agent", string(c.Request().Header.UserAgent()),
				"request_id", c.Context().Value("request_id"),
			)
			return err
		})
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	transporthttp.SetupRoutes(app, transporthttp.RouterConfig{
		DB:     database,
		Logger: log,
		Config: cfg,
	})

	go func() {
		if err := app.Listen(cfg.Server.Address()); err != nil {
			log.Fatalf("server failed to start: %v", err)
		}
	}()

	log.Infof("server started on %s", cfg.Server.Address())

	gracefulShutdown(app, database, log)
}

func globalErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		if code == fiber.StatusRequestTimeout || code == fiber.StatusNotFound {
			log.Warnw("request failed",
				"method", c.Method(),
				"path", c.Path(),
				"status", code,
				"error", err.Error(),
				"request_id", c.Context().Value("request_id"),
			)
		} else {
			log.Errorw("request error",
				"method", c.Method(),
				"path", c.Path(),
				"status", code,
				"error", err.Error(),
				"request_id", c.Context().Value("request_id"),
			)
		}

		return c.Status(code).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
}

func gracefulShutdown(app *fiber.App, database *gorm.DB, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Errorf("server forced to shutdown: %v", err)
	}

	if err := db.Close(database); err != nil {
		log.Errorf("failed to close database connection: %v", err)
	}

	log.Info("server exited gracefully")
}
