package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/minio/minio-go/v7"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"productivity-hub/internal/config"
	"productivity-hub/internal/handler"
	"productivity-hub/internal/middleware"
	"productivity-hub/internal/repository"
	"productivity-hub/internal/service"
	"productivity-hub/internal/service/auth"
	"productivity-hub/internal/service/reminder"
	"productivity-hub/internal/worker"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	zlog, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()
	zap.ReplaceGlobals(zlog)

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	var redisClient *redis.Client
	if rc, err := config.NewRedisClient(cfg); err != nil {
		zlog.Warn("redis unavailable, skill cache and sweep lock disabled", zap.Error(err))
	} else {
		redisClient = rc
		defer redisClient.Close()
	}

	var minioClient *minio.Client
	if mc, err := config.NewMinIOClient(cfg, zlog); err != nil {
		zlog.Warn("minio unavailable, account export disabled", zap.Error(err))
	} else {
		minioClient = mc
	}

	var nc *nats.Conn
	if cfg.NATSURL != "" {
		conn, err := config.NewNATSConn(cfg, zlog, 10*time.Second)
		if err != nil {
			zlog.Warn("nats unavailable, reminder checks run in-process", zap.Error(err))
		} else {
			nc = conn
			defer nc.Drain()
		}
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redisClient, minioClient, nc, cfg, zlog)
	handlers := handler.NewHandlers(services, zlog)

	if nc != nil {
		sub, err := reminder.Subscribe(nc, services.Reminder, cfg.ReminderLockTTL)
		if err != nil {
			zlog.Fatal("failed to subscribe to reminder checks", zap.Error(err))
		}
		defer func() { _ = sub.Unsubscribe() }()
	}

	sweep := worker.NewReminderSweep(repos.User, services.Reminder, services.Email, zlog.Named("reminder-sweep"), cfg.ReminderSweepInterval)
	sweep.Start()
	defer sweep.Stop()

	cleanup := worker.NewSessionCleanup(repos.Session, zlog.Named("session-cleanup"), time.Hour)
	cleanup.Start()
	defer cleanup.Stop()

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.NewErrorHandler(zlog),
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	setupRoutes(app, handlers, services.Auth, !cfg.IsProduction())

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		zlog.Info("shutting down")
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	zlog.Info("server starting", zap.String("port", cfg.Port), zap.String("environment", cfg.Environment))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zlog.Error("server stopped", zap.Error(err))
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, authService auth.Service, devRoutes bool) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	authRoutes := v1.Group("/auth")
	authRoutes.Post("/register", h.Auth.Register)
	authRoutes.Post("/login", h.Auth.Login)
	authRoutes.Post("/refresh", h.Auth.RefreshToken)
	authRoutes.Post("/logout", h.Auth.Logout)

	protected := v1.Group("", middleware.AuthRequired(authService))

	users := protected.Group("/users")
	users.Get("/me", h.User.GetProfile)
	users.Put("/me", h.User.UpdateProfile)
	users.Get("/search", h.User.SearchBySkill)
	users.Post("/me/export", h.Export.ExportAccount)

	protected.Get("/skills/top", h.User.TopSkills)

	notes := protected.Group("/notes")
	notes.Post("/", h.Note.Create)
	notes.Get("/", h.Note.List)
	notes.Get("/:noteId", h.Note.Get)
	notes.Put("/:noteId", h.Note.Update)
	notes.Delete("/:noteId", h.Note.Delete)

	tasks := protected.Group("/tasks")
	tasks.Post("/", h.Task.Create)
	tasks.Get("/", h.Task.List)
	tasks.Get("/:taskId", h.Task.Get)
	tasks.Put("/:taskId", h.Task.Update)
	tasks.Delete("/:taskId", h.Task.Delete)

	courses := protected.Group("/courses")
	courses.Post("/", h.Course.Create)
	courses.Get("/", h.Course.List)
	courses.Get("/:courseId", h.Course.Get)
	courses.Put("/:courseId", h.Course.Update)
	courses.Delete("/:courseId", h.Course.Delete)

	notifications := protected.Group("/notifications")
	notifications.Get("/", h.Notification.List)
	notifications.Get("/unread-count", h.Notification.GetUnreadCount)
	notifications.Post("/check", h.Notification.CheckIncomplete)
	notifications.Patch("/:id/read", h.Notification.MarkAsRead)
	notifications.Post("/mark-all-read", h.Notification.MarkAllAsRead)
	notifications.Delete("/:id", h.Notification.Delete)
	notifications.Delete("/", h.Notification.DeleteAll)
	if devRoutes {
		notifications.Post("/test", h.Notification.SendTest)
	}
}
