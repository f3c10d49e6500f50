package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/amrutdhara/orderbot/database"
	"github.com/amrutdhara/orderbot/internal/config"
	"github.com/amrutdhara/orderbot/internal/conversation"
	"github.com/amrutdhara/orderbot/internal/handlers"
	"github.com/amrutdhara/orderbot/internal/jobs"
	"github.com/amrutdhara/orderbot/internal/routes"
	"github.com/amrutdhara/orderbot/internal/services"
	"github.com/amrutdhara/orderbot/internal/session"
	"github.com/amrutdhara/orderbot/internal/storage"
)

const (
	version         = "1.0.0"
	shutdownTimeout = 10 * time.Second
)

func main() {
	// Load .env file for local development
	if os.Getenv("INSTANCE_CONNECTION_NAME") == "" {
		config.LoadDotEnv()
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	// Initialize storage
	var store storage.Store
	if cfg.UseMemoryStore {
		log.Println("⚠️  Using in-memory storage (not for production!)")
		store = storage.NewMemoryStore()
	} else {
		log.Println("📦 Connecting to PostgreSQL database...")
		db, err := database.Connect(cfg.Database)
		if err != nil {
			log.Fatal(err)
		}

		log.Println("🔄 Running database migrations...")
		if err := database.Migrate(db); err != nil {
			log.Fatal(err)
		}
		log.Println("✅ Database migrations completed!")

		store = storage.NewDatabaseStore(db)
		log.Println("✅ Using PostgreSQL database storage")
	}

	// Notification channels
	notifyCfg := services.NotificationConfig{
		AdminPhone: cfg.Twilio.AdminPhone,
		Brand:      cfg.BotName,
	}

	var twilioService *services.TwilioService
	if cfg.Twilio.Configured() {
		twilioService, err = services.NewTwilioService(cfg.Twilio)
		if err != nil {
			log.Fatal("Failed to initialize Twilio service: ", err)
		}
		notifyCfg.Messages = twilioService
		log.Println("✅ Twilio service initialized")
	} else {
		log.Println("⚠️  Twilio credentials not found - SMS and WhatsApp features disabled")
	}

	if cfg.Postmark.Configured() {
		emailSender, err := services.NewPostmarkSender(cfg.Postmark, cfg.SupportEmail)
		if err != nil {
			log.Fatal("Failed to initialize Postmark: ", err)
		}
		notifyCfg.Email = emailSender
		log.Println("✅ Postmark email initialized")
	}

	// Initialize all services
	authService := services.NewAuthService(store)
	orderService := services.NewOrderService(store)
	notificationService := services.NewNotificationService(store, notifyCfg)

	sessions := session.NewStore(session.Config{Timeout: cfg.SessionTimeout()})
	sweeper := jobs.NewSessionSweeper(sessions, cfg.SessionCleanupInterval)
	sweeper.Start()

	bot := conversation.New(sessions, authService, orderService, notificationService, conversation.Options{
		BotName:             cfg.BotName,
		SupportContact:      cfg.SupportContact,
		SupportEmail:        cfg.SupportEmail,
		NotificationTimeout: cfg.NotificationTimeout,
	})

	// Create fiber app
	app := fiber.New(fiber.Config{
		AppName: "Amrut-Dhara Bot v" + version,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, OPTIONS",
	}))

	// Twilio is optional; a nil interface keeps the handler from sending
	var replySender handlers.ReplySender
	if twilioService != nil {
		replySender = twilioService
	}

	routes.SetupRoutes(app, routes.Dependencies{
		Webhook:                  handlers.NewWebhookHandler(bot),
		WhatsApp:                 handlers.NewWhatsAppHandler(bot, replySender, cfg.WhatsAppVerifyToken),
		Health:                   handlers.NewHealthHandler(version, store, bot),
		Users:                    handlers.NewUserHandler(authService),
		TwilioAuthToken:          cfg.Twilio.AuthToken,
		PublicURL:                cfg.PublicURL,
		DisableWebhookValidation: cfg.DisableWebhookValidation || cfg.IsDevelopment(),
		PublicDir:                cfg.PublicDir,
	})

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	shutdownDone := make(chan struct{})

	go func() {
		defer close(shutdownDone)
		<-c
		log.Println("\n🛑 Gracefully shutting down...")
		log.Println("⏹️  Stopping session sweeper...")
		sweeper.Stop()

		log.Println("⏹️  Shutting down server...")
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			log.Printf("⚠️  Server shutdown: %v", err)
		}

		log.Println("⏹️  Waiting for order notifications...")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := bot.Wait(ctx); err != nil {
			log.Printf("⚠️  Notifications still pending at shutdown: %v", err)
		}
	}()

	// Start server
	log.Println("========================================")
	log.Printf("🚀 Amrut-Dhara Bot starting on port %s", cfg.Port)
	log.Printf("📊 Storage: %s", storageType(cfg))
	log.Printf("🌍 Environment: %s", cfg.Environment)
	log.Printf("⏱️  Session timeout: %v (sweep every %v)", cfg.SessionTimeout(), cfg.SessionCleanupInterval)
	log.Printf("📱 Twilio: %s", configuredStatus(cfg.Twilio.Configured()))
	log.Printf("📧 Email: %s", configuredStatus(cfg.Postmark.Configured()))
	log.Println("========================================")

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
	<-shutdownDone
	log.Println("👋 Shutdown complete")
}

func storageType(cfg *config.Config) string {
	if cfg.UseMemoryStore {
		return "In-Memory (Testing)"
	}
	return "PostgreSQL Database"
}

func configuredStatus(ok bool) string {
	if ok {
		return "Configured"
	}
	return "Not configured"
}
