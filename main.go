package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/xplorebytesolutions/LeadsCone-backend-sub001/database"
	"github.com/xplorebytesolutions/LeadsCone-backend-sub001/internal/handlers"
	"github.com/xplorebytesolutions/LeadsCone-backend-sub001/internal/models"
	"github.com/xplorebytesolutions/LeadsCone-backend-sub001/internal/routes"
	"github.com/xplorebytesolutions/LeadsCone-backend-sub001/internal/services"
	"github.com/xplorebytesolutions/LeadsCone-backend-sub001/internal/storage"
)

func main() {
	// Load .env file for local development
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found - checking environment variables")
	}

	// Initialize storage
	var store storage.Store

	// Check if we should use memory store (for testing)
	if os.Getenv("USE_MEMORY_STORE") == "true" {
		log.Println("⚠️  Using in-memory storage (not for production!)")
		store = storage.NewMemoryStore()
	} else {
		// Connect to database
		log.Println("📦 Connecting to PostgreSQL database...")
		database.Connect()

		// Run migrations
		log.Println("🔄 Running database migrations...")
		err := database.DB.AutoMigrate(
			&models.FlowDefinition{},
			&models.FlowStep{},
			&models.ButtonLink{},
			&models.OutboundMessage{},
			&models.ExecutionLogEntry{},
			&models.JourneyState{},
			&models.Contact{},
			&models.BusinessSettings{},
			&models.WabaAccount{},
			&models.Campaign{},
			&models.TemplateMeta{},
		)
		if err != nil {
			log.Fatal("Failed to migrate database:", err)
		}
		log.Println("✅ Database migrations completed!")

		store = storage.NewDatabaseStore(database.DB)
		log.Println("✅ Using PostgreSQL database storage")
	}
	storage.SetStore(store)

	// Provider clients
	senders := map[string]services.MessageSender{
		models.ProviderMeta: services.NewMetaCloudService(),
	}
	twilioService, err := services.NewTwilioService()
	if err != nil {
		log.Printf("⚠️  Twilio service not initialized: %v", err)
	} else {
		senders[models.ProviderTwilio] = twilioService
		log.Println("✅ Twilio service initialized")
	}

	// Initialize all services
	templateService := services.NewTemplateService(store)
	senderResolver := services.NewSenderResolver(store)
	engine := services.NewFlowEngine(store, senderResolver, templateService, senders)
	journeyTracker := services.NewJourneyTracker(store, services.NewHTTPJourneyPublisher())
	processor := services.NewClickProcessor(
		store,
		services.NewOriginResolver(store),
		services.NewButtonMatcher(store),
		services.NewEligibilityEvaluator(store),
		journeyTracker,
		engine,
	)
	flowService := services.NewFlowService(store)

	log.Println("✅ All services initialized")

	// Create fiber app
	app := fiber.New(fiber.Config{
		AppName: "LeadsCone Backend v1.0.0",
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
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	// Health check endpoint with database status
	app.Get("/", func(c *fiber.Ctx) error {
		response := fiber.Map{
			"service": "LeadsCone Backend API",
			"version": "1.0.0",
			"status":  "healthy",
			"storage": getStorageType(),
			"whatsapp": fiber.Map{
				"meta":   true,
				"twilio": twilioService != nil,
			},
		}

		if os.Getenv("USE_MEMORY_STORE") != "true" && database.DB != nil {
			sqlDB, err := database.DB.DB()
			dbStatus := "connected"
			if err != nil {
				dbStatus = "error: " + err.Error()
			} else if err := sqlDB.Ping(); err != nil {
				dbStatus = "error: " + err.Error()
			}

			var flowCount, messageCount, journeyCount int64
			database.DB.Model(&models.FlowDefinition{}).Count(&flowCount)
			database.DB.Model(&models.OutboundMessage{}).Count(&messageCount)
			database.DB.Model(&models.JourneyState{}).Count(&journeyCount)

			response["database"] = fiber.Map{
				"status":   dbStatus,
				"flows":    flowCount,
				"messages": messageCount,
				"journeys": journeyCount,
			}
		}

		return c.JSON(response)
	})

	// Health check endpoint for monitoring
	app.Get("/health", func(c *fiber.Ctx) error {
		status := "healthy"
		statusCode := 200

		if os.Getenv("USE_MEMORY_STORE") != "true" && database.DB != nil {
			sqlDB, err := database.DB.DB()
			if err != nil || sqlDB.Ping() != nil {
				status = "unhealthy"
				statusCode = 503
			}
		}

		return c.Status(statusCode).JSON(fiber.Map{
			"status": status,
			"services": fiber.Map{
				"database": status == "healthy",
				"twilio":   twilioService != nil,
			},
		})
	})

	// Setup routes
	routes.SetupRoutes(app,
		handlers.NewWebhookHandler(processor),
		handlers.NewFlowHandler(flowService),
		handlers.NewTemplateHandler(templateService),
	)

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("\n🛑 Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	log.Println("========================================")
	log.Printf("🚀 LeadsCone Backend starting on port %s", port)
	log.Printf("📊 Storage: %s", getStorageType())
	log.Println("========================================")

	log.Fatal(app.Listen(":" + port))
}

func getStorageType() string {
	if os.Getenv("USE_MEMORY_STORE") == "true" {
		return "In-Memory (Testing)"
	}
	return "PostgreSQL Database"
}
