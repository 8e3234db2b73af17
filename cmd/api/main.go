package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/MOSHEDORA/FinDora/internal/config"
	"github.com/MOSHEDORA/FinDora/internal/database"
	"github.com/MOSHEDORA/FinDora/internal/enricher"
	"github.com/MOSHEDORA/FinDora/internal/handlers"
	applogger "github.com/MOSHEDORA/FinDora/internal/logger"
	"github.com/MOSHEDORA/FinDora/internal/middleware"
	"github.com/MOSHEDORA/FinDora/internal/places"
	"github.com/MOSHEDORA/FinDora/internal/services"
	"github.com/MOSHEDORA/FinDora/internal/telemetry"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

const serviceName = "findora-api"

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	if err := applogger.Init(); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer applogger.Sync()

	// Initialize OpenTelemetry Tracer
	ctx := context.Background()
	tracerShutdown, err := telemetry.InitTracer(ctx, serviceName, cfg.OTLPEndpoint)
	if err != nil {
		log.Printf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tracerShutdown(ctx); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	// Initialize OpenTelemetry Metrics
	meterShutdown, err := telemetry.InitMeter(ctx, serviceName, cfg.OTLPEndpoint)
	if err != nil {
		log.Printf("Failed to initialize metrics: %v", err)
	}
	defer func() {
		if err := meterShutdown(ctx); err != nil {
			log.Printf("Error shutting down metrics: %v", err)
		}
	}()

	// Initialize database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// A missing key for the active provider is fatal: the whole service is
	// place search. Enrichment degrades instead of failing.
	provider, err := places.NewProvider(cfg)
	if err != nil {
		log.Fatalf("Failed to configure places provider: %v", err)
	}
	enrich := enricher.New(cfg)
	if !enrich.Enabled() {
		log.Println("OPENROUTER_API_KEY not set, AI categorization disabled")
	}

	placesService := services.NewPlacesService(provider, enrich, services.NewPlaceCache())

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "FinDora API",
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     `{"time":"${time}","status":${status},"latency":"${latency}","ip":"${ip}","method":"${method}","path":"${path}","user_agent":"${ua}","error":"${error}"}` + "\n",
		TimeFormat: "2006-01-02T15:04:05Z07:00",
	}))
	app.Use(telemetry.New(telemetry.Config{
		ServiceName: serviceName,
	}))
	app.Use(middleware.PrometheusMiddleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowHeaders:     "Accept, Accept-Encoding, Authorization, Content-Type, DNT, Origin, User-Agent, X-Requested-With",
		AllowCredentials: false,
		ExposeHeaders:    "Content-Length, Content-Type",
		MaxAge:           86400,
	}))

	// Setup routes
	setupRoutes(app, db, cfg, placesService)

	port := cfg.ServerPort
	if port == "" {
		port = "3000"
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		log.Println("Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("Error shutting down server: %v", err)
		}
	}()

	log.Printf("Server starting on port %s (provider: %s)", port, provider.Name())
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, db *database.DB, cfg *config.Config, placesService *services.PlacesService) {
	// Health check endpoints for k8s probes
	app.Get("/healthz", handlers.HealthCheck)
	app.Get("/readyz", handlers.ReadyCheck(db))

	// Prometheus scrape endpoint, private networks only
	app.Get("/metrics", middleware.InternalOnly(), middleware.PrometheusHandler())

	// API group
	api := app.Group("/api")

	// Auth routes (no auth required except /me)
	auth := api.Group("/auth")
	handlers.SetupAuthRoutes(auth, db, cfg)

	// Places routes (auth required)
	placesGroup := api.Group("/places")
	handlers.SetupPlacesRoutes(placesGroup, placesService, cfg)

	// Search history routes (auth required)
	history := api.Group("/search-history")
	handlers.SetupHistoryRoutes(history, db, cfg)
}
