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
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/streadway/amqp"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"katalog/internal/config"
	"katalog/internal/handlers"
	"katalog/internal/middleware"
	"katalog/internal/models"
	"katalog/internal/repositories"
	"katalog/internal/services"
	"katalog/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// --- Product repository ---
	// A configured Mongo URI selects the document store; otherwise the
	// service runs on the seeded in-memory store (dev mode).
	var productRepo repositories.ProductRepository
	var mongoClient *mongo.Client
	if cfg.MongoURI != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		mongoClient, err = mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			logger.Fatal("failed to connect to MongoDB", zap.Error(err))
		}
		if err := mongoClient.Ping(ctx, nil); err != nil {
			logger.Fatal("failed to ping MongoDB", zap.Error(err))
		}
		logger.Info("connected to MongoDB", zap.String("database", cfg.MongoDB))
		productRepo = repositories.NewMongoProductRepository(mongoClient.Database(cfg.MongoDB))
	} else {
		memRepo := repositories.NewMemoryProductRepository()
		seedProducts(memRepo, logger)
		logger.Info("no MONGODB_URI configured, using in-memory store")
		productRepo = memRepo
	}

	// --- RabbitMQ client (optional) ---
	var publisher services.EventPublisher
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			logger.Fatal("failed to initialize RabbitMQ client", zap.Error(err))
		}
		defer mqClient.Close()
		publisher = mqClient

		// Log incoming product events. Downstream consumers (inventory,
		// notifications) would hook in the same way.
		if err := mqClient.ConsumeProductEvents(func(msg amqp.Delivery) error {
			logger.Info("product event received", zap.ByteString("body", msg.Body))
			return nil
		}); err != nil {
			logger.Warn("failed to start product event consumer", zap.Error(err))
		}
	}

	// --- Services and handlers ---
	productService := services.NewProductService(productRepo, publisher, logger)
	productHandler := handlers.NewProductHandler(productService, logger)

	// --- Fiber app ---
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(logger),
		BodyLimit:    10 * 1024 * 1024,
	})

	// A handler panic must end up in the error responder, not kill the
	// process.
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(middleware.RequestLogger(logger))
	app.Use(helmet.New())
	app.Use(cors.New())
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimitMax,
		Expiration: cfg.RateLimitWindow,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"error":   "Too many requests from this IP, please try again later.",
			})
		},
	}))
	app.Use("/api", middleware.APIVersion(cfg.APIVersion))

	// --- API routes ---
	api := app.Group("/api/" + cfg.APIVersion)
	productHandler.RegisterRoutes(api)

	// --- Health check ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "OK",
			"message": "Product catalog API is running",
		})
	})

	// --- 404 for unmatched routes ---
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Route not found",
		})
	})

	// --- Start HTTP server ---
	logger.Info("starting server", zap.String("port", cfg.Port), zap.String("apiVersion", cfg.APIVersion))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.Port); err != nil {
			logger.Fatal("server failed to start", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("shutting down server")

	if err := app.Shutdown(); err != nil {
		logger.Error("error during shutdown", zap.Error(err))
	}
	if mongoClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(ctx); err != nil {
			logger.Error("error disconnecting from MongoDB", zap.Error(err))
		}
	}
	logger.Info("server gracefully stopped")
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.LogDevelopment {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// seedProducts populates the in-memory repository with sample data so the
// dev-mode API has something to serve.
func seedProducts(repo repositories.ProductRepository, logger *zap.Logger) {
	products := []models.Product{
		{
			Name:        "iPhone 14 Pro",
			Description: "Latest iPhone with advanced camera system and A16 Bionic chip",
			Price:       999.99,
			Category:    "Electronics",
			Brand:       "Apple",
			Stock:       50,
			Images:      []string{"https://images.example.com/iphone-14-pro.jpg"},
			Rating:      4.8,
			Reviews:     1250,
			IsActive:    true,
		},
		{
			Name:        "Nike Air Max 270",
			Description: "Comfortable running shoes with Air Max technology",
			Price:       150.00,
			Category:    "Apparel",
			Brand:       "Nike",
			Stock:       100,
			Images:      []string{"https://images.example.com/air-max-270.jpg"},
			Rating:      4.5,
			Reviews:     890,
			IsActive:    true,
		},
		{
			Name:        "Samsung 4K Smart TV",
			Description: "55-inch 4K Ultra HD Smart TV with Crystal Display",
			Price:       699.99,
			Category:    "Electronics",
			Brand:       "Samsung",
			Stock:       25,
			Images:      []string{"https://images.example.com/samsung-4k-tv.jpg"},
			Rating:      4.6,
			Reviews:     567,
			IsActive:    true,
		},
	}

	for i := range products {
		if err := repo.Create(context.Background(), &products[i]); err != nil {
			logger.Warn("failed to seed product", zap.String("name", products[i].Name), zap.Error(err))
		}
	}
}
