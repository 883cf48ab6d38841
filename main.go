package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"reviewz/internal/handlers"
	"reviewz/internal/models"
	"reviewz/internal/services"
	"reviewz/internal/storage"
	"reviewz/pkg/rabbitmq"
)

// NewApp wires configuration, storage, services and handlers into a Fiber
// app. The returned RabbitMQ client is nil when events are disabled.
func NewApp() (*fiber.App, *rabbitmq.Client, error) {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("STORAGE_DRIVER", "memory")
	viper.SetDefault("DATABASE_DSN", "reviewz.db")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.AutomaticEnv()

	level, err := zerolog.ParseLevel(viper.GetString("LOG_LEVEL"))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// --- RabbitMQ (optional) ---
	var mqClient *rabbitmq.Client
	var publisher services.EventPublisher
	if url := viper.GetString("RABBITMQ_URL"); url != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: url})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize RabbitMQ client: %w", err)
		}
		publisher = mqClient
	}

	// --- Stores and allocators ---
	var (
		users    storage.Store[models.User]
		products storage.Store[models.Product]
		reviews  storage.Store[models.Review]

		userIDs    storage.Allocator
		productIDs storage.Allocator
		reviewIDs  storage.Allocator
	)

	driver := viper.GetString("STORAGE_DRIVER")
	switch driver {
	case "memory":
		users = storage.NewMemoryStore[models.User]()
		products = storage.NewMemoryStore[models.Product]()
		reviews = storage.NewMemoryStore[models.Review]()
		userIDs = storage.NewMemoryAllocator()
		productIDs = storage.NewMemoryAllocator()
		reviewIDs = storage.NewMemoryAllocator()
	case "sqlite", "postgres":
		var dialector gorm.Dialector
		dsn := viper.GetString("DATABASE_DSN")
		if driver == "sqlite" {
			dialector = sqlite.Open(dsn)
		} else {
			dialector = postgres.Open(dsn)
		}
		db, err := gorm.Open(dialector, &gorm.Config{})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.Review{}, &storage.Counter{}); err != nil {
			return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		users = storage.NewGormStore[models.User](db, "user_id")
		products = storage.NewGormStore[models.Product](db, "product_id")
		reviews = storage.NewGormStore[models.Review](db, "review_id")
		// Counter failures abort startup; allocators never fail
		// per-request for a reachable database.
		if userIDs, err = storage.NewGormAllocator(db, "user"); err != nil {
			return nil, nil, err
		}
		if productIDs, err = storage.NewGormAllocator(db, "product"); err != nil {
			return nil, nil, err
		}
		if reviewIDs, err = storage.NewGormAllocator(db, "review"); err != nil {
			return nil, nil, err
		}
	default:
		return nil, nil, fmt.Errorf("unknown STORAGE_DRIVER %q", driver)
	}

	// --- Services ---
	userService := services.NewUserService(users, userIDs, publisher)
	productService := services.NewProductService(products, users, reviews, productIDs, publisher)
	reviewService := services.NewReviewService(reviews, products, users, reviewIDs, publisher)

	// --- Handlers and routes ---
	app := fiber.New()
	app.Use(fiberlogger.New())

	apiV1 := app.Group("/api/v1")
	handlers.NewUserHandler(userService).RegisterRoutes(apiV1)
	handlers.NewProductHandler(productService).RegisterRoutes(apiV1)
	handlers.NewReviewHandler(reviewService).RegisterRoutes(apiV1)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	return app, mqClient, nil
}

func main() {
	app, mqClient, err := NewApp()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize application")
	}
	if mqClient != nil {
		defer mqClient.Close()

		// Log every published event; real consumers would dispatch on
		// msg.Type here.
		err := mqClient.ConsumeEvents(func(msg amqp.Delivery) error {
			log.Info().Str("type", msg.Type).Str("messageId", msg.MessageId).Msg("Received event")
			return nil
		})
		if err != nil {
			log.Error().Err(err).Msg("Failed to start event consumer")
		}
	}

	appPort := viper.GetString("APP_PORT")
	log.Info().Str("port", appPort).Msg("Starting server")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	<-quit
	log.Info().Msg("Shutting down server")

	if err := app.Shutdown(); err != nil {
		log.Error().Err(err).Msg("Error during Fiber shutdown")
	}

	log.Info().Msg("Server gracefully stopped")
}
