package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kiosk/internal/config"
	"kiosk/internal/handlers"
	"kiosk/internal/repositories"
	"kiosk/internal/seed"
	"kiosk/internal/services"
	"kiosk/internal/store"
	"kiosk/pkg/logger"
	"kiosk/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)

	ctx := context.Background()
	deps, err := newDependencies(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize store")
	}
	defer deps.close()

	if cfg.Seed.File != "" {
		if err := runSeed(ctx, cfg.Seed, deps, log); err != nil {
			log.WithError(err).Fatal("Failed to seed menu")
		}
		if cfg.Seed.Only {
			return
		}
	}

	// --- RabbitMQ (optional) ---
	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL}, log)
		if err != nil {
			log.WithError(err).Fatal("Failed to initialize RabbitMQ client")
		}
		defer mqClient.Close()
		publisher = mqClient

		go func() {
			log.Info("Starting RabbitMQ consumer for orders...")
			if err := mqClient.ConsumeOrderEvents(rabbitmq.LogOrderEvent(log)); err != nil {
				log.WithError(err).Error("Failed to start RabbitMQ consumer")
			}
		}()
	} else {
		log.Info("RABBITMQ_URL not set, order events are disabled")
	}

	app := newApp(cfg, deps, publisher, log)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.WithField("addr", cfg.AppPort).Info("Starting server")
		if err := app.Listen(cfg.AppPort); err != nil {
			log.WithError(err).Fatal("Server failed to start")
		}
	}()

	<-quit
	log.Info("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.WithError(err).Error("Error during Fiber shutdown")
	}
	log.Info("Server gracefully stopped")
}

// dependencies holds the repositories for the configured driver.
type dependencies struct {
	db         *gorm.DB
	categories repositories.CategoryRepository
	items      repositories.MenuItemRepository
	orders     repositories.OrderRepository
}

func newDependencies(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*dependencies, error) {
	if cfg.Store.Driver == config.DriverMemory {
		log.Warn("Using the in-memory store, data is lost on exit")
		return &dependencies{
			categories: repositories.NewMemoryCategoryRepository(),
			items:      repositories.NewMemoryMenuItemRepository(),
			orders:     repositories.NewMemoryOrderRepository(),
		}, nil
	}

	db, err := store.Open(ctx, cfg.Store, log)
	if err != nil {
		return nil, err
	}
	log.WithField("driver", cfg.Store.Driver).Info("Store connected")
	return &dependencies{
		db:         db,
		categories: repositories.NewGORMCategoryRepository(db),
		items:      repositories.NewGORMMenuItemRepository(db),
		orders:     repositories.NewGORMOrderRepository(db),
	}, nil
}

func (d *dependencies) health(timeout time.Duration) handlers.HealthCheck {
	if d.db == nil {
		return nil
	}
	return func(ctx context.Context) error {
		return store.Ping(ctx, d.db, timeout)
	}
}

func (d *dependencies) close() {
	if d.db != nil {
		_ = store.Close(d.db)
	}
}

func runSeed(ctx context.Context, cfg config.SeedConfig, deps *dependencies, log *logrus.Logger) error {
	menu, err := seed.LoadFile(cfg.File)
	if err != nil {
		return err
	}
	res, err := seed.NewSeeder(deps.categories, deps.items, log).Apply(ctx, menu, cfg.Drop)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"file":       cfg.File,
		"categories": res.Categories,
		"items":      res.Items,
		"skipped":    res.Skipped,
	}).Info("Seed finished")
	return nil
}

func newApp(cfg *config.Config, deps *dependencies, publisher services.EventPublisher, log *logrus.Logger) *fiber.App {
	menuService := services.NewMenuService(deps.categories, deps.items)
	orderService := services.NewOrderService(deps.orders, deps.items, publisher, log)
	imageService := services.NewImageService(cfg.ImagesDir)

	return handlers.NewApp(handlers.Options{
		Logger:       log,
		StoreTimeout: cfg.Store.Timeout,
		Health:       deps.health(cfg.Store.Timeout),
	},
		handlers.NewMenuHandler(menuService),
		handlers.NewOrderHandler(orderService),
		handlers.NewImageHandler(imageService),
	)
}
