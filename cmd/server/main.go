package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/ItzMeSam13/AI-Dynamic-Pricing-System/internal/audit"
	"github.com/ItzMeSam13/AI-Dynamic-Pricing-System/internal/auth"
	"github.com/ItzMeSam13/AI-Dynamic-Pricing-System/internal/catalog"
	"github.com/ItzMeSam13/AI-Dynamic-Pricing-System/internal/clients"
	"github.com/ItzMeSam13/AI-Dynamic-Pricing-System/internal/config"
	"github.com/ItzMeSam13/AI-Dynamic-Pricing-System/internal/dashboard"
	"github.com/ItzMeSam13/AI-Dynamic-Pricing-System/internal/database"
	"github.com/ItzMeSam13/AI-Dynamic-Pricing-System/internal/lock"
	"github.com/ItzMeSam13/AI-Dynamic-Pricing-System/internal/middleware"
	"github.com/ItzMeSam13/AI-Dynamic-Pricing-System/internal/pricing"
	"github.com/ItzMeSam13/AI-Dynamic-Pricing-System/internal/store"
	"github.com/ItzMeSam13/AI-Dynamic-Pricing-System/internal/users"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	switch lvl, err := logrus.ParseLevel(cfg.LogLevel); {
	case err == nil && cfg.LogLevel != "":
		logger.SetLevel(lvl)
	case cfg.IsProduction():
		logger.SetLevel(logrus.InfoLevel)
	default:
		logger.SetLevel(logrus.DebugLevel)
	}

	database.Init(cfg, logger)

	locker := newLocker(cfg, logger)

	searchClient := clients.NewSearchClient(cfg.SerpAPIURL, cfg.SerpAPIKey, cfg.SerpRatePerSec, cfg.HTTPClientTimeout)
	rateClient := clients.NewRateClient(cfg.ExchangeRateAPIURL, cfg.BaseCurrency, cfg.TargetCurrency, cfg.HTTPClientTimeout)

	var generator pricing.TextGenerator
	if cfg.GeminiAPIKey != "" {
		generator = clients.NewGeminiClient(cfg.GeminiAPIURL, cfg.GeminiModel, cfg.GeminiAPIKey, cfg.HTTPClientTimeout)
	}
	recommender := pricing.NewRecommender(cfg.PricingStrategy, generator, cfg.TargetCurrency,
		logger.WithField("component", "recommender"))

	userRepo := users.NewRepository(database.DB)
	productStore := store.NewProductStore(database.DB, locker, logger.WithField("component", "product_store"))

	dashboardLogger := logger.WithField("component", "dashboard")
	svc := dashboard.NewService(dashboard.Options{
		Users:          userRepo,
		Search:         searchClient,
		Rates:          rateClient,
		Recommender:    recommender,
		Products:       productStore,
		Changes:        audit.NewReader(database.DB),
		TargetCurrency: cfg.TargetCurrency,
		Logger:         dashboardLogger,
	})

	httpLogger := logger.WithField("component", "http")
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(httpLogger),
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))
	app.Use(middleware.RequestLogger(httpLogger))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("welcome to API")
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/categories", catalog.ListCategoriesHandler())

	// Public auth
	app.Post("/auth/signup", auth.SignupHandler(cfg.JWTSecret, userRepo))
	app.Post("/auth/login", auth.LoginHandler(cfg.JWTSecret, userRepo))

	// Protected
	protected := app.Group("")
	protected.Use(auth.JWTMiddleware(cfg.JWTSecret))

	protected.Get("/auth/me", auth.MeHandler(userRepo))

	protected.Get("/dashboard/fetch-products/:userId?", dashboard.FetchProductsHandler(svc, dashboardLogger))
	protected.Get("/dashboard/products", dashboard.ListStoredProductsHandler(svc, dashboardLogger))
	protected.Get("/dashboard/products/export", dashboard.ExportProductsHandler(svc, dashboardLogger))
	protected.Get("/dashboard/price-changes", dashboard.ListPriceChangesHandler(svc, dashboardLogger))

	logger.WithFields(logrus.Fields{
		"port":     cfg.HTTPPort,
		"strategy": recommender.Name(),
	}).Info("server listening")
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}

// newLocker picks the Redis locker when REDIS_ADDR is set and reachable,
// otherwise the in-process one.
func newLocker(cfg *config.Config, logger *logrus.Logger) lock.Locker {
	if cfg.RedisAddr == "" {
		logger.Info("REDIS_ADDR not set, product writes locked in process")
		return lock.NewMemoryLocker()
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.WithError(err).Warn("redis unreachable, product writes locked in process")
		_ = rdb.Close()
		return lock.NewMemoryLocker()
	}

	logger.WithField("addr", cfg.RedisAddr).Info("redis connected, product writes locked cluster-wide")
	return lock.NewRedisLocker(rdb, cfg.LockTTL)
}
