package main

import (
	"net/http"

	"catalog-service/internal/catalog"
	"catalog-service/internal/handler"
	mid "catalog-service/internal/middleware"
	"catalog-service/internal/repository"
	"catalog-service/pkg/config"
	"catalog-service/pkg/database"
	"catalog-service/pkg/logger"
	"catalog-service/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	logger.InitLogger(appConfig)
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting catalog-service",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database
	if err := database.InitDB(appConfig); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Wire repositories, engine, handlers
	products := repository.NewProductsRepository(database.GetDB())
	categories := repository.NewCategoriesRepository(database.GetDB())
	engine := catalog.NewEngine(products)

	productHandler := handler.NewProductHandler(engine,
		appConfig.Catalog.DefaultPageSize,
		appConfig.Catalog.SuggestionLimit)
	categoryHandler := handler.NewCategoryHandler(categories, engine,
		appConfig.Catalog.DefaultPageSize)
	statsHandler := handler.NewStatsHandler(products, categories)

	// Initialize Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Catalog API routes
	api := e.Group("/api")
	api.GET("/products", productHandler.List)
	api.GET("/products/suggestions", productHandler.Suggest)
	api.GET("/products/sku/:sku", productHandler.GetBySKU)
	api.GET("/products/:id", productHandler.Get)
	api.GET("/categories", categoryHandler.List)
	api.GET("/categories/:slug", categoryHandler.Get)
	api.GET("/categories/:slug/products", categoryHandler.ListProducts)
	api.GET("/stats", statsHandler.Get)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
