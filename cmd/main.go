package main

import (
	"net/http"

	"posledger-service/internal/handler"
	mid "posledger-service/internal/middleware"
	"posledger-service/internal/service"
	"posledger-service/pkg/config"
	"posledger-service/pkg/database"
	"posledger-service/pkg/jwtutil"
	"posledger-service/pkg/logger"
	"posledger-service/prometheus"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load .env file; env vars set by the environment win, so a missing
	// file is not an error
	_ = godotenv.Load()

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

	log.Info("Starting posledger-service",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	// Initialize JWT utility
	jwtutil.Initialize(&appConfig.JWT)
	log.Info("JWT utility initialized")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database
	db, err := database.InitDB(appConfig)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer database.Close(db)
	log.Info("Database connection established")

	// Construct services over the shared pool
	tenants := service.NewTenantService(db)
	quota := service.NewQuotaService(db, tenants)
	products := service.NewProductService(db, quota)
	sequencer := service.NewInvoiceSequencer(db, appConfig.Ledger.InvoicePrefix, appConfig.Ledger.InvoiceWidth)
	sales := service.NewSaleService(db, quota, products, sequencer)
	categories := service.NewCategoryService(db)
	dashboard := service.NewDashboardService(db, products)

	saleHandler := handler.NewSaleHandler(sales)
	productHandler := handler.NewProductHandler(products)
	categoryHandler := handler.NewCategoryHandler(categories)
	dashboardHandler := handler.NewDashboardHandler(dashboard)

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

	// Sales ledger routes - Apply auth middleware to validate JWT and extract tenant ID
	saleAPI := e.Group("/api/sales", mid.AuthMiddleware)
	saleAPI.POST("", saleHandler.CreateSale)
	saleAPI.GET("", saleHandler.ListSales)
	saleAPI.GET("/:id", saleHandler.GetSale)

	// Product catalog routes
	productAPI := e.Group("/api/products", mid.AuthMiddleware)
	productAPI.GET("", productHandler.ListProducts)
	productAPI.GET("/low-stock", productHandler.LowStock)
	productAPI.GET("/:id", productHandler.GetProduct)
	productAPI.POST("", productHandler.CreateProduct)
	productAPI.PUT("/:id", productHandler.UpdateProduct)
	productAPI.DELETE("/:id", productHandler.DeleteProduct)

	// Category routes
	categoryAPI := e.Group("/api/categories", mid.AuthMiddleware)
	categoryAPI.GET("", categoryHandler.ListCategories)
	categoryAPI.GET("/:id", categoryHandler.GetCategory)
	categoryAPI.POST("", categoryHandler.CreateCategory)
	categoryAPI.PUT("/:id", categoryHandler.UpdateCategory)
	categoryAPI.DELETE("/:id", categoryHandler.DeleteCategory)

	// Dashboard route
	dashboardAPI := e.Group("/api/dashboard", mid.AuthMiddleware)
	dashboardAPI.GET("", dashboardHandler.GetDashboard)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
