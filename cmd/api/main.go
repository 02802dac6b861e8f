package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"crm-api/config"
	"crm-api/controllers"
	"crm-api/metrics"
	"crm-api/middleware"
	"crm-api/routes"
	"crm-api/services"
	"crm-api/store"
	"crm-api/utils"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logFile, _ := config.InitLogging()
	if logFile != nil {
		defer logFile.Close()
	}

	cfg := config.LoadAppConfig()
	logger := config.NewLogger(cfg.LogLevel, cfg.LogFormat)
	defer logger.Sync()

	if cfg.JWTSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	// Initialize database
	config.InitDB()
	if cfg.AutoMigrate {
		if err := config.AutoMigrate(config.DB); err != nil {
			logger.Fatal("auto migrate failed", zap.Error(err))
		}
		logger.Info("database schema migrated")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := utils.RegisterBindingValidators(); err != nil {
		logger.Fatal("register validators", zap.Error(err))
	}
	metrics.Init()

	users := store.NewGormUserStore(config.DB)
	authService := services.NewAuthService(users, cfg.JWTSecret, cfg.JWTExpire, logger)
	notificationService := services.NewNotificationService(store.NewGormNotificationStore(config.DB), logger)
	enquiryService := services.NewEnquiryService(store.NewGormEnquiryStore(config.DB), notificationService, logger)
	directoryService := services.NewDirectoryService(config.DB)

	// Create Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.Metrics())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	routes.SetupRoutes(router, routes.Handlers{
		AuthService:   authService,
		Auth:          controllers.NewAuthController(authService),
		Enquiries:     controllers.NewEnquiryController(enquiryService),
		Notifications: controllers.NewNotificationController(notificationService),
		Directory:     controllers.NewDirectoryController(directoryService),
		DB:            config.DB,
	})

	logger.Info("server starting",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
		zap.Bool("production", cfg.IsProduction()),
		zap.Strings("cors_origins", cfg.AllowedOrigins),
	)

	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
