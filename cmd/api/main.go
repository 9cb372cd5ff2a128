package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/jsalazar/tiendita-api/internal/application/service"
	"github.com/jsalazar/tiendita-api/internal/config"
	"github.com/jsalazar/tiendita-api/internal/infrastructure/database"
	"github.com/jsalazar/tiendita-api/internal/infrastructure/repository"
	"github.com/jsalazar/tiendita-api/internal/presentation/http/handler"
	"github.com/jsalazar/tiendita-api/internal/presentation/http/routes"
	"github.com/jsalazar/tiendita-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	paymentRepo := repository.NewCreditPaymentRepository(db)
	registerRepo := repository.NewCashRegisterRepository(db)
	serviceTxRepo := repository.NewServiceTransactionRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	saleService := service.NewSaleService(saleRepo)
	creditService := service.NewCreditService(saleRepo, paymentRepo)
	incomeService := service.NewIncomeService(saleRepo, paymentRepo, serviceTxRepo)
	registerService := service.NewRegisterService(registerRepo, incomeService)
	serviceTxService := service.NewServiceTxService(serviceTxRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Sale:      handler.NewSaleHandler(saleService),
		Credit:    handler.NewCreditHandler(creditService),
		Register:  handler.NewRegisterHandler(registerService),
		ServiceTx: handler.NewServiceTxHandler(serviceTxService),
		Report:    handler.NewReportHandler(incomeService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
