package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/tmcosta/vendas-pos-api/internal/application/service"
	"github.com/tmcosta/vendas-pos-api/internal/config"
	"github.com/tmcosta/vendas-pos-api/internal/infrastructure/database"
	"github.com/tmcosta/vendas-pos-api/internal/infrastructure/repository"
	"github.com/tmcosta/vendas-pos-api/internal/presentation/http/handler"
	"github.com/tmcosta/vendas-pos-api/internal/presentation/http/routes"
	"github.com/tmcosta/vendas-pos-api/pkg/printer"
	"github.com/tmcosta/vendas-pos-api/pkg/utils"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	if err := utils.InitLogger(cfg.App.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer utils.SyncLogger()

	// Monetary amounts serialize as JSON numbers, matching the decimal
	// database columns.
	decimal.MarshalJSONWithoutQuotes = true

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		zap.L().Fatal("Failed to connect to database", zap.Error(err))
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		zap.L().Fatal("Failed to run migrations", zap.Error(err))
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		zap.L().Warn("Failed to seed default data", zap.Error(err))
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	reportRepo := repository.NewReportRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize receipt printer
	device, err := printer.NewPrinterFromConfig(cfg.Printer.Type, cfg.Printer.USBPath, cfg.Printer.Address)
	if err != nil {
		zap.L().Fatal("Failed to initialize printer", zap.Error(err))
	}
	defer device.Close()

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	productService := service.NewProductService(productRepo)
	customerService := service.NewCustomerService(customerRepo)
	saleService := service.NewSaleService(saleRepo, productRepo, customerRepo)
	reportService := service.NewReportService(reportRepo)
	printerService := service.NewPrinterService(saleRepo, userRepo, device, cfg.Company, cfg.Printer.Width)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Product:  handler.NewProductHandler(productService),
		Customer: handler.NewCustomerHandler(customerService),
		Sale:     handler.NewSaleHandler(saleService),
		Report:   handler.NewReportHandler(reportService),
		Printer:  handler.NewPrinterHandler(printerService),
	}

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	zap.L().Info("Starting server",
		zap.String("service", cfg.App.Name),
		zap.String("port", cfg.App.Port),
		zap.String("env", cfg.App.Env))

	if err := router.Run(":" + cfg.App.Port); err != nil {
		zap.L().Fatal("Server failed", zap.Error(err))
	}
}
